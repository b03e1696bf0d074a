package log

// Kv is a helper type for structured logging key-value pairs.
type Kv = map[string]any

// Logger is the interface that the application loggers implement.
type Logger interface {
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
	WithValues(values map[string]any) Logger
}

// Noop is a logger that discards all log output. It is the default logger
// when none is configured.
var Noop Logger = noop(0)

type noop int

func (n noop) Infof(format string, args ...any)      {}
func (n noop) Warningf(format string, args ...any)   {}
func (n noop) Errorf(format string, args ...any)     {}
func (n noop) Debugf(format string, args ...any)     {}
func (n noop) WithValues(values map[string]any) Logger { return n }
