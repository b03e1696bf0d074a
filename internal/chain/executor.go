package chain

import (
	"context"
	"fmt"

	"github.com/slok/tisk/internal/log"
	"github.com/slok/tisk/internal/model"
)

// Committer applies a single effect to the durable store of the current
// project. On success the effect's change is durable before Commit returns.
// On failure no part of the effect has been applied: each effect maps to one
// atomic write operation at the storage boundary. A Committer never touches
// in-memory state.
type Committer interface {
	Commit(ctx context.Context, e Effect) (CommitResult, error)
}

// defaultMaxSteps bounds chain length. Hand-written chains are 1-3 links,
// a chain that reaches the ceiling indicates a continuation cycle.
const defaultMaxSteps = 32

// ExecutorConfig is the configuration for the chain executor.
type ExecutorConfig struct {
	Committer     Committer
	Continuations *Registry
	MaxSteps      int
	Logger        log.Logger
}

func (c *ExecutorConfig) defaults() error {
	if c.Committer == nil {
		return fmt.Errorf("committer is required")
	}
	if c.Continuations == nil {
		return fmt.Errorf("continuation registry is required")
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = defaultMaxSteps
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "chain.Executor"})
	return nil
}

// Executor drives a chain to completion: it commits the current effect,
// then dispatches the continuation (if any) with the commit result to
// obtain the next chain, until a terminal effect has been committed.
// It retains no state between Run calls.
type Executor struct {
	committer Committer
	conts     *Registry
	maxSteps  int
	logger    log.Logger
}

// NewExecutor creates a new chain executor.
func NewExecutor(cfg ExecutorConfig) (*Executor, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Executor{
		committer: cfg.Committer,
		conts:     cfg.Continuations,
		maxSteps:  cfg.MaxSteps,
		logger:    cfg.Logger,
	}, nil
}

// Result is the outcome of one chain execution. Committed counts the
// effects that were durably applied, also when Run returns an error, so
// the caller can report precise partial-progress state. Warnings carries
// the reasons of committed no-op effects (a continuation reporting a
// problem instead of proceeding).
type Result struct {
	Committed int
	Warnings  []string
}

// Run executes the chain against the given in-memory project state. It
// halts on the first commit or dispatch failure and never recovers on
// behalf of the caller: already-committed steps are not rolled back,
// effects are forward-only by design.
func (e *Executor) Run(ctx context.Context, state *model.ProjectState, c Chain) (*Result, error) {
	if state == nil {
		return nil, fmt.Errorf("project state is required")
	}

	result := &Result{}

	for step := 1; ; step++ {
		if step > e.maxSteps {
			return result, fmt.Errorf("chain exceeded %d steps, %d committed, continuation cycle suspected: %w", e.maxSteps, result.Committed, model.ErrNotValid)
		}

		e.logger.Debugf("committing step %d: %s", step, c.Effect)
		commitResult, err := e.committer.Commit(ctx, c.Effect)
		if err != nil {
			return result, fmt.Errorf("commit of step %d (%s) failed, %d steps already committed: %w", step, c.Effect, result.Committed, err)
		}
		result.Committed++

		if noop, ok := c.Effect.(NoOp); ok && noop.Reason != "" {
			result.Warnings = append(result.Warnings, noop.Reason)
		}

		if c.IsTerminal() {
			e.logger.Debugf("chain finished, %d steps committed", result.Committed)
			return result, nil
		}

		next, err := e.conts.Dispatch(ctx, state, *c.Next, commitResult)
		if err != nil {
			return result, fmt.Errorf("continuation %q failed, %d steps already committed: %w", c.Next.ID, result.Committed, err)
		}
		c = next
	}
}
