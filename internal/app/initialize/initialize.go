package initialize

import (
	"context"
	"fmt"

	"github.com/slok/tisk/internal/conventions"
	"github.com/slok/tisk/internal/log"
)

// ServiceConfig is the configuration for the initialize service.
type ServiceConfig struct {
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Initialize"})
	return nil
}

// Service handles project initialization business logic.
type Service struct {
	logger log.Logger
}

// NewService creates a new initialize service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		logger: cfg.Logger,
	}, nil
}

// Request represents the initialize request parameters.
type Request struct {
	// Dir is the directory the project directory is created in.
	Dir string
}

// Response is the result of initializing a project.
type Response struct {
	ProjectDir string
	DBPath     string
}

// Run creates the project directory in the given directory. The database
// file is created on first open by the storage layer.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	if req.Dir == "" {
		return nil, fmt.Errorf("directory is required")
	}

	projectDir, err := conventions.Initialize(req.Dir)
	if err != nil {
		return nil, fmt.Errorf("could not initialize project: %w", err)
	}

	s.logger.Infof("Initialized project at %s", projectDir)

	return &Response{
		ProjectDir: projectDir,
		DBPath:     conventions.DBPath(projectDir),
	}, nil
}
