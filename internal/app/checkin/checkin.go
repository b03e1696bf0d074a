package checkin

import (
	"context"
	"fmt"

	"github.com/slok/tisk/internal/app/steps"
	"github.com/slok/tisk/internal/chain"
	"github.com/slok/tisk/internal/log"
	"github.com/slok/tisk/internal/model"
	"github.com/slok/tisk/internal/storage"
)

// ServiceConfig is the configuration for the checkin service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Checkin"})
	return nil
}

// Service handles checkout release business logic.
type Service struct {
	repo   storage.Repository
	exec   *chain.Executor
	logger log.Logger
}

// NewService creates a new checkin service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	committer, err := storage.NewCommitter(storage.CommitterConfig{Repository: cfg.Repository, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create committer: %w", err)
	}
	exec, err := steps.NewExecutor(committer, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("could not create executor: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		exec:   exec,
		logger: cfg.Logger,
	}, nil
}

// Request represents the checkin request parameters.
type Request struct{}

// Response is the result of releasing the checkout.
type Response struct {
	// Released is the task that was checked out, nil when there was none.
	Released  *model.TaskID
	Committed int
}

// Run releases the checkout. Checking in with nothing checked out is valid
// and commits the same pointer clear.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	state, err := storage.LoadState(ctx, s.repo)
	if err != nil {
		return nil, fmt.Errorf("could not load project state: %w", err)
	}

	released := state.CheckedOut()
	state.CheckIn()

	result, err := s.exec.Run(ctx, state, chain.Terminal(chain.CheckIn{}))
	if err != nil {
		return nil, fmt.Errorf("could not check in: %w", err)
	}

	if released != nil {
		s.logger.Infof("Checked in task %d", *released)
	}

	return &Response{
		Released:  released,
		Committed: result.Committed,
	}, nil
}
