package checkout

import (
	"context"
	"fmt"

	"github.com/slok/tisk/internal/app/steps"
	"github.com/slok/tisk/internal/chain"
	"github.com/slok/tisk/internal/log"
	"github.com/slok/tisk/internal/model"
	"github.com/slok/tisk/internal/storage"
)

// ServiceConfig is the configuration for the checkout service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Checkout"})
	return nil
}

// Service handles task checkout business logic.
type Service struct {
	repo   storage.Repository
	exec   *chain.Executor
	logger log.Logger
}

// NewService creates a new checkout service.
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

// Request represents the checkout request parameters.
type Request struct {
	ID model.TaskID
}

// Response is the result of checking out a task.
type Response struct {
	Task model.Task
	// Previous is the task that was checked out before, nil when none.
	// The checkout pointer is last write wins, the previous task is
	// released implicitly.
	Previous  *model.TaskID
	Committed int
}

// Run checks out the given task, replacing any previous checkout.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	state, err := storage.LoadState(ctx, s.repo)
	if err != nil {
		return nil, fmt.Errorf("could not load project state: %w", err)
	}

	task, err := state.Get(req.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get task: %w", err)
	}
	if task.Status == model.TaskStatusClosed {
		return nil, fmt.Errorf("task %d is closed: %w", req.ID, model.ErrNotValid)
	}

	previous := state.CheckedOut()
	state.Checkout(req.ID)

	result, err := s.exec.Run(ctx, state, chain.Terminal(chain.Checkout{TaskID: req.ID}))
	if err != nil {
		return nil, fmt.Errorf("could not check out task: %w", err)
	}

	s.logger.Infof("Checked out task %d: %s", task.ID, task.Title)

	return &Response{
		Task:      *task,
		Previous:  previous,
		Committed: result.Committed,
	}, nil
}
