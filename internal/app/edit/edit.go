package edit

import (
	"context"
	"fmt"

	"github.com/slok/tisk/internal/app/steps"
	"github.com/slok/tisk/internal/chain"
	"github.com/slok/tisk/internal/log"
	"github.com/slok/tisk/internal/model"
	"github.com/slok/tisk/internal/storage"
)

// ServiceConfig is the configuration for the edit service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Edit"})
	return nil
}

// Service handles task editing business logic.
type Service struct {
	repo   storage.Repository
	exec   *chain.Executor
	logger log.Logger
}

// NewService creates a new edit service.
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

// Request represents the edit request parameters.
type Request struct {
	ID       model.TaskID
	Priority int
}

// Response is the result of editing a task.
type Response struct {
	Task        model.Task
	OldPriority int
	// Changed reports whether the edit changed anything durably.
	Changed   bool
	Committed int
}

// Run changes a task's priority. An edit to the current value commits
// nothing.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	if req.Priority < 0 {
		return nil, fmt.Errorf("priority must not be negative: %w", model.ErrNotValid)
	}

	state, err := storage.LoadState(ctx, s.repo)
	if err != nil {
		return nil, fmt.Errorf("could not load project state: %w", err)
	}

	task, err := state.Get(req.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get task: %w", err)
	}

	if task.Priority == req.Priority {
		result, err := s.exec.Run(ctx, state, chain.Terminal(chain.NoOp{}))
		if err != nil {
			return nil, fmt.Errorf("could not edit task: %w", err)
		}
		return &Response{Task: *task, OldPriority: task.Priority, Committed: result.Committed}, nil
	}

	old, err := state.SetPriority(req.ID, req.Priority)
	if err != nil {
		return nil, fmt.Errorf("could not set priority: %w", err)
	}

	updated, err := state.Get(req.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get task: %w", err)
	}

	result, err := s.exec.Run(ctx, state, chain.Terminal(chain.Write{Task: *updated}))
	if err != nil {
		return nil, fmt.Errorf("could not edit task: %w", err)
	}

	s.logger.Infof("Changed task %d priority %d -> %d", updated.ID, old, updated.Priority)

	return &Response{
		Task:        *updated,
		OldPriority: old,
		Changed:     true,
		Committed:   result.Committed,
	}, nil
}
