package closetask

import (
	"context"
	"fmt"

	"github.com/slok/tisk/internal/app/steps"
	"github.com/slok/tisk/internal/chain"
	"github.com/slok/tisk/internal/log"
	"github.com/slok/tisk/internal/model"
	"github.com/slok/tisk/internal/storage"
)

// ServiceConfig is the configuration for the close service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Close"})
	return nil
}

// Service handles task closing business logic.
type Service struct {
	repo   storage.Repository
	exec   *chain.Executor
	logger log.Logger
}

// NewService creates a new close service.
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

// Request represents the close request parameters.
type Request struct {
	ID model.TaskID
	// Note, when set, is appended before the close commits so the closing
	// context stays with the task.
	Note string
}

// Response is the result of closing a task.
type Response struct {
	Task model.Task
	// AlreadyClosed reports that the task was closed before this call and
	// nothing changed durably.
	AlreadyClosed bool
	Committed     int
	Warnings      []string
}

// Run closes a task. Closing the checked-out task also releases the
// checkout, closing an already closed task commits nothing.
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
		c := chain.Terminal(chain.NoOp{})
		result, err := s.exec.Run(ctx, state, c)
		if err != nil {
			return nil, fmt.Errorf("could not close task: %w", err)
		}
		return &Response{Task: *task, AlreadyClosed: true, Committed: result.Committed}, nil
	}

	var c chain.Chain
	if req.Note != "" {
		note, err := state.AddNote(req.ID, req.Note)
		if err != nil {
			return nil, fmt.Errorf("could not add note: %w", err)
		}
		c = chain.AndThen(chain.AddNote{TaskID: req.ID, Note: *note}, chain.ContinuationRef{
			ID:     steps.CloseAfterNote,
			TaskID: req.ID,
		})
	} else {
		closed, err := state.CloseTask(req.ID)
		if err != nil {
			return nil, fmt.Errorf("could not close task: %w", err)
		}
		task = closed

		effect := chain.Close{TaskID: req.ID}
		if checkedOut := state.CheckedOut(); checkedOut != nil && *checkedOut == req.ID {
			c = chain.AndThen(effect, chain.ContinuationRef{ID: steps.CheckinAfterClose})
		} else {
			c = chain.Terminal(effect)
		}
	}

	result, err := s.exec.Run(ctx, state, c)
	if err != nil {
		return nil, fmt.Errorf("could not close task: %w", err)
	}

	updated, err := state.Get(req.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get task: %w", err)
	}

	s.logger.Infof("Closed task %d: %s", updated.ID, updated.Title)

	return &Response{
		Task:      *updated,
		Committed: result.Committed,
		Warnings:  result.Warnings,
	}, nil
}
