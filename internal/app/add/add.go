package add

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/tisk/internal/app/steps"
	"github.com/slok/tisk/internal/chain"
	"github.com/slok/tisk/internal/log"
	"github.com/slok/tisk/internal/model"
	"github.com/slok/tisk/internal/storage"
)

// ServiceConfig is the configuration for the add service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Add"})
	return nil
}

// Service handles task creation business logic.
type Service struct {
	repo   storage.Repository
	exec   *chain.Executor
	logger log.Logger
}

// NewService creates a new add service.
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

// Request represents the add request parameters.
type Request struct {
	Title    string
	Priority int
	// Note, when set, appends an initial note right after the task record
	// commits.
	Note string
	// Checkout, when set, checks the new task out as the last chain step.
	Checkout bool
}

// Response is the result of adding a task.
type Response struct {
	Task      model.Task
	Committed int
	Warnings  []string
}

// Run creates a new task and commits it, with the optional note and
// checkout as chained follow-up steps.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("task title is required: %w", model.ErrNotValid)
	}
	if req.Priority < 0 {
		return nil, fmt.Errorf("priority must not be negative: %w", model.ErrNotValid)
	}

	state, err := storage.LoadState(ctx, s.repo)
	if err != nil {
		return nil, fmt.Errorf("could not load project state: %w", err)
	}

	task := state.AddTask(title, req.Priority)

	var c chain.Chain
	switch {
	case req.Note != "":
		// The checkout flag rides on the note continuation so it runs last.
		c = chain.AndThen(chain.Write{Task: task}, chain.ContinuationRef{
			ID:       steps.NoteAfterWrite,
			TaskID:   task.ID,
			Note:     req.Note,
			Checkout: req.Checkout,
		})
	case req.Checkout:
		c = chain.AndThen(chain.Write{Task: task}, chain.ContinuationRef{
			ID:     steps.CheckoutAfterWrite,
			TaskID: task.ID,
		})
	default:
		c = chain.Terminal(chain.Write{Task: task})
	}

	result, err := s.exec.Run(ctx, state, c)
	if err != nil {
		return nil, fmt.Errorf("could not add task: %w", err)
	}

	s.logger.Infof("Added task %d: %s", task.ID, task.Title)

	return &Response{
		Task:      task,
		Committed: result.Committed,
		Warnings:  result.Warnings,
	}, nil
}
