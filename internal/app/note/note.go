package note

import (
	"context"
	"fmt"

	"github.com/slok/tisk/internal/app/steps"
	"github.com/slok/tisk/internal/chain"
	"github.com/slok/tisk/internal/log"
	"github.com/slok/tisk/internal/model"
	"github.com/slok/tisk/internal/storage"
)

// ServiceConfig is the configuration for the note service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Note"})
	return nil
}

// Service handles task note business logic.
type Service struct {
	repo   storage.Repository
	exec   *chain.Executor
	logger log.Logger
}

// NewService creates a new note service.
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

// Request represents the note append request parameters.
type Request struct {
	// TaskID, when nil, targets the checked-out task.
	TaskID *model.TaskID
	Body   string
}

// Response is the result of appending a note.
type Response struct {
	Task      model.Task
	Note      model.Note
	Committed int
}

// Run appends a note to the targeted task.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	if req.Body == "" {
		return nil, fmt.Errorf("note body is required: %w", model.ErrNotValid)
	}

	state, err := storage.LoadState(ctx, s.repo)
	if err != nil {
		return nil, fmt.Errorf("could not load project state: %w", err)
	}

	id, err := s.target(state, req.TaskID)
	if err != nil {
		return nil, err
	}

	note, err := state.AddNote(id, req.Body)
	if err != nil {
		return nil, fmt.Errorf("could not add note: %w", err)
	}

	result, err := s.exec.Run(ctx, state, chain.Terminal(chain.AddNote{TaskID: id, Note: *note}))
	if err != nil {
		return nil, fmt.Errorf("could not add note: %w", err)
	}

	task, err := state.Get(id)
	if err != nil {
		return nil, fmt.Errorf("could not get task: %w", err)
	}

	s.logger.Infof("Added note to task %d", id)

	return &Response{
		Task:      *task,
		Note:      *note,
		Committed: result.Committed,
	}, nil
}

// ListRequest represents the note listing request parameters.
type ListRequest struct {
	// TaskID, when nil, targets the checked-out task.
	TaskID *model.TaskID
}

// ListResponse is the result of listing a task's notes.
type ListResponse struct {
	Task  model.Task
	Notes []model.Note
}

// List returns the targeted task's notes in creation order. Read only, no
// chain runs.
func (s *Service) List(ctx context.Context, req ListRequest) (*ListResponse, error) {
	state, err := storage.LoadState(ctx, s.repo)
	if err != nil {
		return nil, fmt.Errorf("could not load project state: %w", err)
	}

	id, err := s.target(state, req.TaskID)
	if err != nil {
		return nil, err
	}

	task, err := state.Get(id)
	if err != nil {
		return nil, fmt.Errorf("could not get task: %w", err)
	}

	return &ListResponse{Task: *task, Notes: task.Notes}, nil
}

func (s *Service) target(state *model.ProjectState, explicit *model.TaskID) (model.TaskID, error) {
	if explicit != nil {
		return *explicit, nil
	}

	checkedOut := state.CheckedOut()
	if checkedOut == nil {
		return 0, fmt.Errorf("no task checked out, use an explicit task ID: %w", model.ErrNotValid)
	}
	return *checkedOut, nil
}
