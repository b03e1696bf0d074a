package list

import (
	"context"
	"fmt"

	"github.com/slok/tisk/internal/log"
	"github.com/slok/tisk/internal/model"
	"github.com/slok/tisk/internal/storage"
)

// ServiceConfig is the configuration for the list service.
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

	return nil
}

// Service lists tasks with optional filtering.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Filter selects which tasks to list.
type Filter string

const (
	FilterOpen   Filter = "open"
	FilterClosed Filter = "closed"
	FilterAll    Filter = "all"
)

// Request represents the list request parameters.
type Request struct {
	Filter Filter
}

// Response is the result of listing tasks.
type Response struct {
	// Tasks is sorted by priority descending, newest first on ties.
	Tasks      []model.Task
	CheckedOut *model.TaskID
}

// Run lists the project's tasks. Read only, no chain runs.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	s.logger.Debugf("listing tasks with filter: %s", req.Filter)

	state, err := storage.LoadState(ctx, s.repo)
	if err != nil {
		return nil, fmt.Errorf("could not load project state: %w", err)
	}

	var tasks []model.Task
	switch req.Filter {
	case FilterClosed:
		tasks = state.Closed()
	case FilterAll:
		tasks = state.All()
	case FilterOpen, "":
		tasks = state.Open()
	default:
		return nil, fmt.Errorf("unknown filter %q: %w", req.Filter, model.ErrNotValid)
	}

	s.logger.Debugf("found %d tasks", len(tasks))

	return &Response{
		Tasks:      tasks,
		CheckedOut: state.CheckedOut(),
	}, nil
}
