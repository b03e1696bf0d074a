package status

import (
	"context"
	"fmt"

	"github.com/slok/tisk/internal/log"
	"github.com/slok/tisk/internal/model"
	"github.com/slok/tisk/internal/storage"
)

// ServiceConfig is the configuration for the status service.
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

// Service retrieves the project status summary.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new status service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the status request parameters.
type Request struct{}

// Response is the project status summary.
type Response struct {
	// CheckedOut is the checked-out task, nil when none.
	CheckedOut *model.Task
	Open       int
	Closed     int
	Total      int
}

// Run returns the checked-out task and the open/closed counts. Read only,
// no chain runs.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	state, err := storage.LoadState(ctx, s.repo)
	if err != nil {
		return nil, fmt.Errorf("could not load project state: %w", err)
	}

	resp := &Response{
		Open:   len(state.Open()),
		Closed: len(state.Closed()),
		Total:  state.Len(),
	}

	if id := state.CheckedOut(); id != nil {
		task, err := state.Get(*id)
		if err != nil {
			return nil, fmt.Errorf("could not get checked-out task: %w", err)
		}
		resp.CheckedOut = task
	}

	return resp, nil
}
