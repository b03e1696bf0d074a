package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/slok/tisk/internal/log"
	"github.com/slok/tisk/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository. It is
// used by tests and as a scratch store, it keeps the same semantics as the
// SQLite repository.
type Repository struct {
	tasks      map[model.TaskID]model.Task
	checkedOut *model.TaskID
	mu         sync.RWMutex
	logger     log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		tasks:  make(map[model.TaskID]model.Task),
		logger: cfg.Logger,
	}, nil
}

// SaveTask inserts or replaces the full record of a task.
func (r *Repository) SaveTask(ctx context.Context, t model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[t.ID] = copyTask(t)
	r.logger.Debugf("saved task %d", t.ID)

	return nil
}

// GetTask retrieves a task by ID.
func (r *Repository) GetTask(ctx context.Context, id model.TaskID) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %d: %w", id, model.ErrNotFound)
	}

	taskCopy := copyTask(t)
	return &taskCopy, nil
}

// ListTasks returns all tasks.
func (r *Repository) ListTasks(ctx context.Context) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		tasks = append(tasks, copyTask(t))
	}

	return tasks, nil
}

// CloseTask marks a task as closed.
func (r *Repository) CloseTask(ctx context.Context, id model.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("task %d: %w", id, model.ErrNotFound)
	}

	t.Status = model.TaskStatusClosed
	r.tasks[id] = t
	r.logger.Debugf("closed task %d", id)

	return nil
}

// AppendNote appends a note to a task.
func (r *Repository) AppendNote(ctx context.Context, id model.TaskID, n model.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("task %d: %w", id, model.ErrNotFound)
	}

	t.Notes = append(t.Notes, n)
	r.tasks[id] = t
	r.logger.Debugf("appended note to task %d", id)

	return nil
}

// SetCheckout sets the checked-out task pointer.
func (r *Repository) SetCheckout(ctx context.Context, id model.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return fmt.Errorf("task %d: %w", id, model.ErrNotFound)
	}

	r.checkedOut = &id
	r.logger.Debugf("checked out task %d", id)

	return nil
}

// ClearCheckout clears the checked-out task pointer.
func (r *Repository) ClearCheckout(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.checkedOut = nil

	return nil
}

// GetCheckout returns the checked-out task ID.
func (r *Repository) GetCheckout(ctx context.Context) (*model.TaskID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.checkedOut == nil {
		return nil, fmt.Errorf("checkout: %w", model.ErrNotFound)
	}

	id := *r.checkedOut
	return &id, nil
}

func copyTask(t model.Task) model.Task {
	taskCopy := t
	taskCopy.Notes = append([]model.Note(nil), t.Notes...)
	return taskCopy
}
