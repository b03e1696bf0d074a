package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/slok/tisk/internal/model"
)

// Repository is the interface for project task persistence. Every method
// maps to one atomic write or read at the storage boundary.
type Repository interface {
	// SaveTask inserts or replaces the full record of a task, notes included.
	SaveTask(ctx context.Context, t model.Task) error
	GetTask(ctx context.Context, id model.TaskID) (*model.Task, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	// CloseTask marks the stored task as closed.
	CloseTask(ctx context.Context, id model.TaskID) error
	// AppendNote appends a note to the stored task's note sequence.
	AppendNote(ctx context.Context, id model.TaskID, n model.Note) error
	// SetCheckout persists the checked-out task pointer (last write wins).
	SetCheckout(ctx context.Context, id model.TaskID) error
	// ClearCheckout persists that no task is checked out. Clearing an
	// already clear pointer is not an error.
	ClearCheckout(ctx context.Context) error
	// GetCheckout returns the checked-out task ID, or model.ErrNotFound
	// when no task is checked out.
	GetCheckout(ctx context.Context) (*model.TaskID, error)
}

// LoadState builds the in-memory project state from the repository.
func LoadState(ctx context.Context, repo Repository) (*model.ProjectState, error) {
	tasks, err := repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}

	checkedOut, err := repo.GetCheckout(ctx)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("could not get checkout: %w", err)
	}

	return model.NewProjectState(tasks, checkedOut), nil
}
