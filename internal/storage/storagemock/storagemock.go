// Package storagemock contains testify mocks for the storage interfaces.
package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/slok/tisk/internal/model"
)

// MockRepository is a testify mock of storage.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveTask(ctx context.Context, t model.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockRepository) GetTask(ctx context.Context, id model.TaskID) (*model.Task, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*model.Task)
	return t, args.Error(1)
}

func (m *MockRepository) ListTasks(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *MockRepository) CloseTask(ctx context.Context, id model.TaskID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) AppendNote(ctx context.Context, id model.TaskID, n model.Note) error {
	args := m.Called(ctx, id, n)
	return args.Error(0)
}

func (m *MockRepository) SetCheckout(ctx context.Context, id model.TaskID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ClearCheckout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRepository) GetCheckout(ctx context.Context) (*model.TaskID, error) {
	args := m.Called(ctx)
	id, _ := args.Get(0).(*model.TaskID)
	return id, args.Error(1)
}
