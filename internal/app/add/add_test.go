package add_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/tisk/internal/app/add"
	"github.com/slok/tisk/internal/model"
	"github.com/slok/tisk/internal/storage/memory"
	"github.com/slok/tisk/internal/storage/storagemock"
)

func newService(t *testing.T) (*add.Service, *memory.Repository) {
	t.Helper()
	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)

	svc, err := add.NewService(add.ServiceConfig{Repository: repo})
	require.NoError(t, err)

	return svc, repo
}

func TestServiceRun(t *testing.T) {
	t.Run("Plain add commits a single write", func(t *testing.T) {
		svc, repo := newService(t)

		resp, err := svc.Run(context.Background(), add.Request{Title: "write spec", Priority: 2})

		require.NoError(t, err)
		assert.Equal(t, model.TaskID(1), resp.Task.ID)
		assert.Equal(t, 1, resp.Committed)
		assert.Empty(t, resp.Warnings)

		stored, err := repo.GetTask(context.Background(), resp.Task.ID)
		require.NoError(t, err)
		assert.Equal(t, "write spec", stored.Title)
		assert.Equal(t, model.TaskStatusOpen, stored.Status)

		_, err = repo.GetCheckout(context.Background())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("Add with checkout chains write then checkout", func(t *testing.T) {
		svc, repo := newService(t)

		resp, err := svc.Run(context.Background(), add.Request{Title: "write spec", Priority: 1, Checkout: true})

		require.NoError(t, err)
		assert.Equal(t, 2, resp.Committed)

		checkedOut, err := repo.GetCheckout(context.Background())
		require.NoError(t, err)
		assert.Equal(t, resp.Task.ID, *checkedOut)
	})

	t.Run("Add with note and checkout chains three steps", func(t *testing.T) {
		svc, repo := newService(t)

		resp, err := svc.Run(context.Background(), add.Request{Title: "write spec", Priority: 1, Note: "remember", Checkout: true})

		require.NoError(t, err)
		assert.Equal(t, 3, resp.Committed)

		stored, err := repo.GetTask(context.Background(), resp.Task.ID)
		require.NoError(t, err)
		require.Len(t, stored.Notes, 1)
		assert.Equal(t, "remember", stored.Notes[0].Body)

		checkedOut, err := repo.GetCheckout(context.Background())
		require.NoError(t, err)
		assert.Equal(t, resp.Task.ID, *checkedOut)
	})

	t.Run("IDs are sequential across adds", func(t *testing.T) {
		svc, _ := newService(t)

		resp1, err := svc.Run(context.Background(), add.Request{Title: "a"})
		require.NoError(t, err)
		resp2, err := svc.Run(context.Background(), add.Request{Title: "b"})
		require.NoError(t, err)

		assert.Equal(t, model.TaskID(1), resp1.Task.ID)
		assert.Equal(t, model.TaskID(2), resp2.Task.ID)
	})

	t.Run("Empty title fails validation", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Run(context.Background(), add.Request{Title: "   "})

		assert.ErrorIs(t, err, model.ErrNotValid)
	})

	t.Run("Negative priority fails validation", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Run(context.Background(), add.Request{Title: "a", Priority: -1})

		assert.ErrorIs(t, err, model.ErrNotValid)
	})

	t.Run("Second step failure reports the committed first step", func(t *testing.T) {
		repo := &storagemock.MockRepository{}
		repo.On("ListTasks", mock.Anything).Once().Return([]model.Task{}, nil)
		repo.On("GetCheckout", mock.Anything).Once().Return(nil, model.ErrNotFound)
		repo.On("SaveTask", mock.Anything, mock.Anything).Once().Return(nil)
		ioErr := errors.New("disk full")
		repo.On("SetCheckout", mock.Anything, model.TaskID(1)).Once().Return(ioErr)

		svc, err := add.NewService(add.ServiceConfig{Repository: repo})
		require.NoError(t, err)

		_, err = svc.Run(context.Background(), add.Request{Title: "a", Checkout: true})

		require.Error(t, err)
		assert.ErrorIs(t, err, ioErr)
		assert.Contains(t, err.Error(), "1 steps already committed")
		repo.AssertExpectations(t)
	})
}
