package closetask_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tisk/internal/app/closetask"
	"github.com/slok/tisk/internal/model"
	"github.com/slok/tisk/internal/storage/memory"
)

func newService(t *testing.T, tasks ...model.Task) (*closetask.Service, *memory.Repository) {
	t.Helper()
	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)
	for _, task := range tasks {
		require.NoError(t, repo.SaveTask(context.Background(), task))
	}

	svc, err := closetask.NewService(closetask.ServiceConfig{Repository: repo})
	require.NoError(t, err)

	return svc, repo
}

func openTask(id model.TaskID, title string) model.Task {
	return model.Task{
		ID:        id,
		Title:     title,
		Priority:  1,
		Status:    model.TaskStatusOpen,
		CreatedAt: time.Now().UTC(),
	}
}

func TestServiceRun(t *testing.T) {
	t.Run("Open task is closed durably", func(t *testing.T) {
		svc, repo := newService(t, openTask(1, "a"))

		resp, err := svc.Run(context.Background(), closetask.Request{ID: 1})

		require.NoError(t, err)
		assert.Equal(t, model.TaskStatusClosed, resp.Task.Status)
		assert.False(t, resp.AlreadyClosed)
		assert.Equal(t, 1, resp.Committed)

		stored, err := repo.GetTask(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, model.TaskStatusClosed, stored.Status)
	})

	t.Run("Already closed task commits only a no-op", func(t *testing.T) {
		task := openTask(1, "a")
		task.Status = model.TaskStatusClosed
		svc, _ := newService(t, task)

		resp, err := svc.Run(context.Background(), closetask.Request{ID: 1})

		require.NoError(t, err)
		assert.True(t, resp.AlreadyClosed)
		assert.Equal(t, 1, resp.Committed)
	})

	t.Run("Close with note commits the note first", func(t *testing.T) {
		svc, repo := newService(t, openTask(1, "a"))

		resp, err := svc.Run(context.Background(), closetask.Request{ID: 1, Note: "done after review"})

		require.NoError(t, err)
		assert.Equal(t, 2, resp.Committed)

		stored, err := repo.GetTask(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, model.TaskStatusClosed, stored.Status)
		require.Len(t, stored.Notes, 1)
		assert.Equal(t, "done after review", stored.Notes[0].Body)
	})

	t.Run("Closing the checked-out task releases the checkout", func(t *testing.T) {
		svc, repo := newService(t, openTask(1, "a"))
		require.NoError(t, repo.SetCheckout(context.Background(), 1))

		resp, err := svc.Run(context.Background(), closetask.Request{ID: 1})

		require.NoError(t, err)
		assert.Equal(t, 2, resp.Committed)

		_, err = repo.GetCheckout(context.Background())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("Closing the checked-out task with a note chains three steps", func(t *testing.T) {
		svc, repo := newService(t, openTask(1, "a"))
		require.NoError(t, repo.SetCheckout(context.Background(), 1))

		resp, err := svc.Run(context.Background(), closetask.Request{ID: 1, Note: "done"})

		require.NoError(t, err)
		assert.Equal(t, 3, resp.Committed)

		_, err = repo.GetCheckout(context.Background())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("Checkout of another task survives a close", func(t *testing.T) {
		svc, repo := newService(t, openTask(1, "a"), openTask(2, "b"))
		require.NoError(t, repo.SetCheckout(context.Background(), 2))

		_, err := svc.Run(context.Background(), closetask.Request{ID: 1})
		require.NoError(t, err)

		checkedOut, err := repo.GetCheckout(context.Background())
		require.NoError(t, err)
		assert.Equal(t, model.TaskID(2), *checkedOut)
	})

	t.Run("Missing task fails", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Run(context.Background(), closetask.Request{ID: 42})

		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
