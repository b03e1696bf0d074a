package edit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tisk/internal/app/edit"
	"github.com/slok/tisk/internal/model"
	"github.com/slok/tisk/internal/storage/memory"
)

func newService(t *testing.T, tasks ...model.Task) (*edit.Service, *memory.Repository) {
	t.Helper()
	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)
	for _, task := range tasks {
		require.NoError(t, repo.SaveTask(context.Background(), task))
	}

	svc, err := edit.NewService(edit.ServiceConfig{Repository: repo})
	require.NoError(t, err)

	return svc, repo
}

func TestServiceRun(t *testing.T) {
	task := model.Task{ID: 1, Title: "a", Priority: 1, Status: model.TaskStatusOpen, CreatedAt: time.Now().UTC()}

	t.Run("Priority change commits the full record", func(t *testing.T) {
		svc, repo := newService(t, task)

		resp, err := svc.Run(context.Background(), edit.Request{ID: 1, Priority: 5})

		require.NoError(t, err)
		assert.True(t, resp.Changed)
		assert.Equal(t, 1, resp.OldPriority)
		assert.Equal(t, 5, resp.Task.Priority)
		assert.Equal(t, 1, resp.Committed)

		stored, err := repo.GetTask(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 5, stored.Priority)
	})

	t.Run("Edit to the current priority changes nothing durably", func(t *testing.T) {
		svc, repo := newService(t, task)

		resp, err := svc.Run(context.Background(), edit.Request{ID: 1, Priority: 1})

		require.NoError(t, err)
		assert.False(t, resp.Changed)
		assert.Equal(t, 1, resp.Committed)

		stored, err := repo.GetTask(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Priority)
	})

	t.Run("Negative priority fails validation", func(t *testing.T) {
		svc, _ := newService(t, task)

		_, err := svc.Run(context.Background(), edit.Request{ID: 1, Priority: -3})

		assert.ErrorIs(t, err, model.ErrNotValid)
	})

	t.Run("Missing task fails", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Run(context.Background(), edit.Request{ID: 42, Priority: 2})

		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
