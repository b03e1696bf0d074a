package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/tisk/internal/chain"
	"github.com/slok/tisk/internal/model"
	"github.com/slok/tisk/internal/storage"
	"github.com/slok/tisk/internal/storage/storagemock"
)

func TestNewCommitter(t *testing.T) {
	_, err := storage.NewCommitter(storage.CommitterConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository is required")

	committer, err := storage.NewCommitter(storage.CommitterConfig{Repository: &storagemock.MockRepository{}})
	require.NoError(t, err)
	assert.NotNil(t, committer)
}

func TestCommitterCommit(t *testing.T) {
	task := model.Task{ID: 1, Title: "write spec", Priority: 1, Status: model.TaskStatusOpen}
	note := model.Note{ID: "01J0", Body: "remember"}
	repoErr := errors.New("io error")

	tests := map[string]struct {
		effect     chain.Effect
		setupMocks func(repo *storagemock.MockRepository)
		expErr     bool
	}{
		"Write effect saves the full task": {
			effect: chain.Write{Task: task},
			setupMocks: func(repo *storagemock.MockRepository) {
				repo.On("SaveTask", mock.Anything, task).Once().Return(nil)
			},
		},
		"Checkout effect sets the checkout pointer": {
			effect: chain.Checkout{TaskID: 1},
			setupMocks: func(repo *storagemock.MockRepository) {
				repo.On("SetCheckout", mock.Anything, model.TaskID(1)).Once().Return(nil)
			},
		},
		"CheckIn effect clears the checkout pointer": {
			effect: chain.CheckIn{},
			setupMocks: func(repo *storagemock.MockRepository) {
				repo.On("ClearCheckout", mock.Anything).Once().Return(nil)
			},
		},
		"Close effect closes the stored task": {
			effect: chain.Close{TaskID: 2},
			setupMocks: func(repo *storagemock.MockRepository) {
				repo.On("CloseTask", mock.Anything, model.TaskID(2)).Once().Return(nil)
			},
		},
		"AddNote effect appends the note": {
			effect: chain.AddNote{TaskID: 1, Note: note},
			setupMocks: func(repo *storagemock.MockRepository) {
				repo.On("AppendNote", mock.Anything, model.TaskID(1), note).Once().Return(nil)
			},
		},
		"NoOp effect touches nothing": {
			effect:     chain.NoOp{Reason: "already closed"},
			setupMocks: func(repo *storagemock.MockRepository) {},
		},
		"Repository failure is a commit failure": {
			effect: chain.Write{Task: task},
			setupMocks: func(repo *storagemock.MockRepository) {
				repo.On("SaveTask", mock.Anything, task).Once().Return(repoErr)
			},
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			repo := &storagemock.MockRepository{}
			tt.setupMocks(repo)

			committer, err := storage.NewCommitter(storage.CommitterConfig{Repository: repo})
			require.NoError(t, err)

			result, err := committer.Commit(context.Background(), tt.effect)

			if tt.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, repoErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.effect, result.Effect)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestLoadState(t *testing.T) {
	task := model.Task{ID: 3, Title: "a", Priority: 1, Status: model.TaskStatusOpen}
	checkedOut := model.TaskID(3)

	tests := map[string]struct {
		setupMocks func(repo *storagemock.MockRepository)
		expErr     bool
		validate   func(t *testing.T, state *model.ProjectState)
	}{
		"Tasks and checkout are loaded": {
			setupMocks: func(repo *storagemock.MockRepository) {
				repo.On("ListTasks", mock.Anything).Once().Return([]model.Task{task}, nil)
				repo.On("GetCheckout", mock.Anything).Once().Return(&checkedOut, nil)
			},
			validate: func(t *testing.T, state *model.ProjectState) {
				assert.Equal(t, 1, state.Len())
				require.NotNil(t, state.CheckedOut())
				assert.Equal(t, checkedOut, *state.CheckedOut())
			},
		},
		"Missing checkout pointer is not an error": {
			setupMocks: func(repo *storagemock.MockRepository) {
				repo.On("ListTasks", mock.Anything).Once().Return([]model.Task{task}, nil)
				repo.On("GetCheckout", mock.Anything).Once().Return(nil, model.ErrNotFound)
			},
			validate: func(t *testing.T, state *model.ProjectState) {
				assert.Equal(t, 1, state.Len())
				assert.Nil(t, state.CheckedOut())
			},
		},
		"Listing failure is propagated": {
			setupMocks: func(repo *storagemock.MockRepository) {
				repo.On("ListTasks", mock.Anything).Once().Return(nil, errors.New("io error"))
			},
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			repo := &storagemock.MockRepository{}
			tt.setupMocks(repo)

			state, err := storage.LoadState(context.Background(), repo)

			if tt.expErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				tt.validate(t, state)
			}

			repo.AssertExpectations(t)
		})
	}
}
