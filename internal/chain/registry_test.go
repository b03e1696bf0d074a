package chain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tisk/internal/chain"
	"github.com/slok/tisk/internal/model"
)

func noopContinuation(ctx context.Context, state *model.ProjectState, ref chain.ContinuationRef, result chain.CommitResult) (chain.Chain, error) {
	return chain.Terminal(chain.NoOp{}), nil
}

func TestRegistryRegister(t *testing.T) {
	tests := map[string]struct {
		register func(r *chain.Registry) error
		expErr   error
	}{
		"Registering a continuation works": {
			register: func(r *chain.Registry) error {
				return r.Register("step-1", noopContinuation)
			},
		},
		"Registering an empty ID fails": {
			register: func(r *chain.Registry) error {
				return r.Register("", noopContinuation)
			},
			expErr: model.ErrNotValid,
		},
		"Registering a nil func fails": {
			register: func(r *chain.Registry) error {
				return r.Register("step-1", nil)
			},
			expErr: model.ErrNotValid,
		},
		"Registering the same ID twice fails": {
			register: func(r *chain.Registry) error {
				if err := r.Register("step-1", noopContinuation); err != nil {
					return err
				}
				return r.Register("step-1", noopContinuation)
			},
			expErr: model.ErrAlreadyExists,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.register(chain.NewRegistry())

			if tt.expErr != nil {
				assert.ErrorIs(t, err, tt.expErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistryDispatch(t *testing.T) {
	reg := chain.NewRegistry()
	require.NoError(t, reg.Register("echo", func(ctx context.Context, state *model.ProjectState, ref chain.ContinuationRef, result chain.CommitResult) (chain.Chain, error) {
		return chain.Terminal(chain.Checkout{TaskID: ref.TaskID}), nil
	}))

	state := model.NewProjectState(nil, nil)

	c, err := reg.Dispatch(context.Background(), state, chain.ContinuationRef{ID: "echo", TaskID: 7}, chain.CommitResult{Effect: chain.NoOp{}})
	require.NoError(t, err)
	assert.True(t, c.IsTerminal())
	assert.Equal(t, chain.Checkout{TaskID: 7}, c.Effect)

	_, err = reg.Dispatch(context.Background(), state, chain.ContinuationRef{ID: "unknown"}, chain.CommitResult{})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestChainConstructors(t *testing.T) {
	terminal := chain.Terminal(chain.CheckIn{})
	assert.True(t, terminal.IsTerminal())
	assert.Nil(t, terminal.Next)

	andThen := chain.AndThen(chain.Close{TaskID: 2}, chain.ContinuationRef{ID: "after-close", TaskID: 2})
	assert.False(t, andThen.IsTerminal())
	require.NotNil(t, andThen.Next)
	assert.Equal(t, chain.ContinuationID("after-close"), andThen.Next.ID)
	assert.Equal(t, chain.Close{TaskID: 2}, andThen.Effect)
}
