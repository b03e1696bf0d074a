package chain

import (
	"context"
	"fmt"

	"github.com/slok/tisk/internal/model"
)

// ContinuationFunc is the in-memory logic a continuation reference resolves
// to. It receives the result of the commit that preceded it and returns the
// next chain. It may read and mutate the project state, it must never call
// the Committer: the only way it can reach the durable store is through the
// chain it returns.
type ContinuationFunc func(ctx context.Context, state *model.ProjectState, ref ContinuationRef, result CommitResult) (Chain, error)

// Registry resolves continuation references to registered logic.
// Continuations are registered ahead of time under stable identifiers,
// one per distinct "and then" behavior the command set needs.
type Registry struct {
	conts map[ContinuationID]ContinuationFunc
}

// NewRegistry creates an empty continuation registry.
func NewRegistry() *Registry {
	return &Registry{conts: map[ContinuationID]ContinuationFunc{}}
}

// Register adds a continuation under the given ID.
func (r *Registry) Register(id ContinuationID, fn ContinuationFunc) error {
	if id == "" {
		return fmt.Errorf("continuation id is required: %w", model.ErrNotValid)
	}
	if fn == nil {
		return fmt.Errorf("continuation %q func is required: %w", id, model.ErrNotValid)
	}
	if _, ok := r.conts[id]; ok {
		return fmt.Errorf("continuation %q: %w", id, model.ErrAlreadyExists)
	}
	r.conts[id] = fn
	return nil
}

// Dispatch resolves a reference and invokes its continuation with the
// commit result, returning the next chain.
func (r *Registry) Dispatch(ctx context.Context, state *model.ProjectState, ref ContinuationRef, result CommitResult) (Chain, error) {
	fn, ok := r.conts[ref.ID]
	if !ok {
		return Chain{}, fmt.Errorf("continuation %q: %w", ref.ID, model.ErrNotFound)
	}
	return fn(ctx, state, ref, result)
}
