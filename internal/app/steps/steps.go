// Package steps registers the continuations the command set needs. Each
// continuation is the in-memory logic that runs after one effect of a
// multi-step command has committed, and decides the next link of the chain.
package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/slok/tisk/internal/chain"
	"github.com/slok/tisk/internal/log"
	"github.com/slok/tisk/internal/model"
)

const (
	// CheckoutAfterWrite checks out a task right after its record committed.
	CheckoutAfterWrite chain.ContinuationID = "checkout-after-write"
	// NoteAfterWrite appends a note to a task right after its record
	// committed, optionally chaining a checkout afterwards.
	NoteAfterWrite chain.ContinuationID = "note-after-write"
	// CloseAfterNote closes a task right after a note on it committed.
	CloseAfterNote chain.ContinuationID = "close-after-note"
	// CheckinAfterClose releases the checkout right after the checked-out
	// task's close committed.
	CheckinAfterClose chain.ContinuationID = "checkin-after-close"
)

// NewRegistry returns a continuation registry with every step registered.
func NewRegistry() (*chain.Registry, error) {
	reg := chain.NewRegistry()

	conts := map[chain.ContinuationID]chain.ContinuationFunc{
		CheckoutAfterWrite: checkoutAfterWrite,
		NoteAfterWrite:     noteAfterWrite,
		CloseAfterNote:     closeAfterNote,
		CheckinAfterClose:  checkinAfterClose,
	}
	for id, fn := range conts {
		if err := reg.Register(id, fn); err != nil {
			return nil, fmt.Errorf("could not register continuation: %w", err)
		}
	}

	return reg, nil
}

// NewExecutor returns a chain executor wired with the full continuation set.
func NewExecutor(committer chain.Committer, logger log.Logger) (*chain.Executor, error) {
	reg, err := NewRegistry()
	if err != nil {
		return nil, err
	}

	return chain.NewExecutor(chain.ExecutorConfig{
		Committer:     committer,
		Continuations: reg,
		Logger:        logger,
	})
}

func checkoutAfterWrite(ctx context.Context, state *model.ProjectState, ref chain.ContinuationRef, result chain.CommitResult) (chain.Chain, error) {
	if _, err := state.Get(ref.TaskID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return chain.Terminal(chain.NoOp{Reason: fmt.Sprintf("task %d not checked out: not found", ref.TaskID)}), nil
		}
		return chain.Chain{}, err
	}

	state.Checkout(ref.TaskID)
	return chain.Terminal(chain.Checkout{TaskID: ref.TaskID}), nil
}

func noteAfterWrite(ctx context.Context, state *model.ProjectState, ref chain.ContinuationRef, result chain.CommitResult) (chain.Chain, error) {
	note, err := state.AddNote(ref.TaskID, ref.Note)
	if err != nil {
		// The previous commit stays committed, this step reports instead of
		// pretending the note was added.
		if errors.Is(err, model.ErrNotFound) {
			return chain.Terminal(chain.NoOp{Reason: fmt.Sprintf("note not added: task %d not found", ref.TaskID)}), nil
		}
		return chain.Chain{}, err
	}

	effect := chain.AddNote{TaskID: ref.TaskID, Note: *note}
	if ref.Checkout {
		return chain.AndThen(effect, chain.ContinuationRef{ID: CheckoutAfterWrite, TaskID: ref.TaskID}), nil
	}
	return chain.Terminal(effect), nil
}

func closeAfterNote(ctx context.Context, state *model.ProjectState, ref chain.ContinuationRef, result chain.CommitResult) (chain.Chain, error) {
	if _, err := state.CloseTask(ref.TaskID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return chain.Terminal(chain.NoOp{Reason: fmt.Sprintf("task %d not closed: not found", ref.TaskID)}), nil
		}
		return chain.Chain{}, err
	}

	effect := chain.Close{TaskID: ref.TaskID}
	if checkedOut := state.CheckedOut(); checkedOut != nil && *checkedOut == ref.TaskID {
		return chain.AndThen(effect, chain.ContinuationRef{ID: CheckinAfterClose}), nil
	}
	return chain.Terminal(effect), nil
}

func checkinAfterClose(ctx context.Context, state *model.ProjectState, ref chain.ContinuationRef, result chain.CommitResult) (chain.Chain, error) {
	state.CheckIn()
	return chain.Terminal(chain.CheckIn{}), nil
}
