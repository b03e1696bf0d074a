// Package chain implements the command-effect chaining protocol: commands
// mutate the in-memory project state and return a chain of effects that
// describes every durable change implied by that mutation. The executor
// commits effects one at a time and threads registered continuations
// between commits, keeping "apply to memory" strictly separated from
// "commit to disk".
package chain

import (
	"github.com/slok/tisk/internal/model"
)

// ContinuationID names a registered continuation. Continuations are
// dispatched by ID through a Registry instead of being carried as live
// closures, so a chain is plain data end to end.
type ContinuationID string

// ContinuationRef references a registered continuation plus the captured
// arguments it needs to resume command-specific logic.
type ContinuationRef struct {
	ID ContinuationID

	// Captured arguments. Only the fields a given continuation needs are set.
	TaskID   model.TaskID
	Note     string
	Checkout bool
}

// Chain is the unit of work a command hands to the executor: an effect to
// commit, optionally followed by a continuation that decides what comes
// next once that commit succeeded. A chain always ends in a terminal link.
type Chain struct {
	Effect Effect
	Next   *ContinuationRef
}

// Terminal returns a chain that commits the effect and finishes.
func Terminal(e Effect) Chain {
	return Chain{Effect: e}
}

// AndThen returns a chain that commits the effect and, on success, invokes
// the referenced continuation with the commit result to obtain the next
// chain. On commit failure the continuation is never invoked.
func AndThen(e Effect, next ContinuationRef) Chain {
	return Chain{Effect: e, Next: &next}
}

// IsTerminal reports whether nothing follows this chain's effect.
func (c Chain) IsTerminal() bool { return c.Next == nil }
