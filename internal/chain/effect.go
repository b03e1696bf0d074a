package chain

import (
	"fmt"

	"github.com/slok/tisk/internal/model"
)

// Effect describes one durable mutation to apply to the project store.
// It is pure data: the closed set of variants below is everything a
// command can ask the store to do. Committing an effect is the
// Committer's job, effects themselves carry no behavior.
type Effect interface {
	isEffect()
	String() string
}

// Write inserts or replaces the full record of a task.
type Write struct {
	Task model.Task
}

// Checkout persists that the given task is the checked-out one.
// It is a last-write-wins pointer update, not a delta.
type Checkout struct {
	TaskID model.TaskID
}

// CheckIn persists that no task is checked out.
type CheckIn struct{}

// Close persists that the given task's status is closed.
type Close struct {
	TaskID model.TaskID
}

// AddNote appends a note to a task's note sequence.
type AddNote struct {
	TaskID model.TaskID
	Note   model.Note
}

// NoOp is an explicit no-op, used when a step requires no durable change.
// Reason, when set, is surfaced to the caller as a warning so a
// continuation can report a problem without breaking the commit loop.
type NoOp struct {
	Reason string
}

func (Write) isEffect()    {}
func (Checkout) isEffect() {}
func (CheckIn) isEffect()  {}
func (Close) isEffect()    {}
func (AddNote) isEffect()  {}
func (NoOp) isEffect()     {}

func (e Write) String() string    { return fmt.Sprintf("write(task %d)", e.Task.ID) }
func (e Checkout) String() string { return fmt.Sprintf("checkout(task %d)", e.TaskID) }
func (CheckIn) String() string    { return "checkin" }
func (e Close) String() string    { return fmt.Sprintf("close(task %d)", e.TaskID) }
func (e AddNote) String() string  { return fmt.Sprintf("add-note(task %d)", e.TaskID) }
func (NoOp) String() string       { return "noop" }

// CommitResult is the outcome of successfully committing one effect. It
// echoes the committed effect so continuations can resume from the data
// that is now durable. Commit failures are plain errors and never reach
// a continuation.
type CommitResult struct {
	Effect Effect
}
