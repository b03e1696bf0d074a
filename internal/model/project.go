package model

import (
	"fmt"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
)

// ProjectState is the in-memory view of one project's tasks and checkout
// pointer. Continuations mutate it while a chain runs so later steps observe
// the effects of earlier ones, it is never shared across commands.
type ProjectState struct {
	tasks      map[TaskID]Task
	checkedOut *TaskID
}

// NewProjectState creates a project state from the given tasks and checkout
// pointer.
func NewProjectState(tasks []Task, checkedOut *TaskID) *ProjectState {
	m := make(map[TaskID]Task, len(tasks))
	for _, t := range tasks {
		m[t.ID] = t
	}

	return &ProjectState{
		tasks:      m,
		checkedOut: checkedOut,
	}
}

// NextID returns the ID the next added task will get, max existing plus one.
func (p *ProjectState) NextID() TaskID {
	var max TaskID
	for id := range p.tasks {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// AddTask creates a new open task with the next sequential ID and stores it.
func (p *ProjectState) AddTask(title string, priority int) Task {
	task := Task{
		ID:        p.NextID(),
		Title:     title,
		Priority:  priority,
		Status:    TaskStatusOpen,
		CreatedAt: time.Now().UTC(),
	}
	p.tasks[task.ID] = task

	return task
}

// Get returns a copy of the task with the given ID.
func (p *ProjectState) Get(id TaskID) (*Task, error) {
	task, ok := p.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}

	task.Notes = append([]Note(nil), task.Notes...)
	return &task, nil
}

// CloseTask marks the task as closed and returns a copy of the updated task.
// Closing an already closed task is valid and changes nothing.
func (p *ProjectState) CloseTask(id TaskID) (*Task, error) {
	task, ok := p.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}

	task.Status = TaskStatusClosed
	p.tasks[id] = task

	return &task, nil
}

// SetPriority changes the task's priority and returns the previous value.
func (p *ProjectState) SetPriority(id TaskID, priority int) (int, error) {
	task, ok := p.tasks[id]
	if !ok {
		return 0, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}

	old := task.Priority
	task.Priority = priority
	p.tasks[id] = task

	return old, nil
}

// AddNote appends a note to the task and returns a copy of the new note.
func (p *ProjectState) AddNote(id TaskID, body string) (*Note, error) {
	task, ok := p.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}

	note := Note{
		ID:        ulid.Make().String(),
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	task.Notes = append(task.Notes, note)
	p.tasks[id] = task

	return &note, nil
}

// CheckedOut returns the currently checked out task ID, nil when none.
func (p *ProjectState) CheckedOut() *TaskID {
	if p.checkedOut == nil {
		return nil
	}
	id := *p.checkedOut
	return &id
}

// Checkout points the checkout at the given task, replacing any previous one.
func (p *ProjectState) Checkout(id TaskID) {
	p.checkedOut = &id
}

// CheckIn clears the checkout pointer. Checking in with no checkout is valid.
func (p *ProjectState) CheckIn() {
	p.checkedOut = nil
}

// Len returns the number of tasks in the project.
func (p *ProjectState) Len() int {
	return len(p.tasks)
}

// All returns every task sorted for display.
func (p *ProjectState) All() []Task {
	tasks := make([]Task, 0, len(p.tasks))
	for _, t := range p.tasks {
		tasks = append(tasks, t)
	}
	SortTasks(tasks)
	return tasks
}

// Open returns the open tasks sorted for display.
func (p *ProjectState) Open() []Task {
	return p.filter(TaskStatusOpen)
}

// Closed returns the closed tasks sorted for display.
func (p *ProjectState) Closed() []Task {
	return p.filter(TaskStatusClosed)
}

func (p *ProjectState) filter(status TaskStatus) []Task {
	tasks := make([]Task, 0, len(p.tasks))
	for _, t := range p.tasks {
		if t.Status == status {
			tasks = append(tasks, t)
		}
	}
	SortTasks(tasks)
	return tasks
}

// SortTasks orders tasks by priority descending, newest first on ties.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority > tasks[j].Priority
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
}
