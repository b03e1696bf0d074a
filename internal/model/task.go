package model

import (
	"time"
)

// TaskID identifies a task inside a project. IDs are sequential and
// start at 1, they are assigned by the in-memory project state.
type TaskID uint32

// TaskStatus represents the state of a task.
type TaskStatus string

const (
	TaskStatusOpen   TaskStatus = "open"
	TaskStatusClosed TaskStatus = "closed"
)

// Task represents a single tracked task of a project.
type Task struct {
	ID        TaskID
	Title     string
	Priority  int
	Status    TaskStatus
	CreatedAt time.Time
	Notes     []Note
}

// Note represents a single note attached to a task. Notes are ordered by
// creation, the ID is a ULID used as the storage row key.
type Note struct {
	ID        string
	Body      string
	CreatedAt time.Time
}
