package printer

import "github.com/slok/tisk/internal/model"

// ProjectStatus is the printable project summary.
type ProjectStatus struct {
	CheckedOut *model.Task
	Open       int
	Closed     int
	Total      int
}

// Printer knows how to print task information in different formats.
type Printer interface {
	PrintTaskList(tasks []model.Task, checkedOut *model.TaskID) error
	PrintTask(task model.Task) error
	PrintNotes(task model.Task) error
	PrintStatus(status ProjectStatus) error
	PrintMessage(msg string) error
}
