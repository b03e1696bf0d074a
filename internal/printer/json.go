package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/tisk/internal/model"
)

// JSONPrinter prints task information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// listItem represents a task in the list output (subset of fields).
type listItem struct {
	ID         uint32    `json:"id"`
	Title      string    `json:"title"`
	Priority   int       `json:"priority"`
	Status     string    `json:"status"`
	CheckedOut bool      `json:"checked_out"`
	CreatedAt  time.Time `json:"created_at"`
}

// taskOutput represents the full task output.
type taskOutput struct {
	ID        uint32       `json:"id"`
	Title     string       `json:"title"`
	Priority  int          `json:"priority"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	Notes     []noteOutput `json:"notes"`
}

// noteOutput represents a single note output.
type noteOutput struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// statusOutput represents the project status output.
type statusOutput struct {
	CheckedOut *taskOutput `json:"checked_out"`
	Open       int         `json:"open"`
	Closed     int         `json:"closed"`
	Total      int         `json:"total"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintTaskList prints tasks in JSON format with a subset of fields.
func (j *JSONPrinter) PrintTaskList(tasks []model.Task, checkedOut *model.TaskID) error {
	items := make([]listItem, len(tasks))
	for i, task := range tasks {
		items[i] = listItem{
			ID:         uint32(task.ID),
			Title:      task.Title,
			Priority:   task.Priority,
			Status:     string(task.Status),
			CheckedOut: checkedOut != nil && *checkedOut == task.ID,
			CreatedAt:  task.CreatedAt.UTC(),
		}
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// PrintTask prints a single task's details in JSON format.
func (j *JSONPrinter) PrintTask(task model.Task) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(newTaskOutput(task))
}

// PrintNotes prints a task's notes in JSON format.
func (j *JSONPrinter) PrintNotes(task model.Task) error {
	notes := make([]noteOutput, len(task.Notes))
	for i, n := range task.Notes {
		notes[i] = noteOutput{ID: n.ID, Body: n.Body, CreatedAt: n.CreatedAt.UTC()}
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(notes)
}

// PrintStatus prints the project status summary in JSON format.
func (j *JSONPrinter) PrintStatus(status ProjectStatus) error {
	output := statusOutput{
		Open:   status.Open,
		Closed: status.Closed,
		Total:  status.Total,
	}
	if status.CheckedOut != nil {
		t := newTaskOutput(*status.CheckedOut)
		output.CheckedOut = &t
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	output := messageOutput{Message: msg}
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func newTaskOutput(task model.Task) taskOutput {
	notes := make([]noteOutput, len(task.Notes))
	for i, n := range task.Notes {
		notes[i] = noteOutput{ID: n.ID, Body: n.Body, CreatedAt: n.CreatedAt.UTC()}
	}

	return taskOutput{
		ID:        uint32(task.ID),
		Title:     task.Title,
		Priority:  task.Priority,
		Status:    string(task.Status),
		CreatedAt: task.CreatedAt.UTC(),
		Notes:     notes,
	}
}
