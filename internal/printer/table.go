package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/slok/tisk/internal/model"
)

// TablePrinter prints task information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintTaskList prints tasks in a table format. The checked-out task is
// marked with an asterisk.
func (t *TablePrinter) PrintTaskList(tasks []model.Task, checkedOut *model.TaskID) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header
	fmt.Fprintln(tw, " \tID\tPRI\tSTATUS\tTITLE\tCREATED")

	// Print rows
	for _, task := range tasks {
		mark := " "
		if checkedOut != nil && *checkedOut == task.ID {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\n", mark, task.ID, task.Priority, task.Status, task.Title, TimeAgo(task.CreatedAt))
	}

	return nil
}

// PrintTask prints a single task's details.
func (t *TablePrinter) PrintTask(task model.Task) error {
	fmt.Fprintf(t.writer, "ID:        %d\n", task.ID)
	fmt.Fprintf(t.writer, "Title:     %s\n", task.Title)
	fmt.Fprintf(t.writer, "Priority:  %d\n", task.Priority)
	fmt.Fprintf(t.writer, "Status:    %s\n", task.Status)
	fmt.Fprintf(t.writer, "Created:   %s\n", FormatTimestamp(task.CreatedAt))
	fmt.Fprintf(t.writer, "Notes:     %d\n", len(task.Notes))

	return nil
}

// PrintNotes prints a task's notes in creation order.
func (t *TablePrinter) PrintNotes(task model.Task) error {
	fmt.Fprintf(t.writer, "Task %d: %s\n", task.ID, task.Title)
	if len(task.Notes) == 0 {
		fmt.Fprintln(t.writer, "No notes")
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "CREATED\tNOTE")
	for _, n := range task.Notes {
		fmt.Fprintf(tw, "%s\t%s\n", FormatTimestamp(n.CreatedAt), n.Body)
	}

	return nil
}

// PrintStatus prints the project status summary.
func (t *TablePrinter) PrintStatus(status ProjectStatus) error {
	if status.CheckedOut != nil {
		fmt.Fprintf(t.writer, "Checked out:  %d (%s)\n", status.CheckedOut.ID, status.CheckedOut.Title)
	} else {
		fmt.Fprintln(t.writer, "Checked out:  none")
	}
	fmt.Fprintf(t.writer, "Open:         %d\n", status.Open)
	fmt.Fprintf(t.writer, "Closed:       %d\n", status.Closed)
	fmt.Fprintf(t.writer, "Total:        %d\n", status.Total)

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
