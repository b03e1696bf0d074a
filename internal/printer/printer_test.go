package printer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tisk/internal/model"
	"github.com/slok/tisk/internal/printer"
)

func taskFixture() model.Task {
	createdAt := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	return model.Task{
		ID:        3,
		Title:     "write spec",
		Priority:  2,
		Status:    model.TaskStatusOpen,
		CreatedAt: createdAt,
		Notes: []model.Note{
			{ID: "01234567890ABCDEFGHIJKLMNO", Body: "remember the edge cases", CreatedAt: createdAt},
		},
	}
}

func TestTablePrinterPrintTaskList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	checkedOut := model.TaskID(3)
	err := p.PrintTaskList([]model.Task{taskFixture()}, &checkedOut)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "write spec")
	assert.Contains(t, out, "*")
}

func TestTablePrinterPrintTaskListEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintTaskList(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestTablePrinterPrintTask(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintTask(taskFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID:        3")
	assert.Contains(t, out, "Title:     write spec")
	assert.Contains(t, out, "Priority:  2")
	assert.Contains(t, out, "Created:   2026-01-30 10:00:00 UTC")
	assert.Contains(t, out, "Notes:     1")
}

func TestTablePrinterPrintNotes(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintNotes(taskFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Task 3: write spec")
	assert.Contains(t, out, "remember the edge cases")
}

func TestTablePrinterPrintNotesEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	task := taskFixture()
	task.Notes = nil
	err := p.PrintNotes(task)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "No notes")
}

func TestTablePrinterPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	task := taskFixture()
	err := p.PrintStatus(printer.ProjectStatus{CheckedOut: &task, Open: 2, Closed: 1, Total: 3})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Checked out:  3 (write spec)")
	assert.Contains(t, out, "Open:         2")
	assert.Contains(t, out, "Closed:       1")
	assert.Contains(t, out, "Total:        3")
}

func TestTablePrinterPrintStatusNoCheckout(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintStatus(printer.ProjectStatus{Open: 1, Total: 1})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Checked out:  none")
}

func TestTablePrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintMessage("ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", strings.TrimSpace(buf.String()))
}

func TestJSONPrinterPrintTaskList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	checkedOut := model.TaskID(3)
	err := p.PrintTaskList([]model.Task{taskFixture()}, &checkedOut)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"id": 3`)
	assert.Contains(t, out, `"title": "write spec"`)
	assert.Contains(t, out, `"checked_out": true`)
}

func TestJSONPrinterPrintTask(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintTask(taskFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"status": "open"`)
	assert.Contains(t, out, `"body": "remember the edge cases"`)
}

func TestJSONPrinterPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintStatus(printer.ProjectStatus{Open: 2, Closed: 1, Total: 3})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"checked_out": null`)
	assert.Contains(t, out, `"open": 2`)
}
