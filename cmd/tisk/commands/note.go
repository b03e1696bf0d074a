package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tisk/internal/app/note"
	"github.com/slok/tisk/internal/model"
	"github.com/slok/tisk/internal/printer"
)

type NoteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	body   string
	id     uint32
	list   bool
	format string
}

// NewNoteCommand returns the note command.
func NewNoteCommand(rootCmd *RootCommand, app *kingpin.Application) *NoteCommand {
	c := &NoteCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("note", "Add a note to a task, or list its notes.")
	c.Cmd.Arg("note", "Note to add. Required unless --list is set.").StringVar(&c.body)
	c.Cmd.Flag("id", "Target task ID, the checked-out task when omitted.").Uint32Var(&c.id)
	c.Cmd.Flag("list", "List the task's notes instead of adding one.").Short('l').BoolVar(&c.list)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c NoteCommand) Name() string { return c.Cmd.FullCommand() }

func (c NoteCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, _, err := openProjectRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := note.NewService(note.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	var taskID *model.TaskID
	if c.id != 0 {
		id := model.TaskID(c.id)
		taskID = &id
	}

	if c.list {
		resp, err := svc.List(ctx, note.ListRequest{TaskID: taskID})
		if err != nil {
			return fmt.Errorf("could not list notes: %w", err)
		}

		var p printer.Printer
		switch c.format {
		case "json":
			p = printer.NewJSONPrinter(c.rootCmd.Stdout)
		default: // table
			p = printer.NewTablePrinter(c.rootCmd.Stdout)
		}

		if err := p.PrintNotes(resp.Task); err != nil {
			return fmt.Errorf("could not print notes: %w", err)
		}
		return nil
	}

	resp, err := svc.Run(ctx, note.Request{TaskID: taskID, Body: c.body})
	if err != nil {
		return fmt.Errorf("could not add note: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Added note to task %d\n", resp.Task.ID)

	return nil
}
