package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tisk/internal/app/closetask"
	"github.com/slok/tisk/internal/model"
)

type CloseCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id   uint32
	note string
}

// NewCloseCommand returns the close command.
func NewCloseCommand(rootCmd *RootCommand, app *kingpin.Application) *CloseCommand {
	c := &CloseCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("close", "Close a task.")
	c.Cmd.Arg("id", "ID of the task to close.").Required().Uint32Var(&c.id)
	c.Cmd.Flag("note", "Closing note for the task.").Short('n').StringVar(&c.note)

	return c
}

func (c CloseCommand) Name() string { return c.Cmd.FullCommand() }

func (c CloseCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, _, err := openProjectRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := closetask.NewService(closetask.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, closetask.Request{
		ID:   model.TaskID(c.id),
		Note: c.note,
	})
	if err != nil {
		return fmt.Errorf("could not close task: %w", err)
	}

	printWarnings(c.rootCmd, resp.Warnings)
	if resp.AlreadyClosed {
		fmt.Fprintf(c.rootCmd.Stdout, "Task %d is already closed\n", resp.Task.ID)
		return nil
	}
	fmt.Fprintf(c.rootCmd.Stdout, "Closed task %d: %s\n", resp.Task.ID, resp.Task.Title)

	return nil
}
