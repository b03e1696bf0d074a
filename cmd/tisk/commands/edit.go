package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tisk/internal/app/edit"
	"github.com/slok/tisk/internal/model"
)

type EditCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id       uint32
	priority int
}

// NewEditCommand returns the edit command.
func NewEditCommand(rootCmd *RootCommand, app *kingpin.Application) *EditCommand {
	c := &EditCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("edit", "Edit a task's priority.")
	c.Cmd.Arg("id", "ID of the task to edit.").Required().Uint32Var(&c.id)
	c.Cmd.Flag("priority", "New priority of the task.").Short('p').Required().IntVar(&c.priority)

	return c
}

func (c EditCommand) Name() string { return c.Cmd.FullCommand() }

func (c EditCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, _, err := openProjectRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := edit.NewService(edit.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, edit.Request{
		ID:       model.TaskID(c.id),
		Priority: c.priority,
	})
	if err != nil {
		return fmt.Errorf("could not edit task: %w", err)
	}

	if !resp.Changed {
		fmt.Fprintf(c.rootCmd.Stdout, "Task %d already has priority %d\n", resp.Task.ID, resp.Task.Priority)
		return nil
	}
	fmt.Fprintf(c.rootCmd.Stdout, "Changed task %d priority %d -> %d\n", resp.Task.ID, resp.OldPriority, resp.Task.Priority)

	return nil
}
