package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tisk/internal/app/checkout"
	"github.com/slok/tisk/internal/model"
)

type CheckoutCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id uint32
}

// NewCheckoutCommand returns the checkout command.
func NewCheckoutCommand(rootCmd *RootCommand, app *kingpin.Application) *CheckoutCommand {
	c := &CheckoutCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("checkout", "Check a task out to work on it.")
	c.Cmd.Arg("id", "ID of the task to check out.").Required().Uint32Var(&c.id)

	return c
}

func (c CheckoutCommand) Name() string { return c.Cmd.FullCommand() }

func (c CheckoutCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, _, err := openProjectRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := checkout.NewService(checkout.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, checkout.Request{ID: model.TaskID(c.id)})
	if err != nil {
		return fmt.Errorf("could not check out task: %w", err)
	}

	if resp.Previous != nil && *resp.Previous != resp.Task.ID {
		fmt.Fprintf(c.rootCmd.Stdout, "Released task %d\n", *resp.Previous)
	}
	fmt.Fprintf(c.rootCmd.Stdout, "Checked out task %d: %s\n", resp.Task.ID, resp.Task.Title)

	return nil
}
