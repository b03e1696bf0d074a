package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tisk/internal/app/checkin"
)

type CheckinCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewCheckinCommand returns the checkin command.
func NewCheckinCommand(rootCmd *RootCommand, app *kingpin.Application) *CheckinCommand {
	c := &CheckinCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("checkin", "Release the checked-out task.")

	return c
}

func (c CheckinCommand) Name() string { return c.Cmd.FullCommand() }

func (c CheckinCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, _, err := openProjectRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := checkin.NewService(checkin.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, checkin.Request{})
	if err != nil {
		return fmt.Errorf("could not check in: %w", err)
	}

	if resp.Released == nil {
		fmt.Fprintln(c.rootCmd.Stdout, "No task was checked out")
		return nil
	}
	fmt.Fprintf(c.rootCmd.Stdout, "Checked in task %d\n", *resp.Released)

	return nil
}
