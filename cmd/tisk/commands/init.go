package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tisk/internal/app/initialize"
	"github.com/slok/tisk/internal/storage/sqlite"
)

type InitCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewInitCommand returns the init command.
func NewInitCommand(rootCmd *RootCommand, app *kingpin.Application) *InitCommand {
	c := &InitCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("init", "Initialize a new project in the current directory.")

	return c
}

func (c InitCommand) Name() string { return c.Cmd.FullCommand() }

func (c InitCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	svc, err := initialize.NewService(initialize.ServiceConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, initialize.Request{Dir: c.rootCmd.Dir})
	if err != nil {
		return fmt.Errorf("could not initialize project: %w", err)
	}

	// Open the repository once so the database and its schema exist before
	// the first command runs.
	_, err = sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: resp.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create database: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Initialized project at %s\n", resp.ProjectDir)

	return nil
}
