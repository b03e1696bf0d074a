package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tisk/internal/app/add"
)

type AddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	title    string
	priority int
	note     string
	checkout bool
}

// NewAddCommand returns the add command.
func NewAddCommand(rootCmd *RootCommand, app *kingpin.Application) *AddCommand {
	c := &AddCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("add", "Add a new task.")
	c.Cmd.Arg("title", "Title of the task.").Required().StringVar(&c.title)
	c.Cmd.Flag("priority", "Priority of the task (higher sorts first).").Short('p').Default("-1").IntVar(&c.priority)
	c.Cmd.Flag("note", "Initial note for the task.").Short('n').StringVar(&c.note)
	c.Cmd.Flag("checkout", "Check the new task out.").Short('c').BoolVar(&c.checkout)

	return c
}

func (c AddCommand) Name() string { return c.Cmd.FullCommand() }

func (c AddCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, projectDir, err := openProjectRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, c.rootCmd, projectDir)
	if err != nil {
		return fmt.Errorf("could not load configuration: %w", err)
	}

	// -1 means the flag was not set, fall back to the configured default.
	priority := c.priority
	if priority < 0 {
		priority = cfg.DefaultPriority
	}

	svc, err := add.NewService(add.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, add.Request{
		Title:    c.title,
		Priority: priority,
		Note:     c.note,
		Checkout: c.checkout || cfg.AutoCheckout,
	})
	if err != nil {
		return fmt.Errorf("could not add task: %w", err)
	}

	printWarnings(c.rootCmd, resp.Warnings)
	fmt.Fprintf(c.rootCmd.Stdout, "Added task %d: %s\n", resp.Task.ID, resp.Task.Title)

	return nil
}
