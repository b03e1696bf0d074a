package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tisk/internal/app/list"
	"github.com/slok/tisk/internal/printer"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	all    bool
	closed bool
	format string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List tasks, open ones by default.")
	c.Cmd.Flag("all", "List open and closed tasks.").Short('a').BoolVar(&c.all)
	c.Cmd.Flag("closed", "List closed tasks only.").BoolVar(&c.closed)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, _, err := openProjectRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := list.NewService(list.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	filter := list.FilterOpen
	switch {
	case c.all:
		filter = list.FilterAll
	case c.closed:
		filter = list.FilterClosed
	}

	resp, err := svc.Run(ctx, list.Request{Filter: filter})
	if err != nil {
		return fmt.Errorf("could not list tasks: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintTaskList(resp.Tasks, resp.CheckedOut); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}
