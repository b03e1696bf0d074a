package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/tisk/internal/conventions"
	"github.com/slok/tisk/internal/log"
	"github.com/slok/tisk/internal/storage"
	storageio "github.com/slok/tisk/internal/storage/io"
	"github.com/slok/tisk/internal/storage/sqlite"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	Dir        string
	UserConfig string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("dir", "Directory the project is searched from.").Default(".").StringVar(&c.Dir)

	defaultUserConfig := filepath.Join(homedir.HomeDir(), ".config", "tisk", "config.yaml")
	app.Flag("user-config", "Path to the user-level configuration file.").Default(defaultUserConfig).StringVar(&c.UserConfig)

	return c
}

// openProjectRepository finds the project directory upwards from the root
// command's dir and opens its SQLite repository.
func openProjectRepository(ctx context.Context, rootCmd *RootCommand) (storage.Repository, string, error) {
	projectDir, err := conventions.FindProjectDir(rootCmd.Dir)
	if err != nil {
		return nil, "", fmt.Errorf("no project found, run \"tisk init\" first: %w", err)
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: conventions.DBPath(projectDir),
		Logger: rootCmd.Logger,
	})
	if err != nil {
		return nil, "", fmt.Errorf("could not create repository: %w", err)
	}

	return repo, projectDir, nil
}

// loadConfig returns the effective configuration: the project's config file
// when present, the user-level one otherwise, built-in defaults when neither
// exists.
func loadConfig(ctx context.Context, rootCmd *RootCommand, projectDir string) (storageio.ProjectConfig, error) {
	projectConfig := conventions.ConfigPath(projectDir)
	if _, err := os.Stat(projectConfig); err == nil {
		repo := storageio.NewConfigYAMLRepository(os.DirFS(projectDir))
		return repo.GetConfig(ctx, conventions.ConfigFile)
	}

	if _, err := os.Stat(rootCmd.UserConfig); err == nil {
		repo := storageio.NewConfigYAMLRepository(os.DirFS(filepath.Dir(rootCmd.UserConfig)))
		return repo.GetConfig(ctx, filepath.Base(rootCmd.UserConfig))
	}

	return storageio.DefaultProjectConfig, nil
}

// printWarnings surfaces chain warnings (committed no-op steps) to stderr so
// they do not mix with printer output.
func printWarnings(rootCmd *RootCommand, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(rootCmd.Stderr, "Warning: %s\n", w)
	}
}
