// Package conventions holds the on-disk layout conventions of a tisk
// project: the data directory name, the files inside it and how the
// project directory is discovered from a working directory.
package conventions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slok/tisk/internal/model"
)

const (
	// ProjectDirName is the tisk data directory name, created at the
	// project root and searched for upwards from the working directory.
	ProjectDirName = ".tisk"
	// DBFile is the SQLite database filename inside the project directory.
	DBFile = "tisk.db"
	// ConfigFile is the optional project configuration filename inside the
	// project directory.
	ConfigFile = "config.yaml"
)

// DBPath returns the full path to the project database.
func DBPath(projectDir string) string {
	return filepath.Join(projectDir, DBFile)
}

// ConfigPath returns the full path to the project configuration file.
func ConfigPath(projectDir string) string {
	return filepath.Join(projectDir, ConfigFile)
}

// FindProjectDir searches for the project data directory starting at dir
// and walking up through its ancestors. Returns model.ErrNotFound if no
// ancestor contains one.
func FindProjectDir(dir string) (string, error) {
	path, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("could not resolve %q: %w", dir, err)
	}

	for {
		candidate := filepath.Join(path, ProjectDirName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && info.IsDir():
			return candidate, nil
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return "", fmt.Errorf("could not check %q: %w", candidate, err)
		}

		parent := filepath.Dir(path)
		if parent == path {
			return "", fmt.Errorf("no %s directory in %q or any parent directory: %w", ProjectDirName, dir, model.ErrNotFound)
		}
		path = parent
	}
}

// Initialize creates the project data directory inside dir. Returns
// model.ErrAlreadyExists if it is already there.
func Initialize(dir string) (projectDir string, err error) {
	projectDir = filepath.Join(dir, ProjectDirName)

	info, err := os.Stat(projectDir)
	switch {
	case err == nil && info.IsDir():
		return projectDir, fmt.Errorf("project directory %q: %w", projectDir, model.ErrAlreadyExists)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("could not check %q: %w", projectDir, err)
	}

	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return "", fmt.Errorf("could not create project directory: %w", err)
	}

	return projectDir, nil
}
