package io

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/slok/tisk/internal/model"
)

// ProjectConfig is the validated project-level configuration.
type ProjectConfig struct {
	// DefaultPriority is the priority assigned to new tasks when the user
	// does not pass one.
	DefaultPriority int
	// AutoCheckout makes every added task the checked-out one.
	AutoCheckout bool
}

// DefaultProjectConfig is the configuration used when the project has no
// config file.
var DefaultProjectConfig = ProjectConfig{DefaultPriority: 1}

// ConfigYAMLRepository loads project configuration from YAML files.
type ConfigYAMLRepository struct {
	fs fs.FS
}

// NewConfigYAMLRepository creates a new YAML config repository.
func NewConfigYAMLRepository(filesystem fs.FS) *ConfigYAMLRepository {
	return &ConfigYAMLRepository{fs: filesystem}
}

// GetConfig loads the project configuration from a YAML file and returns a
// validated config. A missing file yields the defaults.
func (r *ConfigYAMLRepository) GetConfig(ctx context.Context, path string) (ProjectConfig, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultProjectConfig, nil
		}
		return ProjectConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return ProjectConfig{}, ctx.Err()
	}

	var cfg projectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ProjectConfig{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return ProjectConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg.toModel(), nil
}

// projectConfig represents the YAML structure of the project configuration.
type projectConfig struct {
	DefaultPriority *int `yaml:"default_priority,omitempty"`
	AutoCheckout    bool `yaml:"auto_checkout,omitempty"`
}

func (c projectConfig) validate() error {
	if c.DefaultPriority != nil && *c.DefaultPriority < 0 {
		return fmt.Errorf("default_priority must be 0 or greater: %w", model.ErrNotValid)
	}
	return nil
}

func (c projectConfig) toModel() ProjectConfig {
	cfg := DefaultProjectConfig
	if c.DefaultPriority != nil {
		cfg.DefaultPriority = *c.DefaultPriority
	}
	cfg.AutoCheckout = c.AutoCheckout
	return cfg
}
