package io_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tisk/internal/model"
	storageio "github.com/slok/tisk/internal/storage/io"
)

func TestGetConfig(t *testing.T) {
	tests := map[string]struct {
		files   fstest.MapFS
		path    string
		expCfg  storageio.ProjectConfig
		expErr  bool
		errType error
	}{
		"Missing file yields defaults": {
			files:  fstest.MapFS{},
			path:   "config.yaml",
			expCfg: storageio.ProjectConfig{DefaultPriority: 1},
		},
		"Full config is parsed": {
			files: fstest.MapFS{
				"config.yaml": &fstest.MapFile{Data: []byte("default_priority: 3\nauto_checkout: true\n")},
			},
			path:   "config.yaml",
			expCfg: storageio.ProjectConfig{DefaultPriority: 3, AutoCheckout: true},
		},
		"Partial config keeps defaults": {
			files: fstest.MapFS{
				"config.yaml": &fstest.MapFile{Data: []byte("auto_checkout: true\n")},
			},
			path:   "config.yaml",
			expCfg: storageio.ProjectConfig{DefaultPriority: 1, AutoCheckout: true},
		},
		"Invalid YAML fails": {
			files: fstest.MapFS{
				"config.yaml": &fstest.MapFile{Data: []byte("default_priority: [not an int\n")},
			},
			path:   "config.yaml",
			expErr: true,
		},
		"Negative priority fails validation": {
			files: fstest.MapFS{
				"config.yaml": &fstest.MapFile{Data: []byte("default_priority: -2\n")},
			},
			path:    "config.yaml",
			expErr:  true,
			errType: model.ErrNotValid,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			repo := storageio.NewConfigYAMLRepository(tt.files)

			cfg, err := repo.GetConfig(context.Background(), tt.path)

			if tt.expErr {
				require.Error(t, err)
				if tt.errType != nil {
					assert.ErrorIs(t, err, tt.errType)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expCfg, cfg)
			}
		})
	}
}
