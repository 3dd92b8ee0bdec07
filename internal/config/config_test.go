// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_LoadAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, FileName)

	cfg := Default()
	cfg.SourceRoot = "src"
	cfg.GenerateTests = true
	cfg.TestsPath = "tests"
	cfg.IgnoreNames = []string{"Internal"}
	cfg.ExtraMetadata = map[string]any{"$id": "https://example.com"}

	require.NoError(t, cfg.Save(cfgPath))

	loaded, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, cfg.Version, loaded.Version)
	assert.Equal(t, "src", loaded.SourceRoot)
	assert.True(t, loaded.GenerateTests)
	assert.Equal(t, "tests", loaded.TestsPath)
	assert.Equal(t, []string{"Internal"}, loaded.IgnoreNames)
	assert.Equal(t, "https://example.com", loaded.ExtraMetadata["$id"])
	assert.Equal(t, tmpDir, loaded.Dir())
}

func TestLoad_KeepsDefaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: 1\noutputPath: out\n"), 0o600))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputPath)
	assert.Equal(t, ".", cfg.SourceRoot)
	assert.Equal(t, "**/*.ts", cfg.FilePattern)
	assert.Equal(t, FrameworkJest, cfg.TestFramework)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	cfgPath := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: [\n"), 0o600))
	_, err = Load(cfgPath)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "unsupported version",
			mutate:  func(c *Config) { c.Version = 99 },
			wantErr: "unsupported config version",
		},
		{
			name:    "missing source root",
			mutate:  func(c *Config) { c.SourceRoot = "" },
			wantErr: "sourceRoot is required",
		},
		{
			name:    "missing output path",
			mutate:  func(c *Config) { c.OutputPath = "" },
			wantErr: "outputPath is required",
		},
		{
			name:    "bad pattern",
			mutate:  func(c *Config) { c.FilePattern = "src/[a-" },
			wantErr: "not a valid glob",
		},
		{
			name:    "tests without path",
			mutate:  func(c *Config) { c.GenerateTests = true },
			wantErr: "testsPath is required",
		},
		{
			name: "unknown framework",
			mutate: func(c *Config) {
				c.GenerateTests = true
				c.TestsPath = "tests"
				c.TestFramework = "mocha"
			},
			wantErr: `unknown testFramework "mocha"`,
		},
		{
			name:   "framework ignored without tests",
			mutate: func(c *Config) { c.TestFramework = "mocha" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	environ := map[string]string{
		"SCHEMAGEN_OUTPUT_PATH":            "generated",
		"SCHEMAGEN_GENERATE_TESTS":         "true",
		"SCHEMAGEN_IGNORE_NAMES":           "A,B",
		"SCHEMAGEN_FAIL_ON_SLUG_COLLISION": "true",
		"OUTPUT_PATH":                      "unprefixed",
	}
	getenv := func(key string) string { return environ[key] }

	cfg := Default()
	cfg.SourceRoot = "src"
	require.NoError(t, cfg.ApplyEnv(getenv))

	assert.Equal(t, "generated", cfg.OutputPath)
	assert.True(t, cfg.GenerateTests)
	assert.Equal(t, []string{"A", "B"}, cfg.IgnoreNames)
	assert.True(t, cfg.FailOnSlugCollision)
	assert.Equal(t, "src", cfg.SourceRoot, "unset variables keep file values")
}

func TestConfig_ApplyEnvInvalid(t *testing.T) {
	getenv := func(key string) string {
		if key == "SCHEMAGEN_GENERATE_TESTS" {
			return "maybe"
		}
		return ""
	}
	assert.Error(t, Default().ApplyEnv(getenv))
}

func TestConfig_Resolve(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "project", FileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o750))
	require.NoError(t, Default().Save(cfgPath))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	cfg.TestsPath = "tests"

	base := filepath.Dir(cfgPath)
	assert.Equal(t, base, cfg.SourceDir())
	assert.Equal(t, filepath.Join(base, "schemas"), cfg.OutputDir())
	assert.Equal(t, filepath.Join(base, "tests"), cfg.TestsDir())

	abs := filepath.Join(t.TempDir(), "elsewhere")
	cfg.OutputPath = abs
	assert.Equal(t, abs, cfg.OutputDir())

	assert.Equal(t, "schemas", Default().OutputDir(), "defaults resolve against the working directory")
}

func TestConfig_SaveFormat(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Default().Save(cfgPath))

	content, err := os.ReadFile(cfgPath) //nolint:gosec // test file path
	require.NoError(t, err)

	output := string(content)
	assert.Contains(t, output, "version: 1")
	assert.Contains(t, output, "filePattern:")
	assert.Contains(t, output, "**/*.ts")
	assert.NotContains(t, output, "testsPath")
	assert.NotContains(t, output, "dir")
}
