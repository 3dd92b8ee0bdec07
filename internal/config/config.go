// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles schemagen project configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	env "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the default config file name.
const FileName = "schemagen.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SCHEMAGEN_"

// Test frameworks.
const (
	FrameworkJest   = "jest"
	FrameworkVitest = "vitest"
)

// Frameworks lists the supported test frameworks.
var Frameworks = []string{FrameworkJest, FrameworkVitest}

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// envKeys are the environment variables ApplyEnv reads, without EnvPrefix.
var envKeys = []string{
	"SOURCE_ROOT",
	"FILE_PATTERN",
	"OUTPUT_PATH",
	"GENERATE_TESTS",
	"TESTS_PATH",
	"TEST_EXTENSION",
	"TEST_FRAMEWORK",
	"TEST_UTILS_MODULE",
	"IGNORE_NAMES",
	"INHERIT_PROPERTIES",
	"FAIL_ON_SLUG_COLLISION",
}

// Config represents the schemagen.yaml project configuration file.
type Config struct {
	Version       int    `yaml:"version"`
	SourceRoot    string `yaml:"sourceRoot" env:"SOURCE_ROOT"`
	FilePattern   string `yaml:"filePattern" env:"FILE_PATTERN"`
	OutputPath    string `yaml:"outputPath" env:"OUTPUT_PATH"`
	GenerateTests bool   `yaml:"generateTests" env:"GENERATE_TESTS"`

	TestsPath       string `yaml:"testsPath,omitempty" env:"TESTS_PATH"`
	TestExtension   string `yaml:"testExtension,omitempty" env:"TEST_EXTENSION"`
	TestFramework   string `yaml:"testFramework,omitempty" env:"TEST_FRAMEWORK"`
	TestUtilsModule string `yaml:"testUtilsModule,omitempty" env:"TEST_UTILS_MODULE"`

	IgnoreNames   []string       `yaml:"ignoreNames,omitempty" env:"IGNORE_NAMES"`
	ExtraMetadata map[string]any `yaml:"extraMetadata,omitempty"`

	InheritProperties   bool `yaml:"inheritProperties,omitempty" env:"INHERIT_PROPERTIES"`
	FailOnSlugCollision bool `yaml:"failOnSlugCollision,omitempty" env:"FAIL_ON_SLUG_COLLISION"`

	dir string
}

// Default returns a Config with every default applied.
func Default() *Config {
	return &Config{
		Version:         CurrentConfigVersion,
		SourceRoot:      ".",
		FilePattern:     "**/*.ts",
		OutputPath:      "schemas",
		TestExtension:   "ts",
		TestFramework:   FrameworkJest,
		TestUtilsModule: "./schema-test-utils",
	}
}

// Load reads a Config from a file path. Fields missing from the file keep
// their defaults and relative paths resolve against the file's directory.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// ApplyEnv overrides fields from SCHEMAGEN_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	environ := make(map[string]string)
	for _, key := range envKeys {
		if v := getenv(EnvPrefix + key); v != "" {
			environ[EnvPrefix+key] = v
		}
	}
	if len(environ) == 0 {
		return nil
	}
	if err := env.ParseWithOptions(c, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var problems []error
	if c.Version != CurrentConfigVersion {
		problems = append(problems, errors.New("unsupported config version"))
	}
	if c.SourceRoot == "" {
		problems = append(problems, errors.New("sourceRoot is required"))
	}
	if c.OutputPath == "" {
		problems = append(problems, errors.New("outputPath is required"))
	}
	if c.FilePattern == "" || !doublestar.ValidatePattern(c.FilePattern) {
		problems = append(problems, fmt.Errorf("filePattern %q is not a valid glob", c.FilePattern))
	}
	if c.GenerateTests {
		if c.TestsPath == "" {
			problems = append(problems, errors.New("testsPath is required when generateTests is set"))
		}
		if !slices.Contains(Frameworks, c.TestFramework) {
			problems = append(problems, fmt.Errorf("unknown testFramework %q", c.TestFramework))
		}
		if c.TestExtension == "" {
			problems = append(problems, errors.New("testExtension is required when generateTests is set"))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(problems...))
	}
	return nil
}

// Dir returns the directory relative paths resolve against.
func (c *Config) Dir() string {
	return c.dir
}

// Resolve returns p relative to the config directory unless it is absolute.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

// SourceDir returns the resolved source root.
func (c *Config) SourceDir() string { return c.Resolve(c.SourceRoot) }

// OutputDir returns the resolved schema output directory.
func (c *Config) OutputDir() string { return c.Resolve(c.OutputPath) }

// TestsDir returns the resolved test output directory.
func (c *Config) TestsDir() string { return c.Resolve(c.TestsPath) }
