// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dacolabs/schemagen/internal/config"
	"github.com/dacolabs/schemagen/internal/logging"
)

var (
	// ErrNotInitialized indicates no schemagen.yaml was found.
	ErrNotInitialized = errors.New("not in a schemagen project (schemagen.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

type (
	contextKey struct{}
	envKey     struct{}
)

// Context holds the resolved project configuration and the run logger.
type Context struct {
	// Config is the configuration with environment overrides applied.
	Config *config.Config

	// ConfigPath is the file Config was loaded from.
	ConfigPath string

	Logger *zap.Logger
}

// Options select the config file and logger.
type Options struct {
	ConfigPath string
	Verbose    bool
	LogFormat  string
	Getenv     func(string) string
}

// Load loads the project configuration and returns a new context.Context
// with the session Context stored in it. Without an explicit path the config
// is looked up in the current working directory.
func Load(ctx context.Context, opts Options) (context.Context, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		configPath = filepath.Join(cwd, config.FileName)
	}
	if _, statErr := os.Stat(configPath); errors.Is(statErr, os.ErrNotExist) {
		return nil, ErrNotInitialized
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	logger, err := logging.New(opts.Verbose, opts.LogFormat)
	if err != nil {
		return nil, err
	}

	return context.WithValue(ctx, contextKey{}, &Context{
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     logger,
	}), nil
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if c, ok := ctx.Value(contextKey{}).(*Context); ok {
		return c
	}
	return nil
}

// WithEnv stores the environment lookup used by PreRunLoad.
func WithEnv(ctx context.Context, getenv func(string) string) context.Context {
	return context.WithValue(ctx, envKey{}, getenv)
}

// EnvFrom returns the environment lookup stored by WithEnv, or os.Getenv.
func EnvFrom(ctx context.Context) func(string) string {
	if getenv, ok := ctx.Value(envKey{}).(func(string) string); ok && getenv != nil {
		return getenv
	}
	return os.Getenv
}
