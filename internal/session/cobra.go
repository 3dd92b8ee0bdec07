// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dacolabs/schemagen/internal/logging"
)

// Persistent flags read by PreRunLoad.
const (
	FlagConfig    = "config"
	FlagVerbose   = "verbose"
	FlagLogFormat = "log-format"
)

// AddFlags registers the persistent flags PreRunLoad reads.
func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(FlagConfig, "c", "", "path to schemagen.yaml (default ./schemagen.yaml)")
	cmd.PersistentFlags().BoolP(FlagVerbose, "v", false, "enable debug logging")
	cmd.PersistentFlags().String(FlagLogFormat, logging.FormatConsole, "log format: console or json")
}

// OptionsFromCommand reads the persistent flags of cmd. Missing flags keep
// their zero values.
func OptionsFromCommand(cmd *cobra.Command) Options {
	flags := cmd.Flags()
	configPath, _ := flags.GetString(FlagConfig)
	verbose, _ := flags.GetBool(FlagVerbose)
	logFormat, _ := flags.GetString(FlagLogFormat)

	opts := Options{
		ConfigPath: configPath,
		Verbose:    verbose,
		LogFormat:  logFormat,
	}
	if ctx := cmd.Context(); ctx != nil {
		opts.Getenv = EnvFrom(ctx)
	}
	return opts
}

// LoggerFromCommand returns the session logger, or builds one from the flags
// of cmd for commands that run outside a project.
func LoggerFromCommand(cmd *cobra.Command) (*zap.Logger, error) {
	if c := FromCommand(cmd); c != nil {
		return c.Logger, nil
	}
	opts := OptionsFromCommand(cmd)
	return logging.New(opts.Verbose, opts.LogFormat)
}

// FromCommand extracts the session Context from a cobra.Command's context.
// Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *Context {
	if cmd.Context() == nil {
		return nil
	}
	return From(cmd.Context())
}

// RequireFromCommand extracts the session Context from a cobra.Command's
// context, returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	ctx := FromCommand(cmd)
	if ctx == nil {
		return nil, errors.New("project context not loaded")
	}
	return ctx, nil
}

// PreRunLoad is a PreRunE function that loads the project context and stores
// it in the command's context.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	ctx, err := Load(cmd.Context(), OptionsFromCommand(cmd))
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return nil
}
