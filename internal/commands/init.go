// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dacolabs/schemagen/internal/config"
	"github.com/dacolabs/schemagen/internal/prompts"
	"github.com/dacolabs/schemagen/internal/session"
)

type initOptions struct {
	answers        prompts.InitAnswers
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new schemagen project",
		Long: `Initialize a new schemagen project with a schemagen.yaml configuration file.
Without --non-interactive the values are collected with a form.`,
		Example: `  # Interactive mode
  schemagen init

  # Non-interactive
  schemagen init --source-root src --output schemas --non-interactive
  schemagen init --tests --tests-path tests/schemas --framework vitest --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.answers.SourceRoot, "source-root", defaults.SourceRoot, "Directory scanned for declarations")
	cmd.Flags().StringVar(&opts.answers.FilePattern, "pattern", defaults.FilePattern, "Glob of source files, relative to the source root")
	cmd.Flags().StringVarP(&opts.answers.OutputPath, "output", "o", defaults.OutputPath, "Schema output directory")
	cmd.Flags().BoolVar(&opts.answers.GenerateTests, "tests", false, "Generate test files")
	cmd.Flags().StringVar(&opts.answers.TestsPath, "tests-path", "tests/schemas", "Test output directory")
	cmd.Flags().StringVar(&opts.answers.TestFramework, "framework", defaults.TestFramework, "Test framework (jest or vitest)")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	path, _ := cmd.Flags().GetString(session.FlagConfig)
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, config.FileName)
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists; project already initialized", path)
	}

	if !opts.nonInteractive {
		if err := prompts.RunInitForm(&opts.answers, config.Frameworks); err != nil {
			return err
		}
	}

	cfg := config.Default()
	cfg.SourceRoot = opts.answers.SourceRoot
	cfg.FilePattern = opts.answers.FilePattern
	cfg.OutputPath = opts.answers.OutputPath
	cfg.GenerateTests = opts.answers.GenerateTests
	if cfg.GenerateTests {
		cfg.TestsPath = opts.answers.TestsPath
		cfg.TestFramework = opts.answers.TestFramework
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Config", Value: path},
		{Label: "Source root", Value: cfg.SourceRoot},
		{Label: "Output", Value: cfg.OutputPath},
		{Label: "Tests", Value: strconv.FormatBool(cfg.GenerateTests)},
	}, "Initialization completed")
	return nil
}
