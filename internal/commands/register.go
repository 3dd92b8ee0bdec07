// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dacolabs/schemagen/internal/session"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "schemagen",
		Short: "Generate JSON Schemas from TypeScript declarations",
		Long: `schemagen compiles TypeScript interfaces and object type aliases into
draft-07 JSON Schema documents, and optionally emits jest or vitest test
files that exercise them.`,
		SilenceUsage: true,
	}
	session.AddFlags(rootCmd)

	rootCmd.AddCommand(
		newInitCmd(),
		newGenerateCmd(),
		newListCmd(),
		newInspectCmd(),
		newVersionCmd(),
	)

	return rootCmd
}
