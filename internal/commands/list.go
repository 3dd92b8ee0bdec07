// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dacolabs/schemagen/internal/artifact"
	"github.com/dacolabs/schemagen/internal/pipeline"
	"github.com/dacolabs/schemagen/internal/session"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the declarations that would be generated",
		Long: `List every declaration found under the source root together with the
schema file it maps to. Nothing is written.`,
		Example: `  # List declarations
  schemagen list`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runList(cmd, ctx)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command, ctx *session.Context) error {
	plan, err := pipeline.New(ctx.Config, ctx.Logger, pipeline.Options{}).Plan(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(plan.Declarations) == 0 {
		_, _ = fmt.Fprintln(out, "No declarations found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSCHEMA\tFILE\tPROPERTIES\tREQUIRED")
	for i := range plan.Declarations {
		d := &plan.Declarations[i]
		schema := "-"
		if slug, err := artifact.SlugFor(d.Name); err == nil {
			schema = artifact.SchemaFileName(slug)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			d.Name,
			schema,
			d.File,
			len(d.Properties),
			len(d.Required()))
	}

	return w.Flush()
}
