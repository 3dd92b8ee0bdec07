// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dacolabs/schemagen/internal/pipeline"
	"github.com/dacolabs/schemagen/internal/prompts"
	"github.com/dacolabs/schemagen/internal/session"
)

type generateOptions struct {
	check  bool
	verify bool
	watch  bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate schemas and tests from the source tree",
		Long: `Generate one JSON Schema per exported interface or object type alias found
under the source root, and a test file per schema when generateTests is set.
Only artifacts whose content changed are written.`,
		Example: `  # Generate once
  schemagen generate

  # Fail when committed artifacts are out of date
  schemagen generate --check

  # Regenerate on every source change
  schemagen generate --watch`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runGenerate(cmd, ctx, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.check, "check", false, "Report stale artifacts without writing")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Compile every schema against draft-07 before writing")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-run when source files change")
	cmd.MarkFlagsMutuallyExclusive("check", "watch")

	return cmd
}

func runGenerate(cmd *cobra.Command, ctx *session.Context, opts *generateOptions) error {
	defer ctx.Logger.Sync() //nolint:errcheck

	p := pipeline.New(ctx.Config, ctx.Logger, pipeline.Options{
		Check:  opts.check,
		Verify: opts.verify,
	})
	out := cmd.OutOrStdout()

	if opts.watch {
		return p.Watch(cmd.Context(), func(r *pipeline.Report, err error) {
			printReport(out, r, false)
			if err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
		})
	}

	report, err := p.Run(cmd.Context())
	printReport(out, report, opts.check)
	if err != nil {
		return err
	}
	if opts.check && len(report.Stale) > 0 {
		return fmt.Errorf("%w: %d file(s)", pipeline.ErrStale, len(report.Stale))
	}
	return nil
}

func printReport(w io.Writer, r *pipeline.Report, check bool) {
	if r == nil {
		return
	}

	if len(r.Skipped) > 0 {
		items := make([]string, 0, len(r.Skipped))
		for _, s := range r.Skipped {
			items = append(items, s.Error())
		}
		prompts.PrintWarning(w, "Skipped files", items)
	}
	if len(r.Collisions) > 0 {
		prompts.PrintWarning(w, "Slug collisions", r.Collisions)
	}

	fields := []prompts.ResultField{
		{Label: "Files", Value: strconv.Itoa(r.Files)},
		{Label: "Declarations", Value: strconv.Itoa(r.Declarations)},
		{Label: "Schemas", Value: strconv.Itoa(len(r.Schemas))},
		{Label: "Tests", Value: strconv.Itoa(len(r.Tests))},
	}
	if check {
		if len(r.Stale) > 0 {
			prompts.PrintResult(w, fields, "")
			prompts.PrintWarning(w, "Stale artifacts", r.Stale)
			return
		}
		prompts.PrintResult(w, fields, "Artifacts are up to date")
		return
	}
	fields = append(fields, prompts.ResultField{Label: "Written", Value: strconv.Itoa(r.Written)})
	prompts.PrintResult(w, fields, "Generation completed")
}
