// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"

	"github.com/dacolabs/schemagen/internal/jschema"
	"github.com/dacolabs/schemagen/internal/prompts"
	"github.com/dacolabs/schemagen/internal/session"
)

type inspectOptions struct {
	data string // instance document to validate
}

func newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [SCHEMA_FILE]",
		Short: "Show the properties of a generated schema",
		Long: `Load a generated schema and print its properties in document order.
If no file is provided, an interactive selection prompt lists the schemas in
the configured output directory.`,
		Example: `  # Interactive selection
  schemagen inspect

  # Inspect a schema file
  schemagen inspect schemas/user-profile.schema.json

  # Validate a document against it
  schemagen inspect schemas/user-profile.schema.json --data fixtures/user.json`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return nil
			}
			return session.PreRunLoad(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			} else {
				ctx, err := session.RequireFromCommand(cmd)
				if err != nil {
					return err
				}
				path, err = selectSchemaToInspect(ctx.Config.OutputDir())
				if err != nil {
					return err
				}
			}
			return runInspect(cmd.OutOrStdout(), path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "JSON document to validate against the schema")

	return cmd
}

func selectSchemaToInspect(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".schema.json") {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no schemas found in %s", dir)
	}
	sort.Strings(files)

	var selected string
	if err := prompts.RunInspectForm(&selected, files); err != nil {
		return "", err
	}
	return filepath.Join(dir, selected), nil
}

func runInspect(out io.Writer, path string, opts *inspectOptions) error {
	loaded, err := jschema.NewLoader(os.DirFS(filepath.Dir(path))).LoadFile(filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	if loaded.Schema.Title != "" {
		_, _ = fmt.Fprintf(out, "%s\n", loaded.Schema.Title)
	}
	if loaded.Schema.Description != "" {
		_, _ = fmt.Fprintf(out, "%s\n", loaded.Schema.Description)
	}
	_, _ = fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PATH\tTYPE\tREQUIRED\tFORMAT\tDESCRIPTION")
	for f := range loaded.Walk() {
		required := "no"
		if f.Required {
			required = "yes"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			f.Path, schemaType(f.Schema), required, orDash(f.Schema.Format), orDash(truncate(f.Schema.Description, 40)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if opts.data == "" {
		return nil
	}
	instance, err := os.ReadFile(opts.data)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.data, err)
	}
	if err := jschema.ValidateInstance(filepath.Base(path), loaded.Raw, instance); err != nil {
		return fmt.Errorf("%s does not match %s: %w", opts.data, path, err)
	}
	prompts.PrintResult(out, []prompts.ResultField{
		{Label: "Document", Value: opts.data},
	}, "Document is valid")
	return nil
}

func schemaType(s *jsonschema.Schema) string {
	t := s.Type
	if t == "" {
		t = strings.Join(s.Types, "|")
	}
	if t == "" {
		t = "-"
	}
	if len(s.Enum) > 0 {
		vals := make([]string, 0, len(s.Enum))
		for _, v := range s.Enum {
			vals = append(vals, fmt.Sprint(v))
		}
		t += " enum(" + strings.Join(vals, ",") + ")"
	}
	return t
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) > n {
		return string([]rune(s)[:n-3]) + "..."
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
