// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"
)

// RunInspectForm prompts the user to select a generated schema to inspect.
func RunInspectForm(value *string, files []string) error {
	options := make([]huh.Option[string], 0, len(files))
	for _, f := range files {
		options = append(options, huh.NewOption(strings.TrimSuffix(f, ".schema.json"), f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select schema to inspect").
				Options(options...).
				Filtering(true).
				Value(value).
				Height(10),
		),
	).WithTheme(Theme()).Run()
}
