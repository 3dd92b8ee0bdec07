// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
)

// InitAnswers holds the values collected by RunInitForm. Fields that are set
// before the form runs are shown as defaults.
type InitAnswers struct {
	SourceRoot    string
	FilePattern   string
	OutputPath    string
	GenerateTests bool
	TestsPath     string
	TestFramework string
}

// RunInitForm runs the interactive form for the init command.
func RunInitForm(a *InitAnswers, frameworks []string) error {
	options := make([]huh.Option[string], 0, len(frameworks))
	for _, f := range frameworks {
		options = append(options, huh.NewOption(f, f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Source root").
				Placeholder(".").
				Validate(requiredValidator("source root")).
				Value(&a.SourceRoot),
			huh.NewInput().
				Title("File pattern").
				Placeholder("**/*.ts").
				Validate(globValidator).
				Value(&a.FilePattern),
			huh.NewInput().
				Title("Schema output directory").
				Placeholder("schemas").
				Validate(requiredValidator("output directory")).
				Value(&a.OutputPath),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Generate test files?").
				Value(&a.GenerateTests),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Test output directory").
				Placeholder("tests/schemas").
				Validate(requiredValidator("test output directory")).
				Value(&a.TestsPath),
			huh.NewSelect[string]().
				Title("Test framework").
				Options(options...).
				Value(&a.TestFramework),
		).WithHideFunc(func() bool { return !a.GenerateTests }),
	).WithTheme(Theme()).Run()
}
