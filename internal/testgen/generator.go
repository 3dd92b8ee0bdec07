// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package testgen renders assertion test files paired with generated schemas.
package testgen

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dacolabs/schemagen/internal/model"
)

// Input is everything a generator needs to render one test file.
type Input struct {
	Decl *model.DeclarationInfo

	// SchemaImport is the module path of the schema, relative to the test file.
	SchemaImport string

	// UtilsModule is the module path of the assertion helpers.
	UtilsModule string
}

// Generator renders test source for one test framework.
type Generator interface {
	// Name returns the framework identifier (e.g., "jest", "vitest")
	Name() string

	// Generate renders a complete, standalone test file
	Generate(in Input) ([]byte, error)
}

// Register maps framework names to generators.
type Register map[string]Generator

// Default returns a Register with every built-in framework.
func Default() Register {
	r := make(Register)
	r.Add(NewJest())
	r.Add(NewVitest())
	return r
}

// Add registers g under its name.
func (r Register) Add(g Generator) {
	r[g.Name()] = g
}

// Get retrieves a generator by name.
func (r Register) Get(name string) (Generator, error) {
	g, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown test framework: %s (available: %s)", name, strings.Join(r.Available(), ", "))
	}
	return g, nil
}

// Available returns all registered framework names, sorted.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SchemaImport returns the module path of schemaFile in schemaDir as seen
// from a test file in testsDir.
func SchemaImport(testsDir, schemaDir, schemaFile string) (string, error) {
	rel, err := filepath.Rel(testsDir, schemaDir)
	if err != nil {
		return "", fmt.Errorf("failed to relate %s to %s: %w", schemaDir, testsDir, err)
	}
	p := path.Join(filepath.ToSlash(rel), schemaFile)
	if !strings.HasPrefix(p, ".") {
		p = "./" + p
	}
	return p, nil
}
