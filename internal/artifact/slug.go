// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package artifact names and writes generated files.
package artifact

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptySlug indicates a name without any filename-safe character.
var ErrEmptySlug = errors.New("name has no filename-safe characters")

var (
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	caseBoundary    = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	separators      = regexp.MustCompile(`[\s_.$]+`)
	unsafe          = regexp.MustCompile(`[^a-z0-9-]+`)
	dashes          = regexp.MustCompile(`-{2,}`)
)

// Slug derives a filename-safe identifier from a declaration name:
// HTTPServerConfig becomes http-server-config.
func Slug(name string) string {
	s := acronymBoundary.ReplaceAllString(name, "$1-$2")
	s = caseBoundary.ReplaceAllString(s, "$1-$2")
	s = separators.ReplaceAllString(s, "-")
	s = strings.ToLower(s)
	s = unsafe.ReplaceAllString(s, "")
	s = dashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugFor is Slug for names that must produce a file. A name such as "_"
// or "$" yields ErrEmptySlug.
func SlugFor(name string) (string, error) {
	slug := Slug(name)
	if slug == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptySlug, name)
	}
	return slug, nil
}

// SchemaFileName is the schema artifact name for slug.
func SchemaFileName(slug string) string {
	return slug + ".schema.json"
}

// TestFileName is the test artifact name for slug.
func TestFileName(slug, ext string) string {
	return slug + "-schema.spec." + strings.TrimPrefix(ext, ".")
}
