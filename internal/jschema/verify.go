// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	validator "github.com/santhosh-tekuri/jsonschema/v5"
)

const verifyBaseURL = "https://schemagen.local/"

// Compile compiles an encoded document as a draft-07 schema. The document is
// validated against the draft-07 meta-schema first.
func Compile(name string, data []byte) (*validator.Schema, error) {
	url := verifyBaseURL + name

	c := validator.NewCompiler()
	c.Draft = validator.Draft7
	if err := c.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", name, err)
	}
	return s, nil
}

// Verify reports whether data is a valid draft-07 schema.
func Verify(name string, data []byte) error {
	_, err := Compile(name, data)
	return err
}

// ValidateInstance compiles schema and validates the JSON document instance
// against it.
func ValidateInstance(name string, schema, instance []byte) error {
	s, err := Compile(name, schema)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(instance, &v); err != nil {
		return fmt.Errorf("parsing instance: %w", err)
	}
	return s.Validate(v)
}
