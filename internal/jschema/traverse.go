// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"iter"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// Field is a property reached while walking a loaded schema.
type Field struct {
	Path     string // dotted path, with [] marking array items
	Schema   *jsonschema.Schema
	Required bool
}

// Walk returns an iterator over every property of the loaded schema, depth
// first, in the recorded key order. Cycles are visited once.
func (l *Loaded) Walk() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		visited := make(map[*jsonschema.Schema]struct{})
		l.walk(l.Schema, "", "", yield, visited)
	}
}

func (l *Loaded) walk(s *jsonschema.Schema, path, orderKey string, yield func(Field) bool, visited map[*jsonschema.Schema]struct{}) bool {
	if s == nil {
		return true
	}
	if _, ok := visited[s]; ok {
		return true
	}
	visited[s] = struct{}{}

	propsKey := "properties"
	if orderKey != "" {
		propsKey = orderKey + ".properties"
	}
	for _, name := range orderedKeys(s.Properties, l.Order[propsKey]) {
		child := s.Properties[name]
		childPath := name
		if path != "" {
			childPath = path + "." + name
		}
		if !yield(Field{Path: childPath, Schema: child, Required: slices.Contains(s.Required, name)}) {
			return false
		}
		if !l.walk(child, childPath, propsKey+"."+name, yield, visited) {
			return false
		}
	}

	if s.Items != nil && path != "" {
		itemsPath := path + "[]"
		if !yield(Field{Path: itemsPath, Schema: s.Items}) {
			return false
		}
		if !l.walk(s.Items, itemsPath, orderKey+".items", yield, visited) {
			return false
		}
	}
	return true
}

// orderedKeys returns the keys of m, in order first and then any remaining
// keys sorted.
func orderedKeys(m map[string]*jsonschema.Schema, order []string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]struct{}, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
			seen[k] = struct{}{}
		}
	}
	var rest []string
	for k := range m {
		if _, ok := seen[k]; !ok {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}
