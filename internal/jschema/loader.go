// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// Loaded is a schema read back from disk together with the key order of each
// "properties" object, keyed by its dotted path.
type Loaded struct {
	Schema *jsonschema.Schema
	Order  map[string][]string
	Raw    []byte
}

// Loader loads generated schemas from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads and parses a schema file.
func (l *Loader) LoadFile(filePath string) (*Loaded, error) {
	data, err := fs.ReadFile(l.fsys, filePath)
	if err != nil {
		return nil, err
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	order, err := ExtractKeyOrder(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	return &Loaded{Schema: &schema, Order: order, Raw: data}, nil
}

// ExtractKeyOrder scans raw JSON and records the key order of every
// "properties" object.
func ExtractKeyOrder(data []byte) (map[string][]string, error) {
	result := make(map[string][]string)
	dec := json.NewDecoder(strings.NewReader(string(data)))

	var extract func(path string) error
	extract = func(path string) error {
		token, err := dec.Token()
		if err != nil {
			return err
		}
		delim, ok := token.(json.Delim)
		if !ok {
			return nil
		}
		switch delim {
		case '{':
			var keys []string
			for dec.More() {
				keyToken, err := dec.Token()
				if err != nil {
					return err
				}
				key, _ := keyToken.(string)
				keys = append(keys, key)
				next := key
				if path != "" {
					next = path + "." + key
				}
				if err := extract(next); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
			if path == "properties" || strings.HasSuffix(path, ".properties") {
				result[path] = keys
			}
		case '[':
			for dec.More() {
				if err := extract(path); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
		}
		return nil
	}

	if err := extract(""); err != nil {
		return nil, err
	}
	return result, nil
}
