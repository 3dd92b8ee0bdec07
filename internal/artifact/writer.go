// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Writer writes artifacts into a single directory, creating it on first use.
type Writer struct {
	dir string
}

// NewWriter creates a Writer for dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Path returns the full path of the named artifact.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Write stores data under name and returns the written path.
func (w *Writer) Write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := w.Path(name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Stale reports whether the artifact on disk differs from data. A missing
// artifact is stale.
func (w *Writer) Stale(name string, data []byte) (bool, error) {
	existing, err := os.ReadFile(w.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", w.Path(name), err)
	}
	return !bytes.Equal(existing, data), nil
}
