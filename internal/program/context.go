// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package program

import (
	"strings"

	"github.com/dacolabs/schemagen/internal/model"
)

// AnalysisContext is the immutable, per-run index of every declaration parsed
// from the matched file set. It is built once by a Builder and shared
// read-only by the extraction stage.
type AnalysisContext struct {
	files []*model.SourceFile
	decls map[string]*model.Decl
}

// NewAnalysisContext indexes the declarations of files. When two files declare
// the same name the first one in file order wins.
func NewAnalysisContext(files []*model.SourceFile) *AnalysisContext {
	c := &AnalysisContext{
		files: files,
		decls: make(map[string]*model.Decl),
	}
	for _, f := range files {
		for i := range f.Decls {
			d := &f.Decls[i]
			if _, exists := c.decls[d.Name]; !exists {
				c.decls[d.Name] = d
			}
		}
	}
	return c
}

// Files returns the parsed files in discovery order.
func (c *AnalysisContext) Files() []*model.SourceFile {
	return c.files
}

// Lookup resolves a declaration by name. Qualified names such as "ns.Kind"
// resolve by their last segment.
func (c *AnalysisContext) Lookup(name string) (*model.Decl, bool) {
	if name == "" {
		return nil, false
	}
	if d, ok := c.decls[name]; ok {
		return d, true
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		d, ok := c.decls[name[i+1:]]
		return d, ok
	}
	return nil, false
}

// Len returns the number of indexed declarations.
func (c *AnalysisContext) Len() int {
	return len(c.decls)
}
