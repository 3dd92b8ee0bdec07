// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package typescript implements the TypeScript front-end adapter on top of
// Tree-sitter.
package typescript

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/dacolabs/schemagen/internal/model"
)

// ErrSyntax is returned for sources that do not parse cleanly.
var ErrSyntax = errors.New("syntax error")

// Frontend parses TypeScript sources into syntax records.
// A Frontend is not safe for concurrent use.
type Frontend struct {
	parser *sitter.Parser
}

// New creates a TypeScript front-end.
func New() *Frontend {
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())
	return &Frontend{parser: parser}
}

// Name returns "typescript".
func (f *Frontend) Name() string {
	return "typescript"
}

// IsDeclarationFile reports whether path is an ambient declaration file.
func (f *Frontend) IsDeclarationFile(path string) bool {
	lower := strings.ToLower(path)
	for _, suffix := range []string{".d.ts", ".d.mts", ".d.cts"} {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// Parse extracts the top-level interfaces, type aliases and enums of a file.
func (f *Frontend) Parse(path string, src []byte) (*model.SourceFile, error) {
	tree, err := f.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w in %s at line %d", ErrSyntax, path, firstErrorLine(root))
	}

	w := &walker{src: src}
	file := &model.SourceFile{Path: path}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		if decl, ok := w.topLevel(root.NamedChild(i)); ok {
			file.Decls = append(file.Decls, decl)
		}
	}
	return file, nil
}

func firstErrorLine(n *sitter.Node) int {
	if n.Type() == "ERROR" || n.IsMissing() {
		return int(n.StartPoint().Row) + 1
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		return firstErrorLine(child)
	}
	return int(n.StartPoint().Row) + 1
}
