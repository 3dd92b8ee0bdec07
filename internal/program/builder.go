// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package program resolves the source file set of a run and builds the
// AnalysisContext over it.
package program

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/dacolabs/schemagen/internal/model"
)

// ErrSourceRoot indicates the source root is missing or not a readable
// directory. It is the only fatal input error of a run.
var ErrSourceRoot = errors.New("source root not readable")

// FileError records a source file that was skipped.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Program is the result of building: the files that were looked at, the
// ones that had to be skipped, and the context over the rest.
type Program struct {
	Matched []string
	Skipped []FileError
	Context *AnalysisContext
}

// Builder discovers and parses source files.
type Builder struct {
	frontend model.Frontend
	logger   *zap.Logger
}

// NewBuilder creates a Builder that parses with frontend.
func NewBuilder(frontend model.Frontend, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{frontend: frontend, logger: logger}
}

// Build resolves pattern under sourceRoot and parses every match.
func (b *Builder) Build(ctx context.Context, sourceRoot, pattern string) (*Program, error) {
	info, err := os.Stat(sourceRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceRoot, sourceRoot)
	}
	return b.BuildFS(ctx, os.DirFS(sourceRoot), pattern)
}

// BuildFS is Build over an arbitrary file system. Paths in the result are
// relative to the root of fsys.
func (b *Builder) BuildFS(ctx context.Context, fsys fs.FS, pattern string) (*Program, error) {
	paths, err := Discover(fsys, pattern, b.frontend)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		b.logger.Info("no source files matched", zap.String("pattern", pattern))
	}

	prog := &Program{Matched: paths}
	files := make([]*model.SourceFile, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			b.logger.Warn("skipping unreadable source file", zap.String("file", p), zap.Error(err))
			prog.Skipped = append(prog.Skipped, FileError{Path: p, Err: err})
			continue
		}

		file, err := b.frontend.Parse(p, src)
		if err != nil {
			b.logger.Warn("skipping unparsable source file", zap.String("file", p), zap.Error(err))
			prog.Skipped = append(prog.Skipped, FileError{Path: p, Err: err})
			continue
		}

		b.logger.Debug("parsed source file",
			zap.String("file", p),
			zap.Int("declarations", len(file.Decls)))
		files = append(files, file)
	}

	prog.Context = NewAnalysisContext(files)
	return prog, nil
}

// Discover expands pattern over fsys and returns the sorted regular files
// that are not declaration files. Because fsys is rooted, nothing outside the
// root can match.
func Discover(fsys fs.FS, pattern string, frontend model.Frontend) ([]string, error) {
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		if frontend.IsDeclarationFile(m) {
			continue
		}
		info, err := fs.Stat(fsys, m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}
