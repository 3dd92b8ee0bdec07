// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch runs the batch once, then again whenever a matching source file
// changes, until ctx is done. onRun receives the result of every run.
func (p *Pipeline) Watch(ctx context.Context, onRun func(*Report, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	root := p.cfg.SourceDir()
	if err := p.watchTree(watcher, root); err != nil {
		return err
	}

	run := func() {
		report, err := p.Run(ctx)
		if ctx.Err() == nil {
			onRun(report, err)
		}
	}
	run()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) && !p.isOutput(event.Name) {
				// Files may land in the directory before it is watched.
				if err := p.watchTree(watcher, event.Name); err != nil {
					p.logger.Warn("failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
				}
				pending = time.After(p.opts.Debounce)
				continue
			}
			if !p.relevant(root, event) {
				continue
			}
			p.logger.Debug("source changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			pending = time.After(p.opts.Debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.logger.Warn("watch error", zap.Error(err))
		case <-pending:
			pending = nil
			run()
		}
	}
}

// watchTree adds dir and every directory below it, except the output
// directories.
func (p *Pipeline) watchTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p.isOutput(path) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// relevant reports whether event touches a source file matched by the
// configured pattern.
func (p *Pipeline) relevant(root string, event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod || p.isOutput(filepath.Dir(event.Name)) {
		return false
	}
	rel, err := filepath.Rel(root, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	if p.opts.Frontend.IsDeclarationFile(rel) {
		return false
	}
	ok, err := doublestar.Match(p.cfg.FilePattern, filepath.ToSlash(rel))
	return err == nil && ok
}

// isOutput reports whether dir lies in an output directory that is distinct
// from the source root.
func (p *Pipeline) isOutput(dir string) bool {
	root := filepath.Clean(p.cfg.SourceDir())
	for _, out := range []string{p.schemas.Dir(), p.tests.Dir()} {
		if out == "" || filepath.Clean(out) == root {
			continue
		}
		rel, err := filepath.Rel(out, dir)
		if err == nil && !strings.HasPrefix(rel, "..") {
			return true
		}
	}
	return false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
