// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package pipeline runs a generation batch: discover, parse, extract,
// synthesize and write.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dacolabs/schemagen/internal/artifact"
	"github.com/dacolabs/schemagen/internal/config"
	"github.com/dacolabs/schemagen/internal/extract"
	"github.com/dacolabs/schemagen/internal/frontend/typescript"
	"github.com/dacolabs/schemagen/internal/jschema"
	"github.com/dacolabs/schemagen/internal/model"
	"github.com/dacolabs/schemagen/internal/program"
	"github.com/dacolabs/schemagen/internal/testgen"
)

var (
	// ErrSlugCollision indicates two declarations map to the same file name
	// and the config asks for collisions to fail.
	ErrSlugCollision = errors.New("slug collision")

	// ErrStale indicates a check run found artifacts that differ from disk.
	ErrStale = errors.New("generated artifacts are out of date")
)

// Options tune a Pipeline.
type Options struct {
	// Check compares artifacts with disk and writes nothing.
	Check bool

	// Verify compiles every schema against the draft-07 meta-schema before
	// it is written.
	Verify bool

	// Frontend parses source files. Defaults to TypeScript.
	Frontend model.Frontend

	// Tests provides test generators. Defaults to testgen.Default().
	Tests testgen.Register

	// Debounce is the quiet period Watch waits for before re-running.
	Debounce time.Duration
}

// Report summarizes one run.
type Report struct {
	Files        int
	Skipped      []program.FileError
	Declarations int
	Schemas      []string
	Tests        []string
	Written      int
	Stale        []string
	Collisions   []string
}

// Plan is the parsed program together with the declarations that will be
// generated.
type Plan struct {
	Program      *program.Program
	Declarations []model.DeclarationInfo
}

// Pipeline generates schema and test artifacts for a configuration.
type Pipeline struct {
	cfg     *config.Config
	opts    Options
	logger  *zap.Logger
	schemas *artifact.Writer
	tests   *artifact.Writer
}

// New creates a Pipeline for cfg.
func New(cfg *config.Config, logger *zap.Logger, opts Options) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Frontend == nil {
		opts.Frontend = typescript.New()
	}
	if opts.Tests == nil {
		opts.Tests = testgen.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 200 * time.Millisecond
	}
	return &Pipeline{
		cfg:     cfg,
		opts:    opts,
		logger:  logger,
		schemas: artifact.NewWriter(cfg.OutputDir()),
		tests:   artifact.NewWriter(cfg.TestsDir()),
	}
}

// Plan discovers and parses the source tree and extracts its declarations
// without writing anything.
func (p *Pipeline) Plan(ctx context.Context) (*Plan, error) {
	prog, err := program.NewBuilder(p.opts.Frontend, p.logger).Build(ctx, p.cfg.SourceDir(), p.cfg.FilePattern)
	if err != nil {
		return nil, err
	}

	ext := extract.New(prog.Context, extract.Options{
		IgnoreNames:       p.cfg.IgnoreNames,
		InheritProperties: p.cfg.InheritProperties,
	}, p.logger)

	plan := &Plan{Program: prog}
	for _, f := range prog.Context.Files() {
		plan.Declarations = append(plan.Declarations, ext.File(f)...)
	}
	return plan, nil
}

// Run executes one batch. Failures of single declarations do not stop the
// batch; they are returned together once every declaration was processed.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	var gen testgen.Generator
	if p.cfg.GenerateTests {
		g, err := p.opts.Tests.Get(p.cfg.TestFramework)
		if err != nil {
			return nil, err
		}
		gen = g
	}

	plan, err := p.Plan(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Files:   len(plan.Program.Matched),
		Skipped: plan.Program.Skipped,
	}
	seen := make(map[string]string)
	var failures []error
	for i := range plan.Declarations {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		info := &plan.Declarations[i]
		report.Declarations++
		if err := p.declaration(info, gen, report, seen, i == 0); err != nil {
			p.logger.Error("declaration failed",
				zap.String("declaration", info.Name),
				zap.String("file", info.File),
				zap.Error(err))
			failures = append(failures, fmt.Errorf("%s (%s): %w", info.Name, info.File, err))
		}
	}

	p.logger.Info("generation finished",
		zap.Int("files", report.Files),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("declarations", report.Declarations),
		zap.Int("written", report.Written))
	return report, errors.Join(failures...)
}

func (p *Pipeline) declaration(info *model.DeclarationInfo, gen testgen.Generator, r *Report, seen map[string]string, first bool) error {
	slug, err := artifact.SlugFor(info.Name)
	if err != nil {
		return err
	}
	log := p.logger.With(
		zap.String("declaration", info.Name),
		zap.String("file", info.File),
		zap.String("slug", slug))

	owner := info.Name + " in " + info.File
	if prev, ok := seen[slug]; ok {
		r.Collisions = append(r.Collisions, slug)
		if p.cfg.FailOnSlugCollision {
			return fmt.Errorf("%w: %s and %s both map to %s", ErrSlugCollision, prev, owner, slug)
		}
		log.Warn("slug collision, last write wins", zap.String("previous", prev))
	}
	seen[slug] = owner

	doc := jschema.Synthesize(info)
	if rejected := doc.ApplyMetadata(p.cfg.ExtraMetadata); len(rejected) > 0 && first {
		log.Warn("extra metadata cannot replace reserved keys", zap.Strings("keys", rejected))
	}
	data, err := jschema.Encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}

	schemaName := artifact.SchemaFileName(slug)
	if p.opts.Verify {
		if err := jschema.Verify(schemaName, data); err != nil {
			return err
		}
	}
	if err := p.emit(p.schemas, schemaName, data, &r.Schemas, r, log); err != nil {
		return err
	}

	if gen == nil {
		return nil
	}
	imp, err := testgen.SchemaImport(p.tests.Dir(), p.schemas.Dir(), schemaName)
	if err != nil {
		return err
	}
	src, err := gen.Generate(testgen.Input{
		Decl:         info,
		SchemaImport: imp,
		UtilsModule:  p.cfg.TestUtilsModule,
	})
	if err != nil {
		return fmt.Errorf("failed to generate tests: %w", err)
	}
	return p.emit(p.tests, artifact.TestFileName(slug, p.cfg.TestExtension), src, &r.Tests, r, log)
}

// emit writes data unless the file already holds it. In check mode it only
// records the stale path.
func (p *Pipeline) emit(w *artifact.Writer, name string, data []byte, paths *[]string, r *Report, log *zap.Logger) error {
	path := w.Path(name)
	stale, err := w.Stale(name, data)
	if err != nil {
		return err
	}
	*paths = append(*paths, path)

	switch {
	case !stale:
		log.Debug("artifact unchanged", zap.String("path", path))
	case p.opts.Check:
		r.Stale = append(r.Stale, path)
		log.Info("artifact is stale", zap.String("path", path))
	default:
		if _, err := w.Write(name, data); err != nil {
			return err
		}
		r.Written++
		log.Info("wrote artifact", zap.String("path", path))
	}
	return nil
}
