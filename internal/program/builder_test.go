// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package program

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dacolabs/schemagen/internal/model"
)

// stubFrontend declares one interface per file, named after the file.
type stubFrontend struct{}

func (stubFrontend) Name() string { return "stub" }

func (stubFrontend) IsDeclarationFile(path string) bool {
	return strings.HasSuffix(path, ".d.ts")
}

func (stubFrontend) Parse(path string, src []byte) (*model.SourceFile, error) {
	if strings.Contains(string(src), "broken") {
		return nil, errors.New("unexpected token")
	}
	name := strings.TrimSuffix(filepath.Base(path), ".ts")
	return &model.SourceFile{
		Path:  path,
		Decls: []model.Decl{{Kind: model.KindInterface, Name: name, HasBody: true}},
	}, nil
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"models/widget.ts":   {Data: []byte("interface")},
		"models/gadget.ts":   {Data: []byte("interface")},
		"models/global.d.ts": {Data: []byte("declare")},
		"models/broken.ts":   {Data: []byte("broken")},
		"models/readme.md":   {Data: []byte("# docs")},
		"top.ts":             {Data: []byte("interface")},
	}
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{
			name:    "recursive",
			pattern: "**/*.ts",
			want:    []string{"models/broken.ts", "models/gadget.ts", "models/widget.ts", "top.ts"},
		},
		{
			name:    "top level only",
			pattern: "*.ts",
			want:    []string{"top.ts"},
		},
		{
			name:    "no matches",
			pattern: "**/*.go",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Discover(testFS(), tt.pattern, stubFrontend{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscover_BadPattern(t *testing.T) {
	_, err := Discover(testFS(), "models/[", stubFrontend{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file pattern")
}

func TestBuildFS(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := NewBuilder(stubFrontend{}, zap.New(core))

	prog, err := b.BuildFS(context.Background(), testFS(), "models/*.ts")
	require.NoError(t, err)

	assert.Equal(t, []string{"models/broken.ts", "models/gadget.ts", "models/widget.ts"}, prog.Matched)
	require.Len(t, prog.Skipped, 1)
	assert.Equal(t, "models/broken.ts", prog.Skipped[0].Path)
	assert.Equal(t, 1, logs.FilterMessage("skipping unparsable source file").Len())

	require.Len(t, prog.Context.Files(), 2)
	_, ok := prog.Context.Lookup("widget")
	assert.True(t, ok)
	_, ok = prog.Context.Lookup("broken")
	assert.False(t, ok)
}

func TestBuildFS_EmptyMatchIsNotAnError(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	b := NewBuilder(stubFrontend{}, zap.New(core))

	prog, err := b.BuildFS(context.Background(), testFS(), "**/*.graphql")
	require.NoError(t, err)
	assert.Empty(t, prog.Matched)
	assert.Empty(t, prog.Context.Files())
	assert.Equal(t, 1, logs.FilterMessage("no source files matched").Len())
}

func TestBuildFS_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuilder(stubFrontend{}, nil).BuildFS(ctx, testFS(), "**/*.ts")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_MissingRoot(t *testing.T) {
	_, err := NewBuilder(stubFrontend{}, nil).Build(context.Background(), filepath.Join(t.TempDir(), "nope"), "*.ts")
	assert.ErrorIs(t, err, ErrSourceRoot)
}

func TestAnalysisContext_Lookup(t *testing.T) {
	files := []*model.SourceFile{
		{Path: "a.ts", Decls: []model.Decl{{Name: "Kind", Kind: model.KindEnum}}},
		{Path: "b.ts", Decls: []model.Decl{{Name: "Kind", Kind: model.KindInterface}}},
	}
	c := NewAnalysisContext(files)

	d, ok := c.Lookup("Kind")
	require.True(t, ok)
	assert.Equal(t, model.KindEnum, d.Kind, "first declaration wins")

	d, ok = c.Lookup("models.Kind")
	require.True(t, ok)
	assert.Equal(t, "Kind", d.Name)

	_, ok = c.Lookup("")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}
