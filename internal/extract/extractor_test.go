// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/schemagen/internal/model"
	"github.com/dacolabs/schemagen/internal/program"
)

func widgetFile() *model.SourceFile {
	return &model.SourceFile{
		Path: "widget.ts",
		Decls: []model.Decl{
			{
				Kind: model.KindEnum,
				Name: "Kind",
				EnumMembers: []model.EnumMember{
					{Name: "A", Value: "a"},
					{Name: "B", Value: "b"},
				},
			},
			{
				Kind:    model.KindInterface,
				Name:    "Widget",
				HasBody: true,
				Doc:     "/**\n * A widget.\n * @example {\"id\": \"w1\", \"kind\": \"a\"}\n */",
				Extends: []string{"Base"},
				Members: []model.Member{
					{Name: "id", Type: model.TypeExpr{Text: "string"}, Doc: "/**\n * Unique id.\n * @format uuid\n */"},
					{Name: "count", Optional: true, Type: model.TypeExpr{Text: "number"}},
					{Name: "kind", Type: model.TypeExpr{Text: "Kind", Ref: "Kind"}},
				},
			},
		},
	}
}

func TestExtractor_ScenarioA(t *testing.T) {
	file := widgetFile()
	actx := program.NewAnalysisContext([]*model.SourceFile{file})

	got := New(actx, Options{}, nil).File(file)
	require.Len(t, got, 1, "enums are not extracted as declarations")

	want := model.DeclarationInfo{
		Name:         "Widget",
		Description:  "A widget.",
		ExtendsNames: []string{"Base"},
		DocExamples:  []string{`{"id": "w1", "kind": "a"}`},
		File:         "widget.ts",
		Properties: []model.PropertyInfo{
			{Name: "id", RenderedType: "string", Description: "Unique id.", Format: "uuid"},
			{Name: "count", RenderedType: "number", Optional: true},
			{Name: "kind", RenderedType: "Kind", EnumValues: []string{"a", "b"}},
		},
	}
	if diff := cmp.Diff(want, got[0], cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("DeclarationInfo mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"id", "kind"}, got[0].Required())
}

func TestExtractor_IgnoreNames(t *testing.T) {
	file := widgetFile()
	actx := program.NewAnalysisContext([]*model.SourceFile{file})

	got := New(actx, Options{IgnoreNames: []string{"Widget"}}, nil).File(file)
	assert.Empty(t, got)
}

func TestExtractor_SkipsNonObjectAliases(t *testing.T) {
	file := &model.SourceFile{
		Path: "alias.ts",
		Decls: []model.Decl{
			{Kind: model.KindTypeAlias, Name: "ID", Aliased: &model.TypeExpr{Text: "string"}},
			{Kind: model.KindTypeAlias, Name: "Status", EnumMembers: []model.EnumMember{{Value: "on"}, {Value: "off"}}},
			{
				Kind:    model.KindTypeAlias,
				Name:    "Device",
				HasBody: true,
				Members: []model.Member{
					{Name: "id", Type: model.TypeExpr{Text: "ID", Ref: "ID"}},
					{Name: "ids", Type: model.TypeExpr{Text: "ID[]", Elem: &model.TypeExpr{Text: "ID", Ref: "ID"}}},
					{Name: "status", Type: model.TypeExpr{Text: "Status", Ref: "Status"}},
					{Name: "history", Type: model.TypeExpr{Text: "Status[]", Elem: &model.TypeExpr{Text: "Status", Ref: "Status"}}},
				},
			},
		},
	}
	actx := program.NewAnalysisContext([]*model.SourceFile{file})

	got := New(actx, Options{}, nil).File(file)
	require.Len(t, got, 1)
	device := got[0]
	assert.Equal(t, "Device", device.Name)

	require.Len(t, device.Properties, 4)
	assert.Equal(t, "string", device.Properties[0].RenderedType, "plain alias is rendered as its target")
	assert.Equal(t, "string[]", device.Properties[1].RenderedType)
	assert.Equal(t, "Status", device.Properties[2].RenderedType)
	assert.Equal(t, []string{"on", "off"}, device.Properties[2].EnumValues)
	assert.Equal(t, []string{"on", "off"}, device.Properties[3].EnumValues)
}

func TestExtractor_NumericEnum(t *testing.T) {
	file := &model.SourceFile{
		Path: "level.ts",
		Decls: []model.Decl{
			{Kind: model.KindEnum, Name: "Level", EnumMembers: []model.EnumMember{
				{Name: "Low", Value: "0", Numeric: true},
				{Name: "High", Value: "1", Numeric: true},
			}},
			{Kind: model.KindInterface, Name: "Alarm", HasBody: true, Members: []model.Member{
				{Name: "level", Type: model.TypeExpr{Text: "Level", Ref: "Level"}},
			}},
		},
	}
	actx := program.NewAnalysisContext([]*model.SourceFile{file})

	got := New(actx, Options{}, nil).File(file)
	require.Len(t, got, 1)
	p := got[0].Properties[0]
	assert.Equal(t, []string{"0", "1"}, p.EnumValues)
	assert.True(t, p.EnumNumeric)
}

func TestExtractor_UnresolvedReference(t *testing.T) {
	file := &model.SourceFile{
		Path: "x.ts",
		Decls: []model.Decl{
			{Kind: model.KindInterface, Name: "X", HasBody: true, Members: []model.Member{
				{Name: "addr", Type: model.TypeExpr{Text: "Address", Ref: "Address"}},
			}},
		},
	}
	actx := program.NewAnalysisContext([]*model.SourceFile{file})

	got := New(actx, Options{}, nil).File(file)
	require.Len(t, got, 1)
	assert.Equal(t, "Address", got[0].Properties[0].RenderedType)
	assert.Empty(t, got[0].Properties[0].EnumValues)
}

func TestExtractor_InheritProperties(t *testing.T) {
	file := &model.SourceFile{
		Path: "inherit.ts",
		Decls: []model.Decl{
			{Kind: model.KindInterface, Name: "Base", HasBody: true, Members: []model.Member{
				{Name: "id", Type: model.TypeExpr{Text: "string"}},
				{Name: "note", Optional: true, Type: model.TypeExpr{Text: "string"}},
			}},
			{Kind: model.KindInterface, Name: "Loop", HasBody: true, Extends: []string{"Child"}},
			{Kind: model.KindInterface, Name: "Child", HasBody: true, Extends: []string{"Base", "Missing", "Loop"}, Members: []model.Member{
				{Name: "note", Type: model.TypeExpr{Text: "string"}},
				{Name: "size", Type: model.TypeExpr{Text: "number"}},
			}},
		},
	}
	actx := program.NewAnalysisContext([]*model.SourceFile{file})

	flat := New(actx, Options{InheritProperties: true}, nil).Declaration(file.Path, &file.Decls[2])
	names := make([]string, 0, len(flat.Properties))
	for _, p := range flat.Properties {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"id", "note", "size"}, names)
	assert.Equal(t, []string{"id", "note", "size"}, flat.Required(), "own note overrides the optional base member")

	own := New(actx, Options{}, nil).Declaration(file.Path, &file.Decls[2])
	assert.Len(t, own.Properties, 2)
	assert.Equal(t, []string{"Base", "Missing", "Loop"}, own.ExtendsNames)
}

func TestExtractor_EnumArrays(t *testing.T) {
	kindRef := func() *model.TypeExpr { return &model.TypeExpr{Text: "Kind", Ref: "Kind"} }
	tests := []struct {
		name     string
		typ      model.TypeExpr
		rendered string
	}{
		{name: "bracket array", typ: model.TypeExpr{Text: "Kind[]", Elem: kindRef()}, rendered: "Kind[]"},
		{name: "generic array", typ: model.TypeExpr{Text: "Array<Kind>", Elem: kindRef()}, rendered: "Array<Kind>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := widgetFile()
			file.Decls = append(file.Decls, model.Decl{
				Kind:    model.KindInterface,
				Name:    "Bag",
				HasBody: true,
				Members: []model.Member{{Name: "kinds", Type: tt.typ}},
			})
			actx := program.NewAnalysisContext([]*model.SourceFile{file})

			got := New(actx, Options{}, nil).File(file)
			require.Len(t, got, 2)
			require.Len(t, got[1].Properties, 1)

			p := got[1].Properties[0]
			assert.Equal(t, tt.rendered, p.RenderedType)
			assert.Equal(t, []string{"a", "b"}, p.EnumValues)
			assert.False(t, p.EnumNumeric)
		})
	}
}
