// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package classify

import (
	"testing"

	"github.com/dacolabs/schemagen/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestType(t *testing.T) {
	tests := []struct {
		rendered   string
		wantKind   Kind
		wantFormat string
	}{
		{"string", String, ""},
		{"string | null", String, ""},
		{"number | string", String, ""},
		{"'a' | 'b'", String, ""},
		{"number", Number, ""},
		{"bigint", Number, ""},
		{"1 | 2", Number, ""},
		{"boolean", Boolean, ""},
		{"true", Boolean, ""},
		{"Date", String, DateTimeFormat},
		{"Date | undefined", String, DateTimeFormat},
		{"string[]", Array, ""},
		{"Array<number>", Array, ""},
		{"Record<string, number>", Object, ""},
		{"Map<string, boolean>", Object, ""},
		{"{ a: string }", Object, ""},
		{"PhoneNumber", Object, ""},
		{"Stringish", Object, ""},
		{"any", Object, ""},
		{"", Object, ""},
	}

	for _, tt := range tests {
		t.Run(tt.rendered, func(t *testing.T) {
			kind, format := Type(tt.rendered)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantFormat, format)
		})
	}
}

func TestArrayElem(t *testing.T) {
	tests := []struct {
		rendered string
		wantElem string
		wantOK   bool
	}{
		{"string[]", "string", true},
		{"readonly string[]", "string", true},
		{"(string | number)[]", "string | number", true},
		{"Array<Kind>", "Kind", true},
		{"ReadonlyArray<boolean>", "boolean", true},
		{"string[][]", "string[]", true},
		{"{ id: string }[]", "{ id: string }", true},
		{"string | number[]", "", false},
		{"string", "", false},
		{"Array<string> | null", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.rendered, func(t *testing.T) {
			elem, ok := ArrayElem(tt.rendered)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantElem, elem)
		})
	}
}

func TestProperty(t *testing.T) {
	tests := []struct {
		name string
		prop model.PropertyInfo
		want Class
	}{
		{
			name: "string with format",
			prop: model.PropertyInfo{RenderedType: "string", Format: "email"},
			want: Class{Kind: String, Format: "email"},
		},
		{
			name: "format ignored on number",
			prop: model.PropertyInfo{RenderedType: "number", Format: "email"},
			want: Class{Kind: Number},
		},
		{
			name: "date",
			prop: model.PropertyInfo{RenderedType: "Date"},
			want: Class{Kind: String, Format: DateTimeFormat},
		},
		{
			name: "string enum",
			prop: model.PropertyInfo{RenderedType: "Kind", EnumValues: []string{"a", "b"}},
			want: Class{Kind: String, Enum: true},
		},
		{
			name: "numeric enum",
			prop: model.PropertyInfo{RenderedType: "Level", EnumValues: []string{"0", "1"}, EnumNumeric: true},
			want: Class{Kind: Number, Enum: true},
		},
		{
			name: "string enum keeps format",
			prop: model.PropertyInfo{RenderedType: "Contact", EnumValues: []string{"a@example.com"}, Format: "email"},
			want: Class{Kind: String, Format: "email", Enum: true},
		},
		{
			name: "numeric enum drops format",
			prop: model.PropertyInfo{RenderedType: "Level", EnumValues: []string{"0"}, EnumNumeric: true, Format: "email"},
			want: Class{Kind: Number, Enum: true},
		},
		{
			name: "array of strings",
			prop: model.PropertyInfo{RenderedType: "string[]"},
			want: Class{Kind: Array, Item: String},
		},
		{
			name: "array of dates falls back to object items",
			prop: model.PropertyInfo{RenderedType: "Date[]"},
			want: Class{Kind: Array, Item: Object},
		},
		{
			name: "array of enum",
			prop: model.PropertyInfo{RenderedType: "Kind[]", EnumValues: []string{"a"}},
			want: Class{Kind: Array, Item: String, Enum: true},
		},
		{
			name: "nested array",
			prop: model.PropertyInfo{RenderedType: "number[][]"},
			want: Class{Kind: Array, Item: Object},
		},
		{
			name: "unresolved reference",
			prop: model.PropertyInfo{RenderedType: "Address"},
			want: Class{Kind: Object},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Property(&tt.prop))
		})
	}
}
