// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package classify maps rendered property types onto JSON Schema kinds.
//
// The rules are shared by the schema synthesizer and the test generator so the
// two artifacts always agree on a property's kind. Classification works on the
// outermost shape first (arrays, maps) and then on whole tokens of the type
// text, in a fixed priority: string, number, boolean, date. Anything that
// matches nothing is an object.
package classify

import (
	"strings"

	"github.com/dacolabs/schemagen/internal/model"
)

// Kind is a JSON Schema primitive type.
type Kind string

const (
	String  Kind = "string"
	Number  Kind = "number"
	Boolean Kind = "boolean"
	Array   Kind = "array"
	Object  Kind = "object"
)

// DateTimeFormat is the format attached to date-like types.
const DateTimeFormat = "date-time"

// Class is the classification of a single property.
type Class struct {
	Kind   Kind
	Format string
	Enum   bool // the property (or the array items) carry enum values

	// Item is the element kind for arrays.
	Item Kind
}

// Property classifies a property using its rendered type and resolved enum
// values.
func Property(p *model.PropertyInfo) Class {
	rendered := strings.TrimSpace(p.RenderedType)

	if elem, ok := ArrayElem(rendered); ok {
		c := Class{Kind: Array, Item: itemKind(elem)}
		if p.HasEnum() {
			c.Enum = true
			c.Item = enumKind(p)
		}
		return c
	}

	if p.HasEnum() {
		c := Class{Kind: enumKind(p), Enum: true}
		if c.Kind == String {
			c.Format = p.Format
		}
		return c
	}

	kind, format := Type(rendered)
	if kind == String && p.Format != "" {
		format = p.Format
	}
	return Class{Kind: kind, Format: format}
}

// Type classifies a rendered type string. The returned format is non-empty
// only for date-like types.
func Type(rendered string) (Kind, string) {
	rendered = strings.TrimSpace(rendered)
	if _, ok := ArrayElem(rendered); ok {
		return Array, ""
	}
	if isMap(rendered) {
		return Object, ""
	}

	toks := tokenize(rendered)
	switch {
	case toks.any(stringTokens):
		return String, ""
	case toks.any(numberTokens):
		return Number, ""
	case toks.any(booleanTokens):
		return Boolean, ""
	case toks.any(dateTokens):
		return String, DateTimeFormat
	default:
		return Object, ""
	}
}

// ArrayElem strips an array marker from a rendered type and returns the
// element type. It recognizes T[], readonly T[], Array<T> and ReadonlyArray<T>.
func ArrayElem(rendered string) (string, bool) {
	t := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rendered), "readonly "))
	// "A | B[]" is a union, not an array of "A | B".
	if inner, ok := strings.CutSuffix(t, "[]"); ok && balanced(inner) && !strings.Contains(topLevel(inner), "|") {
		return unparen(inner), true
	}
	for _, prefix := range []string{"Array<", "ReadonlyArray<"} {
		if strings.HasPrefix(t, prefix) && strings.HasSuffix(t, ">") {
			inner := t[len(prefix) : len(t)-1]
			if balanced(inner) {
				return strings.TrimSpace(inner), true
			}
		}
	}
	return "", false
}

// itemKind applies the primitive rules to an array element type. Only string,
// number and boolean elements are typed; everything else is an object.
func itemKind(elem string) Kind {
	if _, ok := ArrayElem(elem); ok || isMap(elem) {
		return Object
	}
	toks := tokenize(elem)
	switch {
	case toks.any(stringTokens):
		return String
	case toks.any(numberTokens):
		return Number
	case toks.any(booleanTokens):
		return Boolean
	default:
		return Object
	}
}

func enumKind(p *model.PropertyInfo) Kind {
	if p.EnumNumeric {
		return Number
	}
	return String
}

func isMap(t string) bool {
	for _, prefix := range []string{"Record<", "Map<", "ReadonlyMap<", "{"} {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}

// balanced reports whether brackets in s pair up.
func balanced(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '(', '<', '[', '{':
			depth++
		case ')', '>', ']', '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// topLevel returns s with all bracketed groups removed.
func topLevel(s string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(', '<', '[', '{':
			depth++
			continue
		case ')', '>', ']', '}':
			depth--
			continue
		}
		if depth == 0 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func unparen(s string) string {
	s = strings.TrimSpace(s)
	for strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && balancedParens(s[1:len(s)-1]) {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

func balancedParens(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
