// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package model defines the language-neutral records that flow through the
// schema generation pipeline.
package model

// DeclarationInfo is the extracted shape of one interface or object-shaped
// type alias.
type DeclarationInfo struct {
	Name         string
	Description  string
	Properties   []PropertyInfo
	ExtendsNames []string
	DocExamples  []string // raw @example bodies on the declaration
	File         string   // source path relative to the source root
}

// Required returns the names of all non-optional properties, in property
// order. It is derived from Properties and never stored separately.
func (d *DeclarationInfo) Required() []string {
	required := make([]string, 0, len(d.Properties))
	for _, p := range d.Properties {
		if !p.Optional {
			required = append(required, p.Name)
		}
	}
	return required
}

// Property returns the property with the given name.
func (d *DeclarationInfo) Property(name string) (PropertyInfo, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertyInfo{}, false
}

// PropertyInfo describes a single member of a declaration.
type PropertyInfo struct {
	Name         string
	RenderedType string // printable type, e.g. "string[]" or "Record<string, number>"
	Description  string
	Optional     bool

	// EnumValues holds the member values of the referenced enum-kind
	// declaration, in declaration order. Empty when the type is not an enum.
	EnumValues []string
	// EnumNumeric is set when every enum value is a numeric constant.
	EnumNumeric bool

	DocExamples []any  // parsed @example bodies
	Format      string // @format tag
}

// HasEnum reports whether the property resolved to an enum-kind declaration.
func (p *PropertyInfo) HasEnum() bool {
	return len(p.EnumValues) > 0
}
