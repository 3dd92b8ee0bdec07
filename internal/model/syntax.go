// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package model

// DeclKind classifies a top-level declaration.
type DeclKind int

const (
	KindInterface DeclKind = iota
	KindTypeAlias
	KindEnum
)

func (k DeclKind) String() string {
	switch k {
	case KindInterface:
		return "interface"
	case KindTypeAlias:
		return "type"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// SourceFile is the syntax-level view of one parsed file, as produced by a
// Frontend.
type SourceFile struct {
	Path  string // slash-separated, relative to the source root
	Decls []Decl
}

// Decl is a top-level declaration as written in source. Nothing in it is
// resolved against other declarations.
type Decl struct {
	Kind DeclKind
	Name string
	Doc  string // raw documentation comment, including delimiters
	Line int    // 1-based

	// Extends lists heritage names for interfaces and the referenced parts of
	// an intersection type alias.
	Extends []string

	// HasBody is set for interfaces and for type aliases whose value is an
	// object literal type or an intersection containing one.
	HasBody bool
	Members []Member

	// Aliased is the aliased type for type aliases without an object body.
	Aliased *TypeExpr

	// EnumMembers is set for enums and for aliases of literal unions.
	EnumMembers []EnumMember
}

// IsEnumKind reports whether references to this declaration carry an
// enumerated set of values.
func (d *Decl) IsEnumKind() bool {
	return d.Kind == KindEnum || len(d.EnumMembers) > 0
}

// Member is a property signature inside an object body.
type Member struct {
	Name     string
	Optional bool
	Type     TypeExpr
	Doc      string
}

// TypeExpr is a type as written in source.
type TypeExpr struct {
	// Text is the whitespace-normalized source text of the type.
	Text string
	// Ref is the referenced declaration name when the type is a plain
	// reference such as "Kind" or "ns.Kind".
	Ref string
	// Elem is the element type for array types (T[] and Array<T>).
	Elem *TypeExpr
}

// EnumMember is a single enum constant.
type EnumMember struct {
	Name    string
	Value   string
	Numeric bool
}

// Frontend parses one source language into syntax records.
type Frontend interface {
	// Name identifies the source language, e.g. "typescript".
	Name() string

	// IsDeclarationFile reports whether path holds ambient type declarations
	// only. Such files are never extracted.
	IsDeclarationFile(path string) bool

	// Parse converts one source file into its top-level declarations.
	Parse(path string, src []byte) (*SourceFile, error)
}
