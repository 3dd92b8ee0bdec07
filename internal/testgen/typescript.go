// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package testgen

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/dacolabs/schemagen/internal/classify"
	"github.com/dacolabs/schemagen/internal/model"
)

//go:embed spec.ts.tmpl
var tmplFS embed.FS

var funcMap = template.FuncMap{
	"quote": quote,
}

var tmpl = template.Must(template.New("spec.ts.tmpl").Funcs(funcMap).ParseFS(tmplFS, "spec.ts.tmpl"))

// Bucket is the assertion group a property falls into.
type Bucket int

const (
	BucketString Bucket = iota
	BucketNumber
	BucketBoolean
	BucketArray
	BucketObject
	BucketEnum
)

var bucketBanners = [...]string{
	BucketString:  "String properties",
	BucketNumber:  "Number properties",
	BucketBoolean: "Boolean properties",
	BucketArray:   "Array properties",
	BucketObject:  "Object properties",
	BucketEnum:    "Enum properties",
}

// String returns the banner text of the bucket.
func (b Bucket) String() string {
	return bucketBanners[b]
}

// BucketOf places a property into exactly one bucket.
func BucketOf(p *model.PropertyInfo) Bucket {
	c := classify.Property(p)
	switch {
	case c.Kind == classify.Array:
		return BucketArray
	case c.Enum:
		return BucketEnum
	case c.Kind == classify.String:
		return BucketString
	case c.Kind == classify.Number:
		return BucketNumber
	case c.Kind == classify.Boolean:
		return BucketBoolean
	default:
		return BucketObject
	}
}

type fileData struct {
	Preamble     []string
	Title        string
	UtilsModule  string
	SchemaImport string
	Required     []string
	Groups       []group
}

type group struct {
	Banner     string
	Assertions []assertion
}

type assertion struct {
	Title string
	Call  string
}

// TypeScript renders TypeScript test files. Frameworks differ only in the
// lines placed before the helper import.
type TypeScript struct {
	name     string
	preamble []string
}

// NewJest creates a generator for jest, which provides describe/it/expect as
// globals.
func NewJest() *TypeScript {
	return &TypeScript{name: "jest"}
}

// NewVitest creates a generator for vitest.
func NewVitest() *TypeScript {
	return &TypeScript{
		name:     "vitest",
		preamble: []string{"import { describe, expect, it } from 'vitest';"},
	}
}

// Name returns the framework name.
func (g *TypeScript) Name() string {
	return g.name
}

// Generate renders the test file for in.Decl.
func (g *TypeScript) Generate(in Input) ([]byte, error) {
	if in.Decl == nil {
		return nil, errors.New("nil declaration")
	}
	data := fileData{
		Preamble:     g.preamble,
		Title:        in.Decl.Name,
		UtilsModule:  in.UtilsModule,
		SchemaImport: in.SchemaImport,
		Required:     in.Decl.Required(),
		Groups:       groups(in.Decl),
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "spec.ts.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func groups(info *model.DeclarationInfo) []group {
	var byBucket [len(bucketBanners)][]assertion
	for i := range info.Properties {
		p := &info.Properties[i]
		b := BucketOf(p)
		byBucket[b] = append(byBucket[b], assertionFor(b, p))
	}

	var out []group
	for b, as := range byBucket {
		if len(as) == 0 {
			continue
		}
		out = append(out, group{Banner: Bucket(b).String(), Assertions: as})
	}
	return out
}

func assertionFor(b Bucket, p *model.PropertyInfo) assertion {
	name := quote(p.Name)
	switch b {
	case BucketString:
		c := classify.Property(p)
		if c.Format != "" {
			return assertion{
				Title: "has string property " + p.Name,
				Call:  fmt.Sprintf("expectStringProperty(properties, %s, %s)", name, quote(c.Format)),
			}
		}
		return assertion{
			Title: "has string property " + p.Name,
			Call:  fmt.Sprintf("expectStringProperty(properties, %s)", name),
		}
	case BucketNumber:
		return assertion{
			Title: "has number property " + p.Name,
			Call:  fmt.Sprintf("expectNumberProperty(properties, %s)", name),
		}
	case BucketBoolean:
		return assertion{
			Title: "has boolean property " + p.Name,
			Call:  fmt.Sprintf("expectBooleanProperty(properties, %s)", name),
		}
	case BucketArray:
		item := classify.Property(p).Item
		return assertion{
			Title: "has array property " + p.Name,
			Call:  fmt.Sprintf("expectArrayProperty(properties, %s, %s)", name, quote(string(item))),
		}
	case BucketEnum:
		return assertion{
			Title: "has enum property " + p.Name,
			Call:  fmt.Sprintf("expectEnumProperty(properties, %s, %s)", name, enumLiteral(p)),
		}
	default:
		return assertion{
			Title: "has object property " + p.Name,
			Call:  fmt.Sprintf("expectObjectProperty(properties, %s)", name),
		}
	}
}

func enumLiteral(p *model.PropertyInfo) string {
	vals := make([]string, len(p.EnumValues))
	for i, v := range p.EnumValues {
		if p.EnumNumeric {
			vals[i] = v
		} else {
			vals[i] = quote(v)
		}
	}
	return "[" + strings.Join(vals, ", ") + "]"
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// quote renders s as a single-quoted TypeScript string literal.
func quote(s string) string {
	return "'" + quoteReplacer.Replace(s) + "'"
}
