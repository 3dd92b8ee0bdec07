// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jschema synthesizes, encodes, verifies and loads draft-07 JSON
// Schema documents.
package jschema

import (
	"bytes"
	"slices"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/dacolabs/schemagen/internal/classify"
	"github.com/dacolabs/schemagen/internal/model"
)

// DraftURI is the $schema value of every generated document.
const DraftURI = "http://json-schema.org/draft-07/schema#"

// reserved keys carry document invariants and cannot be replaced by extra
// metadata.
var reserved = []string{"$schema", "title", "type", "additionalProperties", "required", "properties"}

// Document is a generated top-level schema.
type Document struct {
	Title       string
	Description string
	Required    []string
	Properties  *Object // property name to property schema, in declaration order
	Examples    []any

	metadata map[string]any
}

// Synthesize builds the schema document of a declaration.
func Synthesize(info *model.DeclarationInfo) *Document {
	doc := &Document{
		Title:       info.Name,
		Description: info.Description,
		Required:    info.Required(),
		Properties:  NewObject(),
	}
	if doc.Required == nil {
		doc.Required = []string{}
	}
	for i := range info.Properties {
		p := &info.Properties[i]
		doc.Properties.Set(p.Name, propertySchema(p))
	}
	for _, ex := range info.DocExamples {
		doc.Examples = append(doc.Examples, exampleValue(ex))
	}
	return doc
}

// propertySchema builds the schema of one property with keys in emitted
// order: type, format, enum, items, description, examples.
func propertySchema(p *model.PropertyInfo) *Object {
	c := classify.Property(p)
	o := NewObject()
	o.Set("type", string(c.Kind))

	if c.Kind == classify.Array {
		items := NewObject()
		items.Set("type", string(c.Item))
		if c.Enum {
			items.Set("enum", enumValues(p))
		}
		o.Set("items", items)
	} else {
		if c.Format != "" {
			o.Set("format", c.Format)
		}
		if c.Enum {
			o.Set("enum", enumValues(p))
		}
	}

	if p.Description != "" {
		o.Set("description", p.Description)
	}
	if len(p.DocExamples) > 0 {
		o.Set("examples", p.DocExamples)
	}
	return o
}

func enumValues(p *model.PropertyInfo) []any {
	out := make([]any, 0, len(p.EnumValues))
	for _, v := range p.EnumValues {
		if p.EnumNumeric {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				out = append(out, f)
				continue
			}
		}
		out = append(out, v)
	}
	return out
}

func exampleValue(body string) any {
	var v any
	if err := json.Unmarshal([]byte(body), &v); err == nil {
		return v
	}
	return body
}

// ApplyMetadata merges extra top-level keys into the document. Metadata wins
// over description and examples; reserved keys are left untouched and
// returned so the caller can report them.
func (d *Document) ApplyMetadata(extra map[string]any) []string {
	var rejected []string
	for key, v := range extra {
		if slices.Contains(reserved, key) {
			rejected = append(rejected, key)
			continue
		}
		if d.metadata == nil {
			d.metadata = make(map[string]any, len(extra))
		}
		d.metadata[key] = v
	}
	slices.Sort(rejected)
	return rejected
}

// Object returns the document as an ordered object: $schema, title,
// description, type, additionalProperties, required, properties, examples,
// then metadata keys sorted by name.
func (d *Document) Object() *Object {
	o := NewObject()
	o.Set("$schema", DraftURI)
	o.Set("title", d.Title)
	o.Set("description", d.Description)
	o.Set("type", string(classify.Object))
	o.Set("additionalProperties", false)
	required := d.Required
	if required == nil {
		required = []string{}
	}
	o.Set("required", required)
	props := d.Properties
	if props == nil {
		props = NewObject()
	}
	o.Set("properties", props)
	if len(d.Examples) > 0 {
		o.Set("examples", d.Examples)
	}

	keys := make([]string, 0, len(d.metadata))
	for k := range d.metadata {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		o.Set(k, d.metadata[k])
	}
	return o
}

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.Object().MarshalJSON()
}

// Encode renders the document as two-space indented JSON with a trailing
// newline. Equal documents encode to identical bytes.
func Encode(d *Document) ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
