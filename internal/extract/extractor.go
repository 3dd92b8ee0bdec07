// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package extract turns parsed declarations into DeclarationInfo records.
package extract

import (
	"strings"

	"go.uber.org/zap"

	"github.com/dacolabs/schemagen/internal/model"
	"github.com/dacolabs/schemagen/internal/program"
)

// maxAliasDepth bounds alias chains such as type A = B; type B = A.
const maxAliasDepth = 16

// Options control which declarations are extracted and how.
type Options struct {
	IgnoreNames       []string
	InheritProperties bool
}

// Extractor produces one DeclarationInfo per interface or object-shaped type
// alias. It only reads from the AnalysisContext.
type Extractor struct {
	actx    *program.AnalysisContext
	ignore  map[string]struct{}
	inherit bool
	logger  *zap.Logger
}

// New creates an Extractor over actx.
func New(actx *program.AnalysisContext, opts Options, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	ignore := make(map[string]struct{}, len(opts.IgnoreNames))
	for _, name := range opts.IgnoreNames {
		ignore[name] = struct{}{}
	}
	return &Extractor{
		actx:    actx,
		ignore:  ignore,
		inherit: opts.InheritProperties,
		logger:  logger,
	}
}

// File extracts every eligible declaration of f, in source order.
func (e *Extractor) File(f *model.SourceFile) []model.DeclarationInfo {
	var out []model.DeclarationInfo
	for i := range f.Decls {
		d := &f.Decls[i]
		if d.Kind == model.KindEnum || !d.HasBody {
			continue
		}
		if _, skip := e.ignore[d.Name]; skip {
			e.logger.Debug("ignoring declaration",
				zap.String("declaration", d.Name),
				zap.String("file", f.Path))
			continue
		}
		out = append(out, e.Declaration(f.Path, d))
	}
	return out
}

// Declaration extracts a single declaration.
func (e *Extractor) Declaration(file string, d *model.Decl) model.DeclarationInfo {
	doc := parseDoc(d.Doc)
	info := model.DeclarationInfo{
		Name:         d.Name,
		Description:  doc.description(),
		ExtendsNames: append([]string(nil), d.Extends...),
		DocExamples:  doc.all("example"),
		File:         file,
	}

	members := d.Members
	if e.inherit {
		members = e.flatten(d, make(map[string]bool))
	}
	for _, m := range members {
		info.Properties = append(info.Properties, e.property(m))
	}
	return info
}

func (e *Extractor) property(m model.Member) model.PropertyInfo {
	doc := parseDoc(m.Doc)
	p := model.PropertyInfo{
		Name:         m.Name,
		RenderedType: e.render(m.Type, 0),
		Description:  doc.description(),
		Optional:     m.Optional,
	}
	if format, ok := doc.tag("format"); ok {
		p.Format = strings.TrimSpace(format)
	}
	for _, ex := range doc.all("example") {
		p.DocExamples = append(p.DocExamples, exampleValue(ex))
	}

	ref := m.Type.Ref
	if ref == "" && m.Type.Elem != nil {
		ref = m.Type.Elem.Ref
	}
	if members, ok := e.enumMembers(ref); ok {
		p.EnumNumeric = true
		for _, em := range members {
			p.EnumValues = append(p.EnumValues, em.Value)
			p.EnumNumeric = p.EnumNumeric && em.Numeric
		}
	}
	return p
}

// render prints a type, replacing references to plain aliases (type ID =
// string) with the aliased type.
func (e *Extractor) render(t model.TypeExpr, depth int) string {
	if depth > maxAliasDepth {
		return t.Text
	}
	if t.Elem != nil {
		elem := e.render(*t.Elem, depth+1)
		if elem == t.Elem.Text {
			return t.Text
		}
		if strings.ContainsAny(elem, " |&") {
			return "(" + elem + ")[]"
		}
		return elem + "[]"
	}
	d, ok := e.actx.Lookup(t.Ref)
	if !ok || d.Kind != model.KindTypeAlias || d.Aliased == nil || d.IsEnumKind() {
		return t.Text
	}
	return e.render(*d.Aliased, depth+1)
}

// enumMembers resolves ref, following plain aliases, to an enum-kind
// declaration.
func (e *Extractor) enumMembers(ref string) ([]model.EnumMember, bool) {
	for depth := 0; depth <= maxAliasDepth && ref != ""; depth++ {
		d, ok := e.actx.Lookup(ref)
		if !ok {
			return nil, false
		}
		if d.IsEnumKind() {
			return d.EnumMembers, len(d.EnumMembers) > 0
		}
		if d.Kind != model.KindTypeAlias || d.Aliased == nil {
			return nil, false
		}
		ref = d.Aliased.Ref
	}
	return nil, false
}

// flatten returns the members of d with the members of its resolvable bases
// first. Own members replace inherited ones of the same name in place.
func (e *Extractor) flatten(d *model.Decl, visited map[string]bool) []model.Member {
	if visited[d.Name] {
		return nil
	}
	visited[d.Name] = true

	var members []model.Member
	for _, name := range d.Extends {
		base, ok := e.actx.Lookup(name)
		if !ok || !base.HasBody {
			e.logger.Debug("base declaration not resolvable",
				zap.String("declaration", d.Name),
				zap.String("base", name))
			continue
		}
		members = merge(members, e.flatten(base, visited))
	}
	return merge(members, d.Members)
}

func merge(base, own []model.Member) []model.Member {
	out := append([]model.Member(nil), base...)
	for _, m := range own {
		replaced := false
		for i := range out {
			if out[i].Name == m.Name {
				out[i] = m
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, m)
		}
	}
	return out
}
