// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package typescript

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dacolabs/schemagen/internal/model"
)

type walker struct {
	src []byte
}

func (w *walker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(w.src)
}

// topLevel converts a direct child of the program node.
func (w *walker) topLevel(n *sitter.Node) (model.Decl, bool) {
	target := n
	if n.Type() == "export_statement" {
		target = n.ChildByFieldName("declaration")
		if target == nil {
			return model.Decl{}, false
		}
	}

	var decl model.Decl
	switch target.Type() {
	case "interface_declaration":
		decl = w.interfaceDecl(target)
	case "type_alias_declaration":
		decl = w.typeAliasDecl(target)
	case "enum_declaration":
		decl = w.enumDecl(target)
	default:
		return model.Decl{}, false
	}
	if decl.Name == "" {
		return model.Decl{}, false
	}
	// The doc comment sits above the export keyword when there is one.
	decl.Doc = w.docComment(n)
	decl.Line = int(n.StartPoint().Row) + 1
	return decl, true
}

// docComment returns the JSDoc block immediately preceding n.
func (w *walker) docComment(n *sitter.Node) string {
	prev := n.PrevNamedSibling()
	if prev == nil || prev.Type() != "comment" {
		return ""
	}
	text := w.text(prev)
	if !strings.HasPrefix(text, "/**") {
		return ""
	}
	if prev.EndPoint().Row+1 < n.StartPoint().Row {
		return ""
	}
	return text
}

func (w *walker) interfaceDecl(n *sitter.Node) model.Decl {
	decl := model.Decl{
		Kind:    model.KindInterface,
		Name:    w.text(n.ChildByFieldName("name")),
		HasBody: true,
	}

	var body *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "extends_type_clause", "extends_clause":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if name := w.heritageName(child.NamedChild(j)); name != "" {
					decl.Extends = append(decl.Extends, name)
				}
			}
		case "object_type", "interface_body":
			body = child
		}
	}
	if b := n.ChildByFieldName("body"); b != nil {
		body = b
	}
	if body != nil {
		decl.Members = w.members(body)
	}
	return decl
}

func (w *walker) typeAliasDecl(n *sitter.Node) model.Decl {
	decl := model.Decl{
		Kind: model.KindTypeAlias,
		Name: w.text(n.ChildByFieldName("name")),
	}
	value := n.ChildByFieldName("value")
	if value == nil {
		return decl
	}

	switch value.Type() {
	case "object_type":
		decl.HasBody = true
		decl.Members = w.members(value)
	case "intersection_type":
		decl.HasBody = true
		w.flattenIntersection(value, &decl)
	default:
		if members, ok := w.literalUnion(value); ok {
			decl.EnumMembers = members
			return decl
		}
		aliased := w.typeExpr(value)
		decl.Aliased = &aliased
	}
	return decl
}

// flattenIntersection merges the object parts of A & { ... } & B into decl;
// referenced parts become heritage names.
func (w *walker) flattenIntersection(n *sitter.Node, decl *model.Decl) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		part := n.NamedChild(i)
		for part.Type() == "parenthesized_type" && part.NamedChildCount() > 0 {
			part = part.NamedChild(0)
		}
		switch part.Type() {
		case "intersection_type":
			w.flattenIntersection(part, decl)
		case "object_type":
			decl.Members = append(decl.Members, w.members(part)...)
		case "type_identifier", "nested_type_identifier", "generic_type":
			if name := w.heritageName(part); name != "" {
				decl.Extends = append(decl.Extends, name)
			}
		}
	}
}

// literalUnion returns the members of a union made only of string or number
// literal types.
func (w *walker) literalUnion(n *sitter.Node) ([]model.EnumMember, bool) {
	var members []model.EnumMember
	var collect func(*sitter.Node) bool
	collect = func(n *sitter.Node) bool {
		switch n.Type() {
		case "union_type":
			for i := 0; i < int(n.NamedChildCount()); i++ {
				if !collect(n.NamedChild(i)) {
					return false
				}
			}
			return true
		case "parenthesized_type":
			return n.NamedChildCount() == 1 && collect(n.NamedChild(0))
		case "literal_type":
			if n.NamedChildCount() != 1 {
				return false
			}
			lit := n.NamedChild(0)
			switch lit.Type() {
			case "string":
				v := unquote(w.text(lit))
				members = append(members, model.EnumMember{Name: v, Value: v})
				return true
			case "number", "unary_expression":
				v := w.text(lit)
				if _, err := strconv.ParseFloat(strings.ReplaceAll(v, " ", ""), 64); err != nil {
					return false
				}
				members = append(members, model.EnumMember{Name: v, Value: v, Numeric: true})
				return true
			}
		}
		return false
	}
	if n.Type() != "union_type" && n.Type() != "literal_type" {
		return nil, false
	}
	if !collect(n) || len(members) == 0 {
		return nil, false
	}
	return members, true
}

func (w *walker) enumDecl(n *sitter.Node) model.Decl {
	decl := model.Decl{
		Kind: model.KindEnum,
		Name: w.text(n.ChildByFieldName("name")),
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return decl
	}

	next, autoOK := 0.0, true
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		var nameNode, valueNode *sitter.Node
		switch child.Type() {
		case "property_identifier", "string":
			nameNode = child
		case "enum_assignment":
			nameNode = child.ChildByFieldName("name")
			valueNode = child.ChildByFieldName("value")
		default:
			continue
		}

		name := w.text(nameNode)
		if nameNode != nil && nameNode.Type() == "string" {
			name = unquote(name)
		}
		member := model.EnumMember{Name: name}

		switch {
		case valueNode == nil && autoOK:
			member.Value = formatNumber(next)
			member.Numeric = true
			next++
		case valueNode == nil:
			member.Value = name
		case valueNode.Type() == "string":
			member.Value = unquote(w.text(valueNode))
			autoOK = false
		default:
			text := w.text(valueNode)
			if v, err := strconv.ParseFloat(strings.ReplaceAll(text, " ", ""), 64); err == nil {
				member.Value = formatNumber(v)
				member.Numeric = true
				next, autoOK = v+1, true
			} else {
				member.Value = text
				autoOK = false
			}
		}
		decl.EnumMembers = append(decl.EnumMembers, member)
	}
	return decl
}

func (w *walker) members(body *sitter.Node) []model.Member {
	var members []model.Member
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() != "property_signature" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil || nameNode.Type() == "computed_property_name" {
			continue
		}
		name := w.text(nameNode)
		if nameNode.Type() == "string" {
			name = unquote(name)
		}

		member := model.Member{
			Name:     name,
			Optional: hasToken(child, "?"),
			Type:     model.TypeExpr{Text: "any"},
			Doc:      w.docComment(child),
		}
		if ann := child.ChildByFieldName("type"); ann != nil && ann.NamedChildCount() > 0 {
			member.Type = w.typeExpr(ann.NamedChild(0))
		}
		members = append(members, member)
	}
	return members
}

func (w *walker) typeExpr(n *sitter.Node) model.TypeExpr {
	t := model.TypeExpr{Text: normalize(w.text(n))}
	switch n.Type() {
	case "type_identifier", "nested_type_identifier":
		t.Ref = t.Text
	case "array_type":
		if n.NamedChildCount() > 0 {
			elem := w.typeExpr(n.NamedChild(0))
			t.Elem = &elem
		}
	case "generic_type":
		name := w.text(n.ChildByFieldName("name"))
		args := n.ChildByFieldName("type_arguments")
		if (name == "Array" || name == "ReadonlyArray") && args != nil && args.NamedChildCount() == 1 {
			elem := w.typeExpr(args.NamedChild(0))
			t.Elem = &elem
		}
	case "readonly_type", "parenthesized_type":
		if n.NamedChildCount() == 1 {
			inner := w.typeExpr(n.NamedChild(0))
			inner.Text = t.Text
			return inner
		}
	}
	return t
}

// heritageName returns the declaration name of an extends entry, without type
// arguments.
func (w *walker) heritageName(n *sitter.Node) string {
	switch n.Type() {
	case "comment":
		return ""
	case "generic_type":
		return w.text(n.ChildByFieldName("name"))
	}
	name, _, _ := strings.Cut(w.text(n), "<")
	return strings.TrimSpace(name)
}

func hasToken(n *sitter.Node, token string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && !c.IsNamed() && c.Type() == token {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	q := s[0]
	if (q != '"' && q != '\'' && q != '`') || s[len(s)-1] != q {
		return s
	}
	r := strings.NewReplacer(`\\`, `\`, `\'`, `'`, `\"`, `"`, "\\`", "`")
	return r.Replace(s[1 : len(s)-1])
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
