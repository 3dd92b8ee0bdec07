// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package extract

import (
	"strings"

	"github.com/goccy/go-json"
)

// docComment is a parsed JSDoc block.
type docComment struct {
	text string
	tags []docTag
}

type docTag struct {
	name string
	body string
}

// parseDoc splits a /** ... */ block into its leading text and tags. Tag
// bodies run until the next tag and may span lines.
func parseDoc(raw string) docComment {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/**") {
		return docComment{}
	}
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "/**"), "*/")

	var (
		doc     docComment
		text    []string
		current *docTag
		body    []string
	)
	flush := func() {
		if current != nil {
			current.body = strings.TrimSpace(strings.Join(body, "\n"))
			doc.tags = append(doc.tags, *current)
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimLeft(line, " \t")
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimPrefix(line, " ")
		line = strings.TrimRight(line, " \t\r")

		if strings.HasPrefix(line, "@") {
			flush()
			name, rest, _ := strings.Cut(line[1:], " ")
			current = &docTag{name: name}
			body = []string{rest}
			continue
		}
		if current != nil {
			body = append(body, line)
		} else {
			text = append(text, line)
		}
	}
	flush()

	doc.text = strings.TrimSpace(strings.Join(text, "\n"))
	return doc
}

// description returns the @description tag when present, else the leading text.
func (d docComment) description() string {
	if v, ok := d.tag("description"); ok && v != "" {
		return v
	}
	return d.text
}

func (d docComment) tag(name string) (string, bool) {
	for _, t := range d.tags {
		if t.name == name {
			return t.body, true
		}
	}
	return "", false
}

func (d docComment) all(name string) []string {
	var out []string
	for _, t := range d.tags {
		if t.name == name {
			out = append(out, stripFence(t.body))
		}
	}
	return out
}

// stripFence removes a surrounding markdown code fence.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	_, rest, ok := strings.Cut(s, "\n")
	if !ok {
		return s
	}
	rest = strings.TrimSuffix(strings.TrimSpace(rest), "```")
	return strings.TrimSpace(rest)
}

// exampleValue decodes an @example body as JSON, falling back to the raw text.
func exampleValue(body string) any {
	var v any
	if err := json.Unmarshal([]byte(body), &v); err == nil {
		return v
	}
	return body
}
