package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// The itinerary core strips header markers only. Everything in this file is
// display-time cleanup and must not be pushed back into parsing.

var ordinalRe = regexp.MustCompile(`^\d+\.\s*`)

var markdown = goldmark.New()

// DisplayTitle drops a leading "1. " style ordinal and every "**" from a
// section title.
func DisplayTitle(title string) string {
	s := ordinalRe.ReplaceAllString(strings.TrimSpace(title), "")
	return strings.TrimSpace(strings.ReplaceAll(s, "**", ""))
}

// PlainText renders inline markdown in an item as plain text, so
// "**Old Town**: walk" displays as "Old Town: walk".
func PlainText(s string) string {
	src := []byte(strings.TrimSpace(s))
	if len(src) == 0 {
		return ""
	}
	doc := markdown.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.AutoLink:
			buf.Write(node.Label(src))
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	out := strings.TrimSpace(buf.String())
	if out == "" {
		// Input that is all markup (e.g. "---") still has to show up.
		return string(src)
	}
	return out
}
