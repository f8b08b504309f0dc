package source

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLLoader handles itineraries saved as HTML, typically the markdown
// response rendered by a chat UI. Heading levels are mapped back onto the
// line markers: h3 becomes "### ", other headings "# ", list items "- ".
type HTMLLoader struct{}

func (l *HTMLLoader) Load(r io.Reader, filename string) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var lines []string
	emit := func(prefix, text string) {
		for _, l := range strings.Split(text, "\n") {
			l = strings.TrimSpace(l)
			if l != "" {
				lines = append(lines, prefix+l)
			}
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "head":
				return
			case "h3":
				emit("### ", textContent(n))
				return
			case "h1", "h2", "h4", "h5", "h6":
				emit("# ", textContent(n))
				return
			case "li":
				emit("- ", textContent(n))
				return
			case "p", "td", "blockquote", "pre":
				emit("", textContent(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return lines, nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			buf.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			buf.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
