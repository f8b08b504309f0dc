package render

import (
	"io"

	"github.com/dgallion1/tripgest/internal/itinerary"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WriteHTML renders doc as an HTML fragment. Days, sections and items keep
// document order; titles and items pass through the display helpers.
func (r *Renderer) WriteHTML(w io.Writer, doc itinerary.Document) error {
	root := element(atom.Article, html.Attribute{Key: "class", Val: "itinerary"})

	for _, day := range doc {
		daySec := element(atom.Section, html.Attribute{Key: "class", Val: "day"})
		h3 := element(atom.H3)
		h3.AppendChild(textNode(day.Title))
		daySec.AppendChild(h3)

		for _, sec := range day.Sections {
			attrs := []html.Attribute{{Key: "class", Val: "section"}}
			if cat := r.table().Lookup(sec.Title); cat != CategoryNone {
				attrs = append(attrs, html.Attribute{Key: "data-category", Val: string(cat)})
			}
			div := element(atom.Div, attrs...)
			h4 := element(atom.H4)
			h4.AppendChild(textNode(DisplayTitle(sec.Title)))
			div.AppendChild(h4)

			ul := element(atom.Ul)
			for _, item := range sec.Items {
				li := element(atom.Li)
				li.AppendChild(textNode(PlainText(item)))
				ul.AppendChild(li)
			}
			div.AppendChild(ul)
			daySec.AppendChild(div)
		}
		root.AppendChild(daySec)
	}

	return html.Render(w, root)
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
