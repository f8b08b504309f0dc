package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgallion1/tripgest/internal/itinerary"
)

var (
	// dayStyle for day banners
	dayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("32")).
			Padding(0, 1)

	// sectionStyle for section headings
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// dimStyle for category tags
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// bulletStyle for the item marker
	bulletStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

// Renderer turns a Document into display output.
type Renderer struct {
	// Table decides section categories. Nil means DefaultTable.
	Table Table
}

// New returns a Renderer using DefaultTable.
func New() *Renderer {
	return &Renderer{Table: DefaultTable}
}

func (r *Renderer) table() Table {
	if r.Table == nil {
		return DefaultTable
	}
	return r.Table
}

// WriteText renders doc for a terminal.
func (r *Renderer) WriteText(w io.Writer, doc itinerary.Document) error {
	for i, day := range doc {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, dayStyle.Render(day.Title)); err != nil {
			return err
		}
		for _, sec := range day.Sections {
			heading := sectionStyle.Render(DisplayTitle(sec.Title))
			if cat := r.table().Lookup(sec.Title); cat != CategoryNone {
				heading += " " + dimStyle.Render("["+string(cat)+"]")
			}
			if _, err := fmt.Fprintf(w, "\n%s\n", heading); err != nil {
				return err
			}
			for _, item := range sec.Items {
				if _, err := fmt.Fprintf(w, "  %s %s\n", bulletStyle.Render("•"), PlainText(item)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
