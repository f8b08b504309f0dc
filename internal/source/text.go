package source

import (
	"io"

	"github.com/dgallion1/tripgest/internal/itinerary"
)

// TextLoader handles plain text and markdown, which already use the line
// convention the itinerary parser expects.
type TextLoader struct{}

func (l *TextLoader) Load(r io.Reader, filename string) ([]string, error) {
	return itinerary.ReadLines(r)
}
