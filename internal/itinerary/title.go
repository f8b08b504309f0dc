package itinerary

import (
	"regexp"
	"strings"
)

// Normalization here removes header markers only. Ordinals such as
// "1. Attractions" and inline emphasis are left for the render package,
// which owns every display-time rewrite.

var (
	dayMarkerRe     = regexp.MustCompile(`^###\s*`)
	sectionMarkerRe = regexp.MustCompile(`^#\s*`)
	itemMarkerRe    = regexp.MustCompile(`^-\s*`)
)

// NormalizeDayTitle strips a leading "###" marker and trims the rest.
func NormalizeDayTitle(line string) string {
	s := strings.TrimSpace(line)
	return strings.TrimSpace(dayMarkerRe.ReplaceAllString(s, ""))
}

// NormalizeSectionTitle strips one leading "#" marker, then a leading and
// a trailing "**", then trims.
func NormalizeSectionTitle(line string) string {
	s := strings.TrimSpace(line)
	s = sectionMarkerRe.ReplaceAllString(s, "")
	s = strings.TrimPrefix(s, "**")
	s = strings.TrimSuffix(s, "**")
	return strings.TrimSpace(s)
}

// ItemText returns the item carried by a content line: the trimmed line
// with a leading "-" bullet and its following whitespace removed.
func ItemText(line string) string {
	s := strings.TrimSpace(line)
	if strings.HasPrefix(s, "-") {
		return strings.TrimSpace(itemMarkerRe.ReplaceAllString(s, ""))
	}
	return s
}
