package itinerary

import (
	"regexp"
	"strings"
)

// Tag is the structural role of a single input line.
type Tag int

const (
	TagBlank Tag = iota
	TagDayHeader
	TagSectionHeader
	TagContent
)

func (t Tag) String() string {
	switch t {
	case TagBlank:
		return "blank"
	case TagDayHeader:
		return "day_header"
	case TagSectionHeader:
		return "section_header"
	case TagContent:
		return "content"
	}
	return "unknown"
}

// MarshalText lets tags appear by name in JSON.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

var (
	// "Day 3:" and "Day 2-Exploring" without the ### marker.
	dayNumberRe = regexp.MustCompile(`^Day \d+[-:]`)
	// "**Morning:" and bare "Evening:".
	timeOfDayRe = regexp.MustCompile(`^(\*\*)?(Morning|Afternoon|Evening):`)
)

// Classify assigns a Tag to line. Day patterns are checked before section
// patterns because day headers may carry ':' or '#' themselves.
func Classify(line string) Tag {
	s := strings.TrimSpace(line)
	switch {
	case s == "":
		return TagBlank
	case isDayHeader(s):
		return TagDayHeader
	case isSectionHeader(s):
		return TagSectionHeader
	default:
		return TagContent
	}
}

func isDayHeader(s string) bool {
	return strings.HasPrefix(s, "### Day") || dayNumberRe.MatchString(s)
}

func isSectionHeader(s string) bool {
	return strings.HasPrefix(s, "# ") ||
		strings.HasPrefix(s, "**") ||
		timeOfDayRe.MatchString(s)
}
