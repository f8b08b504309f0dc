package itinerary

import (
	"bufio"
	"io"
	"strings"
)

// Build converts itinerary lines into a Document in a single pass. It never
// fails: malformed input degrades into synthetic days and Notes sections.
// Each call owns its state, so Build is safe for concurrent use.
func Build(lines []string) Document {
	doc, _ := Parse(lines)
	return doc
}

// Parse is Build plus a Report of the degradation events it handled.
func Parse(lines []string) (Document, Report) {
	m := newMachine()
	for _, line := range lines {
		m.step(line)
	}
	return m.finish()
}

// BuildText splits text on line breaks and builds it.
func BuildText(text string) Document {
	return Build(SplitLines(text))
}

// SplitLines splits text on "\n", dropping a trailing "\r" from each line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// ReadLines reads r line by line. Lines longer than 1 MiB are an error.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
