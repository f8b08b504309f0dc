package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVLoader reads spreadsheet exports with a header row naming "day",
// "section" and "item" columns (any order, case-insensitive). A change of
// day or section value emits the matching header line before the item. Bare
// day values such as "1" are written as "### Day 1".
type CSVLoader struct{}

func (l *CSVLoader) Load(r io.Reader, filename string) ([]string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return []string{}, nil
	}

	col := map[string]int{"day": -1, "section": -1, "item": -1}
	for i, h := range records[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, ok := col[name]; ok {
			col[name] = i
		}
	}
	if col["item"] < 0 {
		return nil, fmt.Errorf("csv %s: missing item column", filename)
	}

	cell := func(row []string, name string) string {
		i := col[name]
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var lines []string
	var day, section string
	for _, row := range records[1:] {
		if d := cell(row, "day"); d != "" && d != day {
			day, section = d, ""
			if !strings.HasPrefix(d, "Day") {
				d = "Day " + d
			}
			lines = append(lines, "### "+d)
		}
		if s := cell(row, "section"); s != "" && s != section {
			section = s
			lines = append(lines, "# "+s)
		}
		if item := cell(row, "item"); item != "" {
			lines = append(lines, "- "+item)
		}
	}
	return lines, nil
}
