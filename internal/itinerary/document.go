package itinerary

// SyntheticDayTitle names the placeholder day created when sections or
// content arrive before any day header.
const SyntheticDayTitle = "Day Information"

// OrphanSectionTitle names the trailing section that receives content lines
// no section was ever opened for.
const OrphanSectionTitle = "Notes"

// Document is the parsed itinerary: days in first-seen order.
// It marshals to a JSON array.
type Document []Day

// Day is one itinerary day and its sections.
type Day struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Section is a titled group of items within a day.
type Section struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Stats counts the structural nodes of a document.
type Stats struct {
	Days     int `json:"days"`
	Sections int `json:"sections"`
	Items    int `json:"items"`
}

// Stats returns node counts for d.
func (d Document) Stats() Stats {
	s := Stats{Days: len(d)}
	for _, day := range d {
		s.Sections += len(day.Sections)
		for _, sec := range day.Sections {
			s.Items += len(sec.Items)
		}
	}
	return s
}

// Clone returns a deep copy of d that shares no slices with it.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for i, day := range d {
		out[i] = Day{Title: day.Title, Sections: make([]Section, len(day.Sections))}
		for j, sec := range day.Sections {
			items := make([]string, len(sec.Items))
			copy(items, sec.Items)
			out[i].Sections[j] = Section{Title: sec.Title, Items: items}
		}
	}
	return out
}
