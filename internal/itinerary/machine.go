package itinerary

// Report lists the degradation events seen while building a document.
type Report struct {
	Lines          int `json:"lines"`
	BlankLines     int `json:"blank_lines"`
	SyntheticDays  int `json:"synthetic_days"`
	OrphanLines    int `json:"orphan_lines"`
	OrphanSections int `json:"orphan_sections"`
}

// Degraded reports whether the input needed any placeholder structure.
func (r Report) Degraded() bool {
	return r.SyntheticDays > 0 || r.OrphanSections > 0
}

// machine folds classified lines into a Document. Open day and section are
// tracked as indices into doc so nothing aliases already-emitted nodes.
type machine struct {
	doc     Document
	day     int // index into doc, -1 when no day is open
	section int // index into doc[day].Sections, -1 when no section is open
	orphans []string
	report  Report
}

func newMachine() *machine {
	return &machine{doc: Document{}, day: -1, section: -1}
}

func (m *machine) step(line string) {
	m.report.Lines++
	switch Classify(line) {
	case TagBlank:
		m.report.BlankLines++
	case TagDayHeader:
		// Pending orphans stay buffered: they belong to the next section,
		// even when that section opens under this new day.
		m.doc = append(m.doc, Day{Title: NormalizeDayTitle(line), Sections: []Section{}})
		m.day = len(m.doc) - 1
		m.section = -1
	case TagSectionHeader:
		m.ensureDay()
		sections := &m.doc[m.day].Sections
		*sections = append(*sections, Section{Title: NormalizeSectionTitle(line), Items: []string{}})
		m.section = len(*sections) - 1
		m.flushOrphans()
	case TagContent:
		item := ItemText(line)
		if m.section < 0 {
			m.orphans = append(m.orphans, item)
			m.report.OrphanLines++
			return
		}
		m.appendItems(item)
	}
}

// finish runs the end-of-input flush and returns the finished document.
func (m *machine) finish() (Document, Report) {
	m.attachTrailingOrphans()
	return m.doc, m.report
}

// ensureDay opens a synthetic day when content structure arrives first.
func (m *machine) ensureDay() {
	if m.day >= 0 {
		return
	}
	m.doc = append(m.doc, Day{Title: SyntheticDayTitle, Sections: []Section{}})
	m.day = len(m.doc) - 1
	m.report.SyntheticDays++
}

// flushOrphans moves buffered content into the open section.
func (m *machine) flushOrphans() {
	if len(m.orphans) == 0 {
		return
	}
	m.appendItems(m.orphans...)
	m.orphans = m.orphans[:0]
}

// attachTrailingOrphans handles orphans no later section picked up. They
// become a trailing Notes section on the open day, which is synthesized
// when the input never opened one.
func (m *machine) attachTrailingOrphans() {
	if len(m.orphans) == 0 {
		return
	}
	m.ensureDay()
	sections := &m.doc[m.day].Sections
	*sections = append(*sections, Section{Title: OrphanSectionTitle, Items: []string{}})
	m.section = len(*sections) - 1
	m.report.OrphanSections++
	m.flushOrphans()
}

func (m *machine) appendItems(items ...string) {
	sec := &m.doc[m.day].Sections[m.section]
	sec.Items = append(sec.Items, items...)
}
