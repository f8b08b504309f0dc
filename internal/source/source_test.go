package source

import (
	"strings"
	"testing"

	"github.com/dgallion1/tripgest/internal/itinerary"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"trip.txt", "*source.TextLoader"},
		{"trip.MD", "*source.TextLoader"},
		{"trip.json", "*source.JSONLoader"},
		{"trip.htm", "*source.HTMLLoader"},
		{"trip.pdf", "*source.PDFLoader"},
		{"trip.docx", "*source.DOCXLoader"},
		{"trip.csv", "*source.CSVLoader"},
	}
	for _, tt := range tests {
		l, err := ForFile(tt.filename, Options{})
		if err != nil {
			t.Fatalf("ForFile(%q): unexpected error: %v", tt.filename, err)
		}
		if got := typeName(l); got != tt.want {
			t.Errorf("ForFile(%q) = %s, want %s", tt.filename, got, tt.want)
		}
	}
}

func TestForFile_Unsupported(t *testing.T) {
	if _, err := ForFile("trip.xlsx", Options{}); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedExtension("trip.xlsx") {
		t.Error("xlsx should not be supported")
	}
	if !IsSupportedExtension("TRIP.PDF") {
		t.Error("extension check should be case-insensitive")
	}
}

func TestForFile_PDFOptions(t *testing.T) {
	l, err := ForFile("a.pdf", Options{PDFFallbackPdftotext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.(*PDFLoader).FallbackPdftotext {
		t.Error("expected pdftotext fallback to be carried over")
	}
}

func TestTextLoader(t *testing.T) {
	lines, err := (&TextLoader{}).Load(strings.NewReader("### Day 1: A\n\n# Food\n- one\n"), "a.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"### Day 1: A", "", "# Food", "- one"}
	assertLines(t, want, lines)
}

func TestJSONLoader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"array", `["### Day 1: A", "- one"]`, []string{"### Day 1: A", "- one"}},
		{"suggestions", `{"destination":"Lisbon","suggestions":["# Food"]}`, []string{"# Food"}},
		{"lines", `{"lines":["x"]}`, []string{"x"}},
		{"empty", `   `, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := (&JSONLoader{}).Load(strings.NewReader(tt.input), "a.json")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertLines(t, tt.want, lines)
		})
	}
}

func TestJSONLoader_Errors(t *testing.T) {
	for _, input := range []string{`{"other":1}`, `[1,2]`, `{not json`} {
		if _, err := (&JSONLoader{}).Load(strings.NewReader(input), "a.json"); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestHTMLLoader(t *testing.T) {
	input := `<html><head><title>Trip</title><style>p{}</style></head><body>
<nav>Home</nav>
<h3>Day 1: Arrival</h3>
<h2>Must-Visit Attractions</h2>
<ul><li>Old Town: <strong>historic</strong> quarter</li><li>Harbor</li></ul>
<p>Note one<br>Note two</p>
<script>var x = 1;</script>
</body></html>`
	lines, err := (&HTMLLoader{}).Load(strings.NewReader(input), "a.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"### Day 1: Arrival",
		"# Must-Visit Attractions",
		"- Old Town: historic quarter",
		"- Harbor",
		"Note one",
		"Note two",
	}
	assertLines(t, want, lines)
}

func TestDOCXMarker(t *testing.T) {
	tests := []struct {
		style, want string
	}{
		{"heading3", "### "},
		{"heading1", "# "},
		{"title", "# "},
		{"listparagraph", "- "},
		{"", ""},
		{"normal", ""},
	}
	for _, tt := range tests {
		if got := docxMarker(tt.style); got != tt.want {
			t.Errorf("docxMarker(%q) = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestPDFLines(t *testing.T) {
	got := pdfLines("### Day 1: A\r\n# Food\f- one\n")
	want := []string{"### Day 1: A", "# Food", "- one", ""}
	assertLines(t, want, got)
}

func assertLines(t *testing.T, want, got []string) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("expected %d lines %q, got %d lines %q", len(want), want, len(got), got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("line[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TextLoader:
		return "*source.TextLoader"
	case *JSONLoader:
		return "*source.JSONLoader"
	case *HTMLLoader:
		return "*source.HTMLLoader"
	case *PDFLoader:
		return "*source.PDFLoader"
	case *DOCXLoader:
		return "*source.DOCXLoader"
	}
	return "unknown"
}

func TestCSVLoader(t *testing.T) {
	in := "Section,Day,Item,Notes\n" +
		"Attractions,Day 1: Arrival,Castle,\n" +
		"Attractions,Day 1: Arrival,\"Old Town, Market Square\",busy\n" +
		"Food,Day 1: Arrival,Pierogi,\n" +
		"Food,Day 2: Salt Mine,Zapiekanka,\n" +
		",,,\n"
	lines, err := (&CSVLoader{}).Load(strings.NewReader(in), "trip.csv")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{
		"### Day 1: Arrival", "# Attractions", "- Castle", "- Old Town, Market Square",
		"# Food", "- Pierogi",
		"### Day 2: Salt Mine", "# Food", "- Zapiekanka",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("unexpected lines\nwant %q\ngot  %q", want, lines)
	}
}

func TestCSVLoader_NumericDays(t *testing.T) {
	in := "day,section,item\n1,Food,Noodles\n2,Food,Dumplings\n"
	lines, err := (&CSVLoader{}).Load(strings.NewReader(in), "trip.csv")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"### Day 1", "# Food", "- Noodles", "### Day 2", "# Food", "- Dumplings"}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("unexpected lines\nwant %q\ngot  %q", want, lines)
	}
	if doc := itinerary.Build(lines); len(doc) != 2 {
		t.Errorf("expected 2 days, got %d: %+v", len(doc), doc)
	}
}

func TestCSVLoader_Errors(t *testing.T) {
	if _, err := (&CSVLoader{}).Load(strings.NewReader("day,section\nA,B\n"), "trip.csv"); err == nil {
		t.Error("expected error without an item column")
	}
	lines, err := (&CSVLoader{}).Load(strings.NewReader(""), "trip.csv")
	if err != nil || len(lines) != 0 {
		t.Errorf("expected no lines for empty file, got %q, %v", lines, err)
	}
}
