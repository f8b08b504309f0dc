package suggest

import (
	"strings"
	"testing"
)

func validRequest() TripRequest {
	return TripRequest{
		Destination: "Lisbon, Portugal",
		StartDate:   "2024-05-01",
		EndDate:     "2024-05-04",
		Preferences: "seafood, tiles, viewpoints",
	}
}

func TestTripRequest_ValidPasses(t *testing.T) {
	if err := validRequest().Validate(); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}
}

func TestTripRequest_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TripRequest)
		field  string
	}{
		{"missing destination", func(r *TripRequest) { r.Destination = "" }, "destination"},
		{"missing start", func(r *TripRequest) { r.StartDate = "" }, "start_date"},
		{"bad start", func(r *TripRequest) { r.StartDate = "05/01/2024" }, "start_date"},
		{"bad end", func(r *TripRequest) { r.EndDate = "tomorrow" }, "end_date"},
		{"end before start", func(r *TripRequest) { r.EndDate = "2024-04-30" }, "end_date"},
		{"long preferences", func(r *TripRequest) { r.Preferences = strings.Repeat("x", 2001) }, "preferences"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(&r)
			err := r.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error to mention %q, got %v", tt.field, err)
			}
		})
	}
}

func TestTripRequest_Days(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"2024-05-01", "2024-05-04", 3},
		{"2024-05-01", "2024-05-01", 1},
		{"2024-02-28", "2024-03-01", 2},
		{"bad", "2024-03-01", 1},
	}
	for _, tt := range tests {
		r := TripRequest{StartDate: tt.start, EndDate: tt.end}
		if got := r.Days(); got != tt.want {
			t.Errorf("Days(%s..%s) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestTripRequest_Normalize(t *testing.T) {
	r := TripRequest{Destination: "  Oslo ", StartDate: " 2024-01-01", EndDate: "2024-01-02 ", Preferences: "\tmuseums\n"}
	got := r.Normalize()
	want := TripRequest{Destination: "Oslo", StartDate: "2024-01-01", EndDate: "2024-01-02", Preferences: "museums"}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(validRequest())
	for _, want := range []string{
		"Create a detailed 3-day travel itinerary for Lisbon, Portugal.",
		"Consider these preferences: seafood, tiles, viewpoints",
		"### Day 1: [Day Title]",
		"# Best Areas to Stay",
		"# Transportation Tips",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}

	r := validRequest()
	r.Preferences = ""
	if strings.Contains(BuildPrompt(r), "Consider these preferences") {
		t.Error("expected no preferences line when preferences are empty")
	}
}
