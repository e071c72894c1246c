package filter

import (
	"testing"
)

type venue struct {
	name     string
	location string
	category string
	capacity int
}

var catalog = []venue{
	{"Main Auditorium", "Central Campus", "Auditorium", 500},
	{"Conference Room A", "Business Building", "Conference Room", 50},
	{"Sports Hall", "Sports Complex", "Sports Venue", 200},
	{"Study Room 101", "Library", "Study Space", 15},
	{"Computer Lab", "Technology Building", "Lab", 40},
	{"Outdoor Amphitheater", "Arts Quad", "Outdoor Space", 300},
}

func names(vs []venue) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.name
	}
	return out
}

func TestText_MatchesAnyField(t *testing.T) {
	p := Text("library", func(v venue) string { return v.name }, func(v venue) string { return v.location })
	got := Apply(catalog, p)
	if len(got) != 1 || got[0].name != "Study Room 101" {
		t.Fatalf("expected Study Room 101, got %v", names(got))
	}
}

func TestText_CaseInsensitiveSubstring(t *testing.T) {
	p := Text("ROOM", func(v venue) string { return v.name })
	got := Apply(catalog, p)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %v", names(got))
	}
	if got[0].name != "Conference Room A" || got[1].name != "Study Room 101" {
		t.Errorf("order not preserved: %v", names(got))
	}
}

func TestText_EmptyQueryMatchesAll(t *testing.T) {
	p := Text[venue]("  ", func(v venue) string { return v.name })
	got := Apply(catalog, p)
	if len(got) != len(catalog) {
		t.Fatalf("expected all %d venues, got %d", len(catalog), len(got))
	}
}

func TestEnum_SentinelMatchesAll(t *testing.T) {
	p := Enum("All", "All", func(v venue) string { return v.category })
	if got := Apply(catalog, p); len(got) != len(catalog) {
		t.Fatalf("expected all venues for sentinel, got %d", len(got))
	}
}

func TestEnum_ExactMatch(t *testing.T) {
	p := Enum("lab", "All", func(v venue) string { return v.category })
	got := Apply(catalog, p)
	if len(got) != 1 || got[0].name != "Computer Lab" {
		t.Fatalf("expected Computer Lab, got %v", names(got))
	}
}

func TestMinThreshold(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"threshold filters inclusively", "200", 3},
		{"exact boundary passes", "500", 1},
		{"empty means no constraint", "", 6},
		{"garbage means no constraint", "lots", 6},
		{"zero means no constraint", "0", 6},
		{"negative means no constraint", "-5", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MinThreshold(tt.raw, func(v venue) int { return v.capacity })
			got := Apply(catalog, p)
			if len(got) != tt.want {
				t.Errorf("raw %q: expected %d venues, got %d (%v)", tt.raw, tt.want, len(got), names(got))
			}
		})
	}
}

func TestAnd_CombinesWithConjunction(t *testing.T) {
	p := And(
		Text("building", func(v venue) string { return v.location }),
		MinThreshold("45", func(v venue) int { return v.capacity }),
	)
	got := Apply(catalog, p)
	if len(got) != 1 || got[0].name != "Conference Room A" {
		t.Fatalf("expected Conference Room A, got %v", names(got))
	}
}

func TestApply_EmptyCollection(t *testing.T) {
	got := Apply(nil, And[venue]())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}
