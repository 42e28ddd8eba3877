package model

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestRawScore_UnmarshalJSON(t *testing.T) {
	data := []byte(`{
		"Empathy": {"average": 4.5, "percentage": 90},
		"Vision": {"value": 72.5, "category": "high"},
		"Optimism": 41,
		"Curiosity": null
	}`)
	var m ScoreMap
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(m) != 4 {
		t.Fatalf("len = %d, want 4", len(m))
	}
	if got := m["Empathy"].Entry("Empathy"); got.Value != 90 || !got.HasAverage() || *got.Average != 4.5 {
		t.Errorf("Empathy entry = %+v", got)
	}
	if got := m["Vision"].Entry("Vision"); got.Value != 72.5 || got.Category != "high" {
		t.Errorf("Vision entry = %+v", got)
	}
	if got := m["Optimism"].Entry("Optimism"); got.Value != 41 || got.HasAverage() {
		t.Errorf("Optimism entry = %+v", got)
	}
	if got := m["Curiosity"].Entry("Curiosity"); got.Value != 0 {
		t.Errorf("Curiosity entry = %+v", got)
	}
}

func TestRawScore_UnmarshalJSON_Invalid(t *testing.T) {
	var m ScoreMap
	if err := json.Unmarshal([]byte(`{"A": true}`), &m); err == nil {
		t.Fatal("expected error for boolean score")
	}
}

func TestRawScore_UnmarshalYAML(t *testing.T) {
	data := []byte(`
Empathy:
  average: 4.5
  percentage: 90
Vision:
  value: 72.5
Optimism: 41
Curiosity: ~
`)
	var m ScoreMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got := m.Entries([]string{"Empathy", "Vision", "Optimism", "Curiosity"})
	want := []ScoreEntry{
		{Name: "Empathy", Value: 90, Average: Float(4.5)},
		{Name: "Vision", Value: 72.5},
		{Name: "Optimism", Value: 41},
		{Name: "Curiosity", Value: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
}

func TestRawScore_UnmarshalYAML_Invalid(t *testing.T) {
	var m ScoreMap
	if err := yaml.Unmarshal([]byte("A: [1, 2]\n"), &m); err == nil {
		t.Fatal("expected error for sequence score")
	}
	if err := yaml.Unmarshal([]byte("A: lots\n"), &m); err == nil {
		t.Fatal("expected error for non-numeric score")
	}
}

func TestRawScore_Entry(t *testing.T) {
	pct, val := 64.0, 12.0
	tests := []struct {
		name string
		raw  RawScore
		want float64
	}{
		{"percentage wins", RawScore{Percentage: &pct, Value: &val}, 64},
		{"value fallback", RawScore{Value: &val}, 12},
		{"default zero", RawScore{}, 0},
		{"nan", RawScore{Percentage: Float(math.NaN())}, 0},
		{"inf", RawScore{Value: Float(math.Inf(1))}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.raw.Entry("x").Value; got != tt.want {
				t.Errorf("Value = %v, want %v", got, tt.want)
			}
		})
	}

	if e := (RawScore{Average: Float(math.NaN())}).Entry("x"); e.HasAverage() {
		t.Error("NaN average should be dropped")
	}
}

func TestScoreMap_EntriesOrder(t *testing.T) {
	m := ScoreMap{"b": {Percentage: Float(2)}, "a": {Percentage: Float(1)}}
	sorted := m.Entries(nil)
	if sorted[0].Name != "a" || sorted[1].Name != "b" {
		t.Errorf("default order = %v, %v", sorted[0].Name, sorted[1].Name)
	}
	ordered := m.Entries([]string{"b", "missing", "a"})
	if len(ordered) != 2 || ordered[0].Name != "b" {
		t.Errorf("explicit order = %+v", ordered)
	}
}

func TestScoreMap_Lookup(t *testing.T) {
	m := ScoreMap{"caring_connection": {Percentage: Float(55)}}
	if _, ok := m.Lookup("Caring & Connection"); !ok {
		t.Error("normalized lookup failed")
	}
	if _, ok := m.Lookup("Caring"); ok {
		t.Error("partial name should not match")
	}
	if _, ok := m.Lookup("&&"); ok {
		t.Error("punctuation-only name should not match")
	}
}

func TestBand(t *testing.T) {
	tests := []struct {
		entry ScoreEntry
		want  Band
	}{
		{ScoreEntry{Value: 0}, BandLow},
		{ScoreEntry{Value: 39.9}, BandLow},
		{ScoreEntry{Value: 40}, BandMedium},
		{ScoreEntry{Value: 69.9}, BandMedium},
		{ScoreEntry{Value: 70}, BandHigh},
		{ScoreEntry{Value: 10, Category: "High"}, BandHigh},
		{ScoreEntry{Value: 90, Category: "moderate"}, BandMedium},
		{ScoreEntry{Value: 90, Category: "unknown"}, BandHigh},
	}
	for _, tt := range tests {
		if got := tt.entry.Band(); got != tt.want {
			t.Errorf("Band(%+v) = %v, want %v", tt.entry, got, tt.want)
		}
	}
}

func TestSortAxes(t *testing.T) {
	in := []AxisConfig{{ID: "c", Order: 2}, {ID: "b", Order: 1}, {ID: "a", Order: 2}}
	got := SortAxes(in)
	want := []AxisConfig{{ID: "b", Order: 1}, {ID: "a", Order: 2}, {ID: "c", Order: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortAxes mismatch (-want +got):\n%s", diff)
	}
	if in[0].ID != "c" {
		t.Error("SortAxes mutated its input")
	}
}

func TestNormalizeName(t *testing.T) {
	for in, want := range map[string]string{
		"Caring & Connection": "caringconnection",
		"Self-Discipline":     "selfdiscipline",
		"  ":                  "",
		"Top 5":               "top5",
	} {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultAxes(t *testing.T) {
	if n := len(DefaultAxes(LevelCluster)); n != 6 {
		t.Errorf("clusters = %d, want 6", n)
	}
	if n := len(DefaultAxes(LevelConstruct)); n != 18 {
		t.Errorf("constructs = %d, want 18", n)
	}
}
