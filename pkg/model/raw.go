package model

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// RawScore is a score record as delivered by the score-fetch collaborator.
//
// Two shapes arrive in practice: percentage-keyed objects
// ({"average": 3.2, "percentage": 64}) and value-keyed objects
// ({"value": 64}). A bare number is accepted as a percentage.
type RawScore struct {
	AxisID     string   `json:"id,omitempty" yaml:"id,omitempty"`
	Average    *float64 `json:"average,omitempty" yaml:"average,omitempty"`
	Percentage *float64 `json:"percentage,omitempty" yaml:"percentage,omitempty"`
	Value      *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Category   string   `json:"category,omitempty" yaml:"category,omitempty"`
}

type rawScoreFields RawScore

// UnmarshalJSON accepts either an object or a bare number.
func (r *RawScore) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = RawScore{}
		return nil
	}
	if data[0] != '{' {
		v, err := parseNumber(string(bytes.Trim(data, `"`)))
		if err != nil {
			return fmt.Errorf("score: %w", err)
		}
		*r = RawScore{Percentage: &v}
		return nil
	}
	var f rawScoreFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = RawScore(f)
	return nil
}

// UnmarshalYAML accepts either a mapping or a scalar number.
func (r *RawScore) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*r = RawScore{}
			return nil
		}
		v, err := parseNumber(node.Value)
		if err != nil {
			return fmt.Errorf("score at line %d: %w", node.Line, err)
		}
		*r = RawScore{Percentage: &v}
		return nil
	case yaml.MappingNode:
		var f rawScoreFields
		if err := node.Decode(&f); err != nil {
			return err
		}
		*r = RawScore(f)
		return nil
	default:
		return fmt.Errorf("score at line %d: unexpected YAML node kind %d", node.Line, node.Kind)
	}
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

// Entry normalizes the record into a ScoreEntry named name.
// The value prefers the percentage, falls back to the raw value field and
// defaults to zero. Non-finite numbers become zero.
func (r RawScore) Entry(name string) ScoreEntry {
	e := ScoreEntry{
		AxisID:   r.AxisID,
		Name:     name,
		Category: r.Category,
	}
	switch {
	case r.Percentage != nil:
		e.Value = finite(*r.Percentage)
	case r.Value != nil:
		e.Value = finite(*r.Value)
	}
	if r.Average != nil {
		if avg := *r.Average; !math.IsNaN(avg) {
			e.Average = Float(finite(avg))
		}
	}
	return e
}

// ScoreMap is the name-keyed score object supplied by collaborators.
type ScoreMap map[string]RawScore

// Names returns the keys sorted alphabetically.
func (m ScoreMap) Names() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Entries normalizes every record. When order is non-empty the result follows
// it and names missing from the map are skipped; otherwise names are sorted.
func (m ScoreMap) Entries(order []string) []ScoreEntry {
	if len(order) == 0 {
		order = m.Names()
	}
	out := make([]ScoreEntry, 0, len(order))
	for _, name := range order {
		raw, ok := m[name]
		if !ok {
			continue
		}
		out = append(out, raw.Entry(name))
	}
	return out
}

// Lookup finds the record for name, first by exact key and then by
// normalized name equality.
func (m ScoreMap) Lookup(name string) (RawScore, bool) {
	if raw, ok := m[name]; ok {
		return raw, true
	}
	want := NormalizeName(name)
	if want == "" {
		return RawScore{}, false
	}
	for _, k := range m.Names() {
		if NormalizeName(k) == want {
			return m[k], true
		}
	}
	return RawScore{}, false
}
