// Package model holds the plain data shapes the visualization engine consumes:
// canonical axis lists and per-axis score entries.
//
// Everything here is an ephemeral value built fresh for one render pass.
// Collaborators hand over scores in a loose shape (RawScore); the boundary
// normalizes them into ScoreEntry immediately so renderers never branch on
// which fields happened to be present.
package model

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// AxisConfig is one entry of the canonical ordered axis list.
type AxisConfig struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Order int    `json:"order" yaml:"order"`
}

// Label returns the display name, falling back to the ID.
func (a AxisConfig) Label() string {
	if strings.TrimSpace(a.Name) != "" {
		return a.Name
	}
	return a.ID
}

// ScoreEntry is one axis score after normalization.
type ScoreEntry struct {
	// AxisID is the stable axis identifier when the collaborator supplies one.
	AxisID string `json:"axis_id,omitempty"`
	Name   string `json:"name"`
	// Value is a 0-100 percentage.
	Value float64 `json:"value"`
	// Average is the raw-scale score (typically 0-5); nil when unknown.
	Average  *float64 `json:"average,omitempty"`
	Category string   `json:"category,omitempty"`
}

// HasAverage reports whether the raw-scale average is known.
func (e ScoreEntry) HasAverage() bool {
	return e.Average != nil && !math.IsNaN(*e.Average)
}

// Band returns the explicit category when present, otherwise the band derived
// from the percentage value.
func (e ScoreEntry) Band() Band {
	if b, ok := ParseBand(e.Category); ok {
		return b
	}
	return BandFor(e.Value)
}

// SortAxes returns a copy of axes ordered by Order, then ID.
func SortAxes(axes []AxisConfig) []AxisConfig {
	out := make([]AxisConfig, len(axes))
	copy(out, axes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AxisLabels returns the display labels of axes in order.
func AxisLabels(axes []AxisConfig) []string {
	labels := make([]string, len(axes))
	for i, a := range axes {
		labels[i] = a.Label()
	}
	return labels
}

// NormalizeName lowercases s and drops everything that is not a letter or digit.
// "Caring & Connection" and "caring_connection" normalize identically.
func NormalizeName(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}

// Float returns a pointer to v. Handy for building averages in literals.
func Float(v float64) *float64 {
	return &v
}

// ClampPercent clamps v to [0, 100]; NaN becomes 0.
func ClampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// finite replaces NaN and infinities with zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
