package colorscale

import (
	"fmt"
	"math"
)

// Category is the relationship class of a matrix cell.
type Category int

const (
	// CategoryNeutral marks a pair where at least one average is unknown.
	CategoryNeutral Category = iota
	// CategoryDiagonal marks an axis paired with itself.
	CategoryDiagonal
	// CategoryConflict: the averages are far apart.
	CategoryConflict
	// CategoryGrowth: neither conflict nor flow.
	CategoryGrowth
	// CategoryFlow: both averages high and close together.
	CategoryFlow
)

// String returns the display name.
func (c Category) String() string {
	switch c {
	case CategoryDiagonal:
		return "Self"
	case CategoryConflict:
		return "Conflict"
	case CategoryGrowth:
		return "Growth"
	case CategoryFlow:
		return "Flow"
	default:
		return "No data"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Color returns the fill colour of the category.
func (c Category) Color() RGB {
	switch c {
	case CategoryConflict:
		return Red
	case CategoryGrowth:
		return Amber
	case CategoryFlow:
		return Green
	default:
		return Neutral
	}
}

// Default delta thresholds. They have no documented derivation; keep them
// configurable rather than re-deriving.
const (
	DefaultConflictDelta = 2.0
	DefaultFlowFloor     = 4.0
	DefaultFlowDelta     = 0.8
)

// Thresholds parameterize delta categorization.
type Thresholds struct {
	// ConflictDelta: delta strictly above it is a conflict.
	ConflictDelta float64 `json:"conflict_delta" yaml:"conflict_delta"`
	// FlowFloor: both averages must be strictly above it for flow.
	FlowFloor float64 `json:"flow_floor" yaml:"flow_floor"`
	// FlowDelta: delta strictly below it (with FlowFloor met) is flow.
	FlowDelta float64 `json:"flow_delta" yaml:"flow_delta"`
}

// DefaultThresholds returns the stock thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ConflictDelta: DefaultConflictDelta,
		FlowFloor:     DefaultFlowFloor,
		FlowDelta:     DefaultFlowDelta,
	}
}

// Relation is the outcome of comparing two axes.
type Relation struct {
	Category Category `json:"category"`
	// Delta is |a-b|; zero when unknown or diagonal.
	Delta float64 `json:"delta"`
	// Known is false when either average was missing.
	Known bool `json:"known"`
}

// Color returns the fill colour of the relation.
func (r Relation) Color() RGB {
	return r.Category.Color()
}

// DeltaText formats the delta for tooltips; "n/a" when unknown.
func (r Relation) DeltaText() string {
	if r.Category == CategoryNeutral {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", r.Delta)
}

// Categorize classifies the pair (a, b) of raw-scale averages.
// A nil or NaN average yields CategoryNeutral. The result is symmetric.
func (th Thresholds) Categorize(a, b *float64) Relation {
	if a == nil || b == nil || math.IsNaN(*a) || math.IsNaN(*b) {
		return Relation{Category: CategoryNeutral}
	}
	delta := math.Abs(*a - *b)
	rel := Relation{Delta: delta, Known: true}
	switch {
	case delta > th.ConflictDelta:
		rel.Category = CategoryConflict
	case *a > th.FlowFloor && *b > th.FlowFloor && delta < th.FlowDelta:
		rel.Category = CategoryFlow
	default:
		rel.Category = CategoryGrowth
	}
	return rel
}

// Categorize applies the default thresholds.
func Categorize(a, b *float64) Relation {
	return DefaultThresholds().Categorize(a, b)
}

// Diagonal is the relation of an axis with itself: neutral with a zero delta,
// regardless of the axis value.
func Diagonal() Relation {
	return Relation{Category: CategoryDiagonal, Delta: 0, Known: true}
}
