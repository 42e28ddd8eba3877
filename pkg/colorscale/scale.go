package colorscale

import "math"

// DifferenceScale maps a heatmap difference onto dark -> medium -> pale.
// Small differences are dark (similar axes), large ones pale.
type DifferenceScale struct {
	Dark   RGB `json:"dark" yaml:"dark"`
	Medium RGB `json:"medium" yaml:"medium"`
	Pale   RGB `json:"pale" yaml:"pale"`
}

// DefaultDifferenceScale is the stock blue ramp.
func DefaultDifferenceScale() DifferenceScale {
	return DifferenceScale{
		Dark:   RGB{30, 58, 138},
		Medium: RGB{96, 165, 250},
		Pale:   RGB{239, 246, 255},
	}
}

// At returns the colour for value given the matrix-wide max.
// max <= 0 (all values equal) returns Pale.
func (s DifferenceScale) At(value, max float64) RGB {
	if max <= 0 || math.IsNaN(max) {
		return s.Pale
	}
	t := value / max
	if math.IsNaN(t) || t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	if t <= 0.5 {
		return Lerp(s.Dark, s.Medium, t/0.5)
	}
	return Lerp(s.Medium, s.Pale, (t-0.5)/0.5)
}

// Gradient expresses the scale as a Gradient over [0, 1].
func (s DifferenceScale) Gradient() Gradient {
	return NewGradient(
		Stop{T: 0, Color: s.Dark},
		Stop{T: 0.5, Color: s.Medium},
		Stop{T: 1, Color: s.Pale},
	)
}

// MagnitudeBand is one band of the magnitude-only matrix mode.
type MagnitudeBand struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Label string  `json:"label"`
	Color RGB     `json:"color"`
}

// MagnitudeBands are six bands over the mean percentage of an axis pair.
var MagnitudeBands = []MagnitudeBand{
	{Min: 0, Max: 20, Label: "Very Low", Color: RGB{254, 226, 226}},
	{Min: 20, Max: 40, Label: "Low", Color: RGB{254, 202, 202}},
	{Min: 40, Max: 55, Label: "Below Mid", Color: RGB{254, 240, 138}},
	{Min: 55, Max: 70, Label: "Above Mid", Color: RGB{217, 249, 157}},
	{Min: 70, Max: 85, Label: "High", Color: RGB{134, 239, 172}},
	{Min: 85, Max: 100, Label: "Very High", Color: RGB{34, 197, 94}},
}

// MagnitudeBandFor returns the index into MagnitudeBands for pct. pct is
// clamped to [0, 100]; NaN lands in the lowest band.
func MagnitudeBandFor(pct float64) int {
	if math.IsNaN(pct) || pct < 0 {
		pct = 0
	}
	for i, b := range MagnitudeBands {
		if pct < b.Max {
			return i
		}
	}
	return len(MagnitudeBands) - 1
}
