package colorscale

import (
	"math"
	"sort"
)

// Stop is one colour stop of a gradient at position T.
type Stop struct {
	T     float64 `json:"t" yaml:"t"`
	Color RGB     `json:"color" yaml:"color"`
}

// Gradient is a piecewise-linear RGB gradient over ordered stops.
type Gradient struct {
	stops []Stop
}

// NewGradient sorts stops by T (stable, so duplicate positions keep their
// given order) and drops non-finite positions.
func NewGradient(stops ...Stop) Gradient {
	out := make([]Stop, 0, len(stops))
	for _, s := range stops {
		if math.IsNaN(s.T) || math.IsInf(s.T, 0) {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].T < out[j].T })
	return Gradient{stops: out}
}

// Stops returns a copy of the ordered stops.
func (g Gradient) Stops() []Stop {
	out := make([]Stop, len(g.stops))
	copy(out, g.stops)
	return out
}

// Domain returns the first and last stop positions.
func (g Gradient) Domain() (minT, maxT float64) {
	if len(g.stops) == 0 {
		return 0, 0
	}
	return g.stops[0].T, g.stops[len(g.stops)-1].T
}

// At returns the colour at t. t is clamped into the stop domain first; NaN
// maps to the lowest stop. An empty gradient yields Neutral.
func (g Gradient) At(t float64) RGB {
	n := len(g.stops)
	if n == 0 {
		return Neutral
	}
	minT, maxT := g.Domain()
	switch {
	case math.IsNaN(t) || t <= minT:
		return g.stops[0].Color
	case t >= maxT:
		return g.stops[n-1].Color
	}
	// first stop strictly above t; t > minT guarantees hi >= 1
	hi := sort.Search(n, func(i int) bool { return g.stops[i].T > t })
	if hi >= n {
		return g.stops[n-1].Color
	}
	lo := g.stops[hi-1]
	up := g.stops[hi]
	var local float64
	if width := up.T - lo.T; width != 0 {
		local = (t - lo.T) / width
	}
	return Lerp(lo.Color, up.Color, local)
}

// Lerp linearly interpolates each channel and rounds to the nearest integer.
// f is clamped to [0, 1].
func Lerp(a, b RGB, f float64) RGB {
	if math.IsNaN(f) || f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return RGB{
		R: lerpChannel(a.R, b.R, f),
		G: lerpChannel(a.G, b.G, f),
		B: lerpChannel(a.B, b.B, f),
	}
}

func lerpChannel(a, b uint8, f float64) uint8 {
	v := math.Round(float64(a) + (float64(b)-float64(a))*f)
	return uint8(math.Max(0, math.Min(255, v)))
}

// Sample returns n evenly spaced colours across the domain, endpoints
// included. n < 2 returns the first stop only.
func (g Gradient) Sample(n int) []Stop {
	if len(g.stops) == 0 || n <= 0 {
		return nil
	}
	minT, maxT := g.Domain()
	if n == 1 || minT == maxT {
		return []Stop{{T: minT, Color: g.At(minT)}}
	}
	out := make([]Stop, n)
	for i := range out {
		t := minT + (maxT-minT)*float64(i)/float64(n-1)
		out[i] = Stop{T: t, Color: g.At(t)}
	}
	return out
}
