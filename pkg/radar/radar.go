// Package radar lays out a spider chart from a canonical axis list and a
// possibly sparse, differently named set of scores.
//
// The polygon always has one vertex per configured axis. Axes without a
// matching score sit at the centre so the shape never collapses or rotates
// when data is incomplete.
package radar

import (
	"fmt"
	"math"

	"github.com/vanderheijden86/compassviz/pkg/colorscale"
	"github.com/vanderheijden86/compassviz/pkg/geometry"
	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/scene"
)

// DefaultGridLevels are the reference ring percentages.
var DefaultGridLevels = []float64{20, 40, 60, 80, 100}

// Options controls chart size and presentation.
type Options struct {
	Title       string
	Width       float64
	Height      float64
	Radius      float64 // <= 0 derives one from the canvas size
	LabelMargin float64
	FontSize    float64
	WrapAt      int
	GridLevels  []float64
	Fill        colorscale.RGB
	Stroke      colorscale.RGB

	Matcher     Matcher          // nil uses DefaultMatcher
	AnchorRules []AnchorRule     // nil uses QuadrantRules
	SingleLine  []SingleLineRule // nil uses DefaultSingleLineRules
}

// ClusterOptions is the preset for the six-axis cluster chart.
func ClusterOptions() Options {
	return Options{
		Title:       "Cluster Profile",
		Width:       560,
		Height:      520,
		Radius:      170,
		LabelMargin: 22,
		FontSize:    13,
		WrapAt:      DefaultWrapAt,
		Fill:        colorscale.RGB{R: 99, G: 102, B: 241},
		Stroke:      colorscale.RGB{R: 67, G: 56, B: 202},
	}
}

// ConstructOptions is the preset for the eighteen-axis construct chart.
func ConstructOptions() Options {
	return Options{
		Title:       "Construct Profile",
		Width:       760,
		Height:      720,
		Radius:      240,
		LabelMargin: 16,
		FontSize:    11,
		WrapAt:      DefaultWrapAt,
		Fill:        colorscale.RGB{R: 16, G: 185, B: 129},
		Stroke:      colorscale.RGB{R: 4, G: 120, B: 87},
	}
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 560
	}
	if o.Height <= 0 {
		o.Height = o.Width
	}
	if o.LabelMargin <= 0 {
		o.LabelMargin = 20
	}
	if o.FontSize <= 0 {
		o.FontSize = 12
	}
	if o.WrapAt <= 0 {
		o.WrapAt = DefaultWrapAt
	}
	if o.Radius <= 0 {
		// leave room for two label lines on every side
		o.Radius = math.Max(1, math.Min(o.Width, o.Height)/2-o.LabelMargin-3*o.FontSize-40)
	}
	if o.GridLevels == nil {
		o.GridLevels = DefaultGridLevels
	}
	if o.Matcher == nil {
		o.Matcher = DefaultMatcher
	}
	if o.AnchorRules == nil {
		o.AnchorRules = QuadrantRules
	}
	if o.SingleLine == nil {
		o.SingleLine = DefaultSingleLineRules
	}
	if o.Fill == (colorscale.RGB{}) && o.Stroke == (colorscale.RGB{}) {
		def := ClusterOptions()
		o.Fill, o.Stroke = def.Fill, def.Stroke
	}
	return o
}

// Label is a positioned axis label.
type Label struct {
	At       geometry.Point
	Lines    []string
	Anchor   scene.Anchor
	Baseline scene.Baseline
}

// AxisPlot is one axis of the laid-out chart.
type AxisPlot struct {
	Axis    model.AxisConfig
	Score   model.ScoreEntry
	Matched bool
	// Value is the clamped percentage actually plotted.
	Value      float64
	Angle      float64 // screen degrees
	ClockAngle float64 // degrees clockwise from 12 o'clock
	Point      geometry.Point
	End        geometry.Point
	Label      Label
}

// Ring is a reference circle.
type Ring struct {
	Percent float64
	R       float64
}

// Chart is a fully laid-out radar chart.
type Chart struct {
	Options Options
	Center  geometry.Point
	Radius  float64
	Axes    []AxisPlot
	Rings   []Ring
}

// Build lays out the chart. It never fails: missing scores plot at zero and
// out-of-range values are clamped.
func Build(axes []model.AxisConfig, scores []model.ScoreEntry, opts Options) Chart {
	opts = opts.withDefaults()
	n := len(axes)
	c := Chart{
		Options: opts,
		Center:  geometry.Point{X: opts.Width / 2, Y: opts.Height / 2},
		Radius:  opts.Radius,
		Axes:    make([]AxisPlot, n),
	}
	for _, pct := range opts.GridLevels {
		c.Rings = append(c.Rings, Ring{Percent: pct, R: model.ClampPercent(pct) / 100 * c.Radius})
	}

	labelRadius := c.Radius + opts.LabelMargin
	for i, axis := range axes {
		score, ok := opts.Matcher.Match(axis, scores)
		if !ok {
			score = model.ScoreEntry{AxisID: axis.ID, Name: axis.Label()}
		}
		value := model.ClampPercent(score.Value)
		angle := geometry.AxisAngle(i, n)
		clock := geometry.ClockAngle(i, n)
		anchor, baseline := AnchorFor(opts.AnchorRules, clock)

		c.Axes[i] = AxisPlot{
			Axis:       axis,
			Score:      score,
			Matched:    ok,
			Value:      value,
			Angle:      angle,
			ClockAngle: clock,
			Point:      geometry.PointAt(c.Center, angle, value/100*c.Radius),
			End:        geometry.PointAt(c.Center, angle, c.Radius),
			Label: Label{
				At:       geometry.PointAt(c.Center, angle, labelRadius),
				Lines:    WrapLabel(axis.Label(), opts.WrapAt, opts.SingleLine),
				Anchor:   anchor,
				Baseline: baseline,
			},
		}
	}
	return c
}

// Vertices returns the data polygon, one point per axis.
func (c Chart) Vertices() []geometry.Point {
	pts := make([]geometry.Point, len(c.Axes))
	for i, a := range c.Axes {
		pts[i] = a.Point
	}
	return pts
}

// MatchedCount returns how many axes found a score.
func (c Chart) MatchedCount() int {
	n := 0
	for _, a := range c.Axes {
		if a.Matched {
			n++
		}
	}
	return n
}

// Scene converts the chart into drawable primitives.
func (c Chart) Scene() scene.Scene {
	o := c.Options
	s := scene.Scene{
		Title:      o.Title,
		Width:      o.Width,
		Height:     o.Height,
		Background: scene.ColorBackdrop,
	}

	for i, ring := range c.Rings {
		st := scene.Stroked(scene.ColorGrid, 1)
		st.Dashed = i < len(c.Rings)-1
		s.Circles = append(s.Circles, scene.Circle{Center: c.Center, R: ring.R, Style: st})
		s.Texts = append(s.Texts, scene.Text{
			At:         geometry.Point{X: c.Center.X + 3, Y: c.Center.Y - ring.R},
			Lines:      []string{fmt.Sprintf("%.0f", ring.Percent)},
			Anchor:     scene.AnchorStart,
			Baseline:   scene.BaselineBottom,
			Size:       o.FontSize - 3,
			LineHeight: o.FontSize - 2,
			Color:      scene.ColorSubtle,
		})
	}

	for _, a := range c.Axes {
		s.Lines = append(s.Lines, scene.Line{From: c.Center, To: a.End, Style: scene.Stroked(scene.ColorGrid, 1)})
	}

	if verts := c.Vertices(); len(verts) > 0 {
		st := scene.Style{Fill: &o.Fill, FillOpacity: 0.35, Stroke: &o.Stroke, StrokeWidth: 2}
		s.Polygons = append(s.Polygons, scene.Polygon{Points: verts, Style: st})
	}

	for _, a := range c.Axes {
		s.Markers = append(s.Markers, scene.Marker{
			At:    a.Point,
			R:     3.5,
			Style: scene.Filled(o.Stroke),
			Title: fmt.Sprintf("%s: %.0f%%", a.Axis.Label(), a.Value),
		})
		s.Texts = append(s.Texts, scene.Text{
			At:         a.Label.At,
			Lines:      a.Label.Lines,
			Anchor:     a.Label.Anchor,
			Baseline:   a.Label.Baseline,
			Size:       o.FontSize,
			LineHeight: o.FontSize * 1.25,
			Color:      scene.ColorText,
		})
	}

	if o.Title != "" {
		s.Texts = append(s.Texts, scene.Text{
			At:         geometry.Point{X: o.Width / 2, Y: 24},
			Lines:      []string{o.Title},
			Anchor:     scene.AnchorMiddle,
			Baseline:   scene.BaselineBottom,
			Size:       o.FontSize + 3,
			LineHeight: o.FontSize + 5,
			Bold:       true,
			Color:      scene.ColorText,
		})
	}
	return s
}
