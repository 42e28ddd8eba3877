// Package matrix builds the synergy-tension matrix: an N×N grid where each
// cell classifies how two axes relate.
//
// The grid is always exactly N×N for the supplied label list. Axes missing
// from the score map still get a full row and column, coloured neutral.
package matrix

import (
	"fmt"
	"math"

	"github.com/vanderheijden86/compassviz/pkg/colorscale"
	"github.com/vanderheijden86/compassviz/pkg/geometry"
	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/scene"
)

// Mode selects how off-diagonal cells are coloured.
type Mode int

const (
	// ModeDelta classifies pairs as Conflict, Growth or Flow from the
	// difference of their raw averages.
	ModeDelta Mode = iota
	// ModeMagnitude colours pairs by the mean of their percentages in six
	// bands.
	ModeMagnitude
)

func (m Mode) String() string {
	if m == ModeMagnitude {
		return "magnitude"
	}
	return "delta"
}

// ParseMode maps "delta" / "magnitude" onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "delta":
		return ModeDelta, nil
	case "magnitude":
		return ModeMagnitude, nil
	default:
		return ModeDelta, fmt.Errorf("unknown matrix mode %q (want delta or magnitude)", s)
	}
}

// Options controls classification and page layout.
type Options struct {
	Title      string
	Mode       Mode
	Thresholds colorscale.Thresholds

	// Width is the fixed page width; cells shrink to fit it.
	Width       float64
	RowHeader   float64
	MaxCell     float64
	Margin      float64
	FontSize    float64
	RotateAbove int // rotate column headers when N exceeds this
}

// DefaultOptions fits an 18-axis matrix onto one printable page.
func DefaultOptions() Options {
	return Options{
		Title:       "Synergy-Tension Matrix",
		Mode:        ModeDelta,
		Thresholds:  colorscale.DefaultThresholds(),
		Width:       760,
		RowHeader:   170,
		MaxCell:     44,
		Margin:      20,
		FontSize:    10,
		RotateAbove: 8,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Thresholds == (colorscale.Thresholds{}) {
		o.Thresholds = def.Thresholds
	}
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.RowHeader <= 0 {
		o.RowHeader = def.RowHeader
	}
	if o.MaxCell <= 0 {
		o.MaxCell = def.MaxCell
	}
	if o.Margin <= 0 {
		o.Margin = def.Margin
	}
	if o.FontSize <= 0 {
		o.FontSize = def.FontSize
	}
	if o.RotateAbove <= 0 {
		o.RotateAbove = def.RotateAbove
	}
	return o
}

// Axis is one row/column of the matrix.
type Axis struct {
	Label string
	Entry model.ScoreEntry
	Known bool
}

// Cell is one classified pair.
type Cell struct {
	Row      int
	Col      int
	Relation colorscale.Relation
	// Magnitude is the mean percentage in ModeMagnitude, -1 when unknown.
	Magnitude float64
	Band      int // index into colorscale.MagnitudeBands, -1 when unused
	Color     colorscale.RGB
	Tooltip   string
}

// Layout is the computed page geometry.
type Layout struct {
	Cell         float64
	Left         float64 // x of the first column
	Top          float64 // y of the first row
	HeaderHeight float64
	Rotated      bool
	Width        float64
	Height       float64
}

// Matrix is a built synergy-tension matrix.
type Matrix struct {
	Options Options
	Axes    []Axis
	Cells   [][]Cell
	Layout  Layout
	Legend  scene.Legend
}

// Build classifies every pair of labels. It never fails.
func Build(labels []string, scores model.ScoreMap, opts Options) Matrix {
	opts = opts.withDefaults()
	n := len(labels)
	m := Matrix{Options: opts, Axes: make([]Axis, n), Cells: make([][]Cell, n)}

	for i, label := range labels {
		raw, ok := scores.Lookup(label)
		entry := model.ScoreEntry{Name: label}
		if ok {
			entry = raw.Entry(label)
		}
		m.Axes[i] = Axis{Label: label, Entry: entry, Known: ok}
	}

	for i := range m.Axes {
		m.Cells[i] = make([]Cell, n)
		for j := range m.Axes {
			m.Cells[i][j] = m.classify(i, j)
		}
	}

	m.Layout = computeLayout(n, opts)
	m.Legend = m.buildLegend()
	return m
}

func (m Matrix) classify(i, j int) Cell {
	a, b := m.Axes[i], m.Axes[j]
	c := Cell{Row: i, Col: j, Magnitude: -1, Band: -1}

	if i == j {
		c.Relation = colorscale.Diagonal()
		c.Color = c.Relation.Color()
		c.Tooltip = fmt.Sprintf("%s: self (Δ %s)", a.Label, c.Relation.DeltaText())
		return c
	}

	var avgA, avgB *float64
	if a.Known {
		avgA = a.Entry.Average
	}
	if b.Known {
		avgB = b.Entry.Average
	}
	c.Relation = m.Options.Thresholds.Categorize(avgA, avgB)

	switch m.Options.Mode {
	case ModeMagnitude:
		if !a.Known || !b.Known {
			c.Color = colorscale.Neutral
			c.Tooltip = fmt.Sprintf("%s vs %s: no data", a.Label, b.Label)
			return c
		}
		c.Magnitude = (model.ClampPercent(a.Entry.Value) + model.ClampPercent(b.Entry.Value)) / 2
		c.Band = colorscale.MagnitudeBandFor(c.Magnitude)
		band := colorscale.MagnitudeBands[c.Band]
		c.Color = band.Color
		c.Tooltip = fmt.Sprintf("%s vs %s: %s (mean %.0f%%)", a.Label, b.Label, band.Label, c.Magnitude)
	default:
		c.Color = c.Relation.Color()
		if c.Relation.Category == colorscale.CategoryNeutral {
			c.Tooltip = fmt.Sprintf("%s vs %s: no data", a.Label, b.Label)
		} else {
			c.Tooltip = fmt.Sprintf("%s vs %s: %s (Δ %s)", a.Label, b.Label, c.Relation.Category, c.Relation.DeltaText())
		}
	}
	return c
}

// Size returns N.
func (m Matrix) Size() int {
	return len(m.Axes)
}

// Summary counts each category over the upper triangle (each unordered pair
// once, diagonal excluded).
func (m Matrix) Summary() map[colorscale.Category]int {
	out := make(map[colorscale.Category]int)
	for i := range m.Cells {
		for j := i + 1; j < len(m.Cells[i]); j++ {
			out[m.Cells[i][j].Relation.Category]++
		}
	}
	return out
}

func computeLayout(n int, o Options) Layout {
	l := Layout{Width: o.Width}
	avail := o.Width - 2*o.Margin - o.RowHeader
	l.Cell = o.MaxCell
	if n > 0 {
		l.Cell = math.Max(1, math.Min(o.MaxCell, avail/float64(n)))
	}
	l.Rotated = n > o.RotateAbove
	if l.Rotated {
		l.HeaderHeight = o.RowHeader * 0.8
	} else {
		l.HeaderHeight = o.FontSize * 3
	}
	titleBand := 0.0
	if o.Title != "" {
		titleBand = o.FontSize*2 + 16
	}
	l.Left = o.Margin + o.RowHeader
	l.Top = o.Margin + titleBand + l.HeaderHeight
	legendBand := 70.0
	l.Height = l.Top + float64(n)*l.Cell + legendBand
	return l
}

func (m Matrix) buildLegend() scene.Legend {
	l := m.Layout
	lg := scene.Legend{
		X:           l.Left,
		Y:           l.Top + float64(len(m.Axes))*l.Cell + 28,
		W:           math.Max(240, float64(len(m.Axes))*l.Cell),
		H:           14,
		Orientation: scene.Horizontal,
	}
	var bands []scene.LegendBand
	if m.Options.Mode == ModeMagnitude {
		lg.Title = "Mean score"
		for _, b := range colorscale.MagnitudeBands {
			bands = append(bands, scene.LegendBand{Label: b.Label, Color: b.Color})
		}
	} else {
		lg.Title = "Relationship"
		for _, c := range []colorscale.Category{colorscale.CategoryConflict, colorscale.CategoryGrowth, colorscale.CategoryFlow} {
			bands = append(bands, scene.LegendBand{Label: c.String(), Color: c.Color()})
		}
	}
	lg.Bands = bands
	k := float64(len(bands))
	for i, b := range bands {
		lg.Stops = append(lg.Stops, colorscale.Stop{T: (float64(i) + 0.5) / k, Color: b.Color})
		lg.Ticks = append(lg.Ticks, scene.LegendTick{Pos: (float64(i) + 0.5) / k, Label: b.Label})
	}
	return lg
}

// Scene converts the matrix into drawable primitives.
func (m Matrix) Scene() scene.Scene {
	o, l := m.Options, m.Layout
	s := scene.Scene{
		Title:      o.Title,
		Width:      l.Width,
		Height:     l.Height,
		Background: scene.ColorBackdrop,
	}
	if o.Title != "" {
		s.Texts = append(s.Texts, scene.Text{
			At:         geometry.Point{X: o.Margin, Y: o.Margin + o.FontSize*1.6},
			Lines:      []string{o.Title},
			Anchor:     scene.AnchorStart,
			Baseline:   scene.BaselineBottom,
			Size:       o.FontSize + 5,
			LineHeight: o.FontSize + 7,
			Bold:       true,
			Color:      scene.ColorText,
		})
	}

	for i, a := range m.Axes {
		// column header
		cx := l.Left + (float64(i)+0.5)*l.Cell
		col := scene.Text{
			At:         geometry.Point{X: cx, Y: l.Top - 6},
			Lines:      []string{a.Label},
			Anchor:     scene.AnchorMiddle,
			Baseline:   scene.BaselineBottom,
			Size:       o.FontSize,
			LineHeight: o.FontSize * 1.2,
			Color:      scene.ColorText,
		}
		if l.Rotated {
			col.Anchor = scene.AnchorStart
			col.Baseline = scene.BaselineMiddle
			col.Rotate = -90
		}
		s.Texts = append(s.Texts, col)

		// row header
		s.Texts = append(s.Texts, scene.Text{
			At:         geometry.Point{X: l.Left - 6, Y: l.Top + (float64(i)+0.5)*l.Cell},
			Lines:      []string{a.Label},
			Anchor:     scene.AnchorEnd,
			Baseline:   scene.BaselineMiddle,
			Size:       o.FontSize,
			LineHeight: o.FontSize * 1.2,
			Color:      scene.ColorText,
		})
	}

	for i := range m.Cells {
		for j, c := range m.Cells[i] {
			st := scene.Filled(c.Color)
			white := colorscale.White
			st.Stroke = &white
			st.StrokeWidth = 1
			s.Rects = append(s.Rects, scene.Rect{
				X:     l.Left + float64(j)*l.Cell,
				Y:     l.Top + float64(i)*l.Cell,
				W:     l.Cell,
				H:     l.Cell,
				Style: st,
				Title: c.Tooltip,
			})
		}
	}

	s.Legends = append(s.Legends, m.Legend)
	return s
}
