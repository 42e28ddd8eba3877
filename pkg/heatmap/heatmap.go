// Package heatmap builds the difference heatmap: cell (i, j) holds
// |value_i - value_j| coloured relative to the largest difference in the
// matrix.
package heatmap

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"gonum.org/v1/gonum/mat"

	"github.com/vanderheijden86/compassviz/pkg/colorscale"
	"github.com/vanderheijden86/compassviz/pkg/geometry"
	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/scene"
)

// Input is one named value. Values are whole percentages.
type Input struct {
	Name  string
	Value int
}

// FromEntries converts normalized entries, clamping values to [0, 100] and
// rounding them to integers.
func FromEntries(entries []model.ScoreEntry) []Input {
	out := make([]Input, len(entries))
	for i, e := range entries {
		out[i] = Input{Name: e.Name, Value: wholePercent(e.Value)}
	}
	return out
}

func wholePercent(v float64) int {
	return int(math.Round(model.ClampPercent(v)))
}

// FromScores normalizes a score map in the given order. Names missing from
// the map are kept with value 0 so the grid stays the requested size.
func FromScores(scores model.ScoreMap, order []string) []Input {
	if len(order) == 0 {
		order = scores.Names()
	}
	out := make([]Input, len(order))
	for i, name := range order {
		raw, _ := scores.Lookup(name)
		out[i] = Input{Name: name, Value: wholePercent(raw.Entry(name).Value)}
	}
	return out
}

// Options controls layout and colour.
type Options struct {
	Title     string
	Scale     colorscale.DifferenceScale
	Cell      float64
	RowHeader float64
	Margin    float64
	FontSize  float64
	WrapAt    int // row label wrap threshold in display columns
}

// DefaultOptions returns the stock layout.
func DefaultOptions() Options {
	return Options{
		Title:     "Score Difference Heatmap",
		Scale:     colorscale.DefaultDifferenceScale(),
		Cell:      30,
		RowHeader: 150,
		Margin:    20,
		FontSize:  10,
		WrapAt:    16,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Scale == (colorscale.DifferenceScale{}) {
		o.Scale = def.Scale
	}
	if o.Cell <= 0 {
		o.Cell = def.Cell
	}
	if o.RowHeader <= 0 {
		o.RowHeader = def.RowHeader
	}
	if o.Margin <= 0 {
		o.Margin = def.Margin
	}
	if o.FontSize <= 0 {
		o.FontSize = def.FontSize
	}
	if o.WrapAt <= 0 {
		o.WrapAt = def.WrapAt
	}
	return o
}

// Cell is one coloured difference.
type Cell struct {
	Row     int
	Col     int
	Diff    float64
	Color   colorscale.RGB
	Tooltip string
}

// Heatmap is a built difference heatmap.
type Heatmap struct {
	Options Options
	Inputs  []Input
	Cells   [][]Cell
	// Max is the largest difference; 0 when all values are equal.
	Max float64

	diffs *mat.SymDense
}

// Build computes the full difference matrix and colours it.
func Build(inputs []Input, opts Options) Heatmap {
	opts = opts.withDefaults()
	n := len(inputs)
	h := Heatmap{Options: opts, Inputs: inputs, Cells: make([][]Cell, n)}
	if n == 0 {
		return h
	}

	h.diffs = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			d := math.Abs(float64(inputs[i].Value - inputs[j].Value))
			h.diffs.SetSym(i, j, d)
			h.Max = math.Max(h.Max, d)
		}
	}

	for i := 0; i < n; i++ {
		h.Cells[i] = make([]Cell, n)
		for j := 0; j < n; j++ {
			d := h.diffs.At(i, j)
			h.Cells[i][j] = Cell{
				Row:   i,
				Col:   j,
				Diff:  d,
				Color: opts.Scale.At(d, h.Max),
				Tooltip: fmt.Sprintf("%s vs %s: |%d - %d| = %.0f",
					inputs[i].Name, inputs[j].Name, inputs[i].Value, inputs[j].Value, d),
			}
		}
	}
	return h
}

// Size returns N.
func (h Heatmap) Size() int {
	return len(h.Inputs)
}

// At returns the difference between inputs i and j.
func (h Heatmap) At(i, j int) float64 {
	if h.diffs == nil {
		return 0
	}
	return h.diffs.At(i, j)
}

// Matrix exposes the differences as a read-only gonum matrix; nil when empty.
func (h Heatmap) Matrix() mat.Symmetric {
	if h.diffs == nil {
		return nil
	}
	return h.diffs
}

// MaxPair returns the indices of the first pair holding the largest
// difference. ok is false when the matrix is empty or all values are equal.
func (h Heatmap) MaxPair() (i, j int, ok bool) {
	if h.Max <= 0 {
		return 0, 0, false
	}
	for i := range h.Cells {
		for j := i + 1; j < len(h.Cells); j++ {
			if h.Cells[i][j].Diff == h.Max {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// WrapWords greedily packs words into lines no wider than width display
// columns. A single word wider than width gets a line of its own.
func WrapWords(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if runewidth.StringWidth(cur)+1+runewidth.StringWidth(w) <= width {
			cur += " " + w
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

// Scene converts the heatmap into drawable primitives. Cells carry no text;
// colour alone encodes magnitude.
func (h Heatmap) Scene() scene.Scene {
	o := h.Options
	n := len(h.Inputs)
	titleBand := 0.0
	if o.Title != "" {
		titleBand = o.FontSize*2 + 16
	}
	header := o.FontSize * 2.5
	left := o.Margin + o.RowHeader
	top := o.Margin + titleBand + header
	grid := float64(n) * o.Cell
	legendX := left + grid + 28
	legendH := math.Max(grid, 120)

	s := scene.Scene{
		Title:      o.Title,
		Width:      legendX + 16 + 60 + o.Margin,
		Height:     top + legendH + o.Margin + 20,
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

	colChars := int(o.Cell / (o.FontSize * 0.6))
	for i, in := range h.Inputs {
		s.Texts = append(s.Texts, scene.Text{
			At:         geometry.Point{X: left + (float64(i)+0.5)*o.Cell, Y: top - 6},
			Lines:      []string{runewidth.Truncate(in.Name, max(colChars, 1), "…")},
			Anchor:     scene.AnchorMiddle,
			Baseline:   scene.BaselineBottom,
			Size:       o.FontSize,
			LineHeight: o.FontSize * 1.2,
			Color:      scene.ColorText,
		})
		s.Texts = append(s.Texts, scene.Text{
			At:         geometry.Point{X: left - 6, Y: top + (float64(i)+0.5)*o.Cell},
			Lines:      WrapWords(in.Name, o.WrapAt),
			Anchor:     scene.AnchorEnd,
			Baseline:   scene.BaselineMiddle,
			Size:       o.FontSize,
			LineHeight: o.FontSize * 1.15,
			Color:      scene.ColorText,
		})
	}

	for i := range h.Cells {
		for j, c := range h.Cells[i] {
			s.Rects = append(s.Rects, scene.Rect{
				X:     left + float64(j)*o.Cell,
				Y:     top + float64(i)*o.Cell,
				W:     o.Cell,
				H:     o.Cell,
				Style: scene.Filled(c.Color),
				Title: c.Tooltip,
			})
		}
	}

	s.Legends = append(s.Legends, h.legend(legendX, top, legendH))
	return s
}

func (h Heatmap) legend(x, y, height float64) scene.Legend {
	scale := h.Options.Scale
	lg := scene.Legend{
		X:           x,
		Y:           y,
		W:           16,
		H:           height,
		Orientation: scene.Vertical,
		Title:       "Difference",
	}
	const samples = 11
	for k := 0; k < samples; k++ {
		pos := float64(k) / (samples - 1)
		lg.Stops = append(lg.Stops, colorscale.Stop{T: pos, Color: scale.At(pos*h.Max, h.Max)})
	}
	lg.Ticks = []scene.LegendTick{
		{Pos: 0, Label: "0"},
		{Pos: 0.5, Label: fmt.Sprintf("%.0f", h.Max/2)},
		{Pos: 1, Label: fmt.Sprintf("%.0f", h.Max)},
	}
	return lg
}
