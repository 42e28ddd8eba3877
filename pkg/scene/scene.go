// Package scene is the backend-neutral description of a rendered chart.
//
// Builders in radar, matrix and heatmap produce a Scene; the export package
// draws it as SVG, PNG or JSON. A Scene is plain data and never references
// the builder that produced it.
package scene

import (
	"github.com/vanderheijden86/compassviz/pkg/colorscale"
	"github.com/vanderheijden86/compassviz/pkg/geometry"
)

// Anchor is the horizontal text anchor.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Baseline is the vertical text alignment relative to the anchor point.
type Baseline string

const (
	// BaselineBottom puts the last line's baseline on the anchor point
	// (text grows upward).
	BaselineBottom Baseline = "bottom"
	// BaselineMiddle centres the block of lines on the anchor point.
	BaselineMiddle Baseline = "middle"
	// BaselineTop hangs the first line below the anchor point.
	BaselineTop Baseline = "top"
)

// Style is the paint of a shape. A nil Fill means no fill.
type Style struct {
	Fill        *colorscale.RGB `json:"fill,omitempty"`
	FillOpacity float64         `json:"fill_opacity,omitempty"`
	Stroke      *colorscale.RGB `json:"stroke,omitempty"`
	StrokeWidth float64         `json:"stroke_width,omitempty"`
	Dashed      bool            `json:"dashed,omitempty"`
}

// Filled returns a fill-only style.
func Filled(c colorscale.RGB) Style {
	return Style{Fill: &c, FillOpacity: 1}
}

// Stroked returns a stroke-only style.
func Stroked(c colorscale.RGB, width float64) Style {
	return Style{Stroke: &c, StrokeWidth: width}
}

// Circle is a circle outline or disc.
type Circle struct {
	Center geometry.Point `json:"center"`
	R      float64        `json:"r"`
	Style  Style          `json:"style"`
}

// Line is a straight segment.
type Line struct {
	From  geometry.Point `json:"from"`
	To    geometry.Point `json:"to"`
	Style Style          `json:"style"`
}

// Polygon is a closed path through Points.
type Polygon struct {
	Points []geometry.Point `json:"points"`
	Style  Style            `json:"style"`
}

// Marker is a small dot drawn on a data point.
type Marker struct {
	At    geometry.Point `json:"at"`
	R     float64        `json:"r"`
	Style Style          `json:"style"`
	Title string         `json:"title,omitempty"`
}

// Rect is an axis-aligned rectangle, used for matrix and heatmap cells.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Style  Style   `json:"style"`
	Title  string  `json:"title,omitempty"` // tooltip
	Radius float64 `json:"radius,omitempty"`
}

// Text is a positioned, possibly multi-line label.
type Text struct {
	At         geometry.Point `json:"at"`
	Lines      []string       `json:"lines"`
	Anchor     Anchor         `json:"anchor"`
	Baseline   Baseline       `json:"baseline"`
	Rotate     float64        `json:"rotate,omitempty"` // degrees, around At
	Size       float64        `json:"size"`
	LineHeight float64        `json:"line_height"`
	Bold       bool           `json:"bold,omitempty"`
	Color      colorscale.RGB `json:"color"`
}

// Orientation of a legend gradient bar.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// LegendBand is a labelled slice of a legend bar.
type LegendBand struct {
	Label string         `json:"label"`
	Color colorscale.RGB `json:"color"`
}

// Legend describes a gradient or banded legend bar.
type Legend struct {
	X           float64           `json:"x"`
	Y           float64           `json:"y"`
	W           float64           `json:"w"`
	H           float64           `json:"h"`
	Orientation Orientation       `json:"orientation"`
	Title       string            `json:"title,omitempty"`
	Stops       []colorscale.Stop `json:"stops,omitempty"` // continuous gradient over [0,1]
	Bands       []LegendBand      `json:"bands,omitempty"` // discrete bands, in order
	Ticks       []LegendTick      `json:"ticks,omitempty"`
}

// LegendTick labels a position along the legend bar, Pos in [0,1].
type LegendTick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Scene is everything a backend needs to draw one chart. Layers are drawn in
// field order.
type Scene struct {
	Title      string         `json:"title"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Background colorscale.RGB `json:"background"`
	Rects      []Rect         `json:"rects,omitempty"`
	Circles    []Circle       `json:"circles,omitempty"`
	Lines      []Line         `json:"lines,omitempty"`
	Polygons   []Polygon      `json:"polygons,omitempty"`
	Markers    []Marker       `json:"markers,omitempty"`
	Texts      []Text         `json:"texts,omitempty"`
	Legends    []Legend       `json:"legends,omitempty"`
}

// Empty reports whether the scene has nothing to draw besides a background.
func (s *Scene) Empty() bool {
	return len(s.Rects) == 0 && len(s.Circles) == 0 && len(s.Lines) == 0 &&
		len(s.Polygons) == 0 && len(s.Markers) == 0 && len(s.Texts) == 0 && len(s.Legends) == 0
}

// Color helpers shared by builders.
var (
	ColorBackdrop = colorscale.RGB{R: 0xff, G: 0xff, B: 0xff}
	ColorGrid     = colorscale.RGB{R: 0xd1, G: 0xd5, B: 0xdb}
	ColorText     = colorscale.RGB{R: 0x11, G: 0x11, B: 0x11}
	ColorSubtle   = colorscale.RGB{R: 0x66, G: 0x66, B: 0x66}
	ColorStroke   = colorscale.RGB{R: 0x22, G: 0x22, B: 0x22}
)
