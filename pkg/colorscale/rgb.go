// Package colorscale turns scalars and score pairs into colours.
//
// Three independent strategies live here: a linear multi-stop gradient, the
// delta-based Conflict/Growth/Flow categorization used by the synergy-tension
// matrix, and the three-stop difference scale used by the heatmap. All of
// them are pure functions.
package colorscale

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 8-bit colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

// CSS returns the colour as rgb(r,g,b).
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// RGBA converts to the standard library colour type.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Luminance returns the relative luminance in [0, 1]; used to pick a
// readable text colour on top of a fill.
func (c RGB) Luminance() float64 {
	_, _, l := c.colorful().Hcl()
	return l
}

// TextColor returns black or white, whichever reads better on c.
func (c RGB) TextColor() RGB {
	if c.Luminance() > 0.6 {
		return RGB{0x11, 0x11, 0x11}
	}
	return RGB{0xff, 0xff, 0xff}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseHex parses #rgb or #rrggbb.
func ParseHex(s string) (RGB, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// MustParseHex is ParseHex for package-level constants.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Named colours shared by the renderers.
var (
	Neutral = RGB{156, 163, 175} // gray-400
	Red     = RGB{239, 68, 68}
	Amber   = RGB{245, 158, 11}
	Green   = RGB{34, 197, 94}
	White   = RGB{255, 255, 255}
	Black   = RGB{17, 17, 17}
)
