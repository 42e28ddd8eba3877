package export

import (
	"fmt"
	"math"

	"github.com/vanderheijden86/compassviz/pkg/colorscale"
	"github.com/vanderheijden86/compassviz/pkg/geometry"
	"github.com/vanderheijden86/compassviz/pkg/scene"
)

// lineOffsets returns the baseline y offset of each line relative to the
// text anchor point.
func lineOffsets(t scene.Text) []float64 {
	n := len(t.Lines)
	lh := t.LineHeight
	if lh <= 0 {
		lh = t.Size * 1.2
	}
	var start float64
	switch t.Baseline {
	case scene.BaselineTop:
		start = t.Size * 0.8
	case scene.BaselineMiddle:
		start = -float64(n-1)*lh/2 + t.Size*0.35
	default:
		start = -float64(n-1) * lh
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*lh
	}
	return out
}

func px(v float64) int {
	return int(math.Round(v))
}

func css(c colorscale.RGB) string {
	return c.Hex()
}

func styleAttr(st scene.Style) string {
	s := "fill:none"
	if st.Fill != nil {
		s = "fill:" + css(*st.Fill)
		if st.FillOpacity > 0 && st.FillOpacity < 1 {
			s += fmt.Sprintf(";fill-opacity:%.2f", st.FillOpacity)
		}
	}
	if st.Stroke != nil {
		w := st.StrokeWidth
		if w <= 0 {
			w = 1
		}
		s += fmt.Sprintf(";stroke:%s;stroke-width:%g", css(*st.Stroke), w)
		if st.Dashed {
			s += ";stroke-dasharray:4,3"
		}
	}
	return s
}

func textStyle(t scene.Text) string {
	anchor := t.Anchor
	if anchor == "" {
		anchor = scene.AnchorStart
	}
	s := fmt.Sprintf("fill:%s;font-size:%gpx;font-family:sans-serif;text-anchor:%s", css(t.Color), t.Size, anchor)
	if t.Bold {
		s += ";font-weight:bold"
	}
	return s
}

// legendTickText returns the text primitive labelling one legend tick.
func legendTickText(lg scene.Legend, tick scene.LegendTick) scene.Text {
	t := scene.Text{
		Lines:      []string{tick.Label},
		Size:       10,
		LineHeight: 12,
		Color:      scene.ColorSubtle,
	}
	if lg.Orientation == scene.Vertical {
		t.At.X = lg.X + lg.W + 6
		t.At.Y = lg.Y + lg.H - tick.Pos*lg.H
		t.Anchor = scene.AnchorStart
		t.Baseline = scene.BaselineMiddle
		return t
	}
	t.At.X = lg.X + tick.Pos*lg.W
	t.At.Y = lg.Y + lg.H + 4
	t.Anchor = scene.AnchorMiddle
	t.Baseline = scene.BaselineTop
	return t
}

// legendTitleText returns the legend caption, or false when it has none.
func legendTitleText(lg scene.Legend) (scene.Text, bool) {
	if lg.Title == "" {
		return scene.Text{}, false
	}
	return scene.Text{
		At:         geometry.Point{X: lg.X, Y: lg.Y - 6},
		Lines:      []string{lg.Title},
		Anchor:     scene.AnchorStart,
		Baseline:   scene.BaselineBottom,
		Size:       11,
		LineHeight: 13,
		Bold:       true,
		Color:      scene.ColorText,
	}, true
}

// legendBandRect returns the rectangle of band i out of k.
func legendBandRect(lg scene.Legend, i, k int) (x, y, w, h float64) {
	if lg.Orientation == scene.Vertical {
		h = lg.H / float64(k)
		return lg.X, lg.Y + lg.H - float64(i+1)*h, lg.W, h
	}
	w = lg.W / float64(k)
	return lg.X + float64(i)*w, lg.Y, w, lg.H
}
