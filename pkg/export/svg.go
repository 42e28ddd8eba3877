package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/vanderheijden86/compassviz/pkg/metrics"
	"github.com/vanderheijden86/compassviz/pkg/scene"
)

// RenderSVG writes the scene as a standalone SVG document. Rect and marker
// titles become hover tooltips.
func RenderSVG(w io.Writer, s *scene.Scene) error {
	if s == nil {
		return ErrNoScene
	}
	defer metrics.Track(metrics.SVGRender)()

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	width, height := px(s.Width), px(s.Height)
	canvas.Start(width, height)
	if s.Title != "" {
		canvas.Title(s.Title)
	}

	writeGradientDefs(canvas, s.Legends)
	canvas.Rect(0, 0, width, height, "fill:"+css(s.Background))

	for _, r := range s.Rects {
		withTooltip(canvas, r.Title, func() {
			if r.Radius > 0 {
				rad := px(r.Radius)
				canvas.Roundrect(px(r.X), px(r.Y), px(r.W), px(r.H), rad, rad, styleAttr(r.Style))
				return
			}
			canvas.Rect(px(r.X), px(r.Y), px(r.W), px(r.H), styleAttr(r.Style))
		})
	}
	for _, c := range s.Circles {
		canvas.Circle(px(c.Center.X), px(c.Center.Y), px(c.R), styleAttr(c.Style))
	}
	for _, l := range s.Lines {
		canvas.Line(px(l.From.X), px(l.From.Y), px(l.To.X), px(l.To.Y), styleAttr(l.Style))
	}
	for _, p := range s.Polygons {
		xs := make([]int, len(p.Points))
		ys := make([]int, len(p.Points))
		for i, pt := range p.Points {
			xs[i], ys[i] = px(pt.X), px(pt.Y)
		}
		canvas.Polygon(xs, ys, styleAttr(p.Style))
	}
	for _, m := range s.Markers {
		withTooltip(canvas, m.Title, func() {
			canvas.Circle(px(m.At.X), px(m.At.Y), px(m.R), styleAttr(m.Style))
		})
	}
	for _, t := range s.Texts {
		writeText(canvas, t)
	}
	for i, lg := range s.Legends {
		writeLegend(canvas, i, lg)
	}

	canvas.End()
	return ew.err
}

func withTooltip(canvas *svg.SVG, title string, draw func()) {
	if title == "" {
		draw()
		return
	}
	canvas.Group()
	canvas.Title(title)
	draw()
	canvas.Gend()
}

func writeText(canvas *svg.SVG, t scene.Text) {
	x, y := px(t.At.X), px(t.At.Y)
	if t.Rotate != 0 {
		canvas.Gtransform(fmt.Sprintf("rotate(%g %d %d)", t.Rotate, x, y))
	}
	style := textStyle(t)
	for i, off := range lineOffsets(t) {
		canvas.Text(x, px(t.At.Y+off), t.Lines[i], style)
	}
	if t.Rotate != 0 {
		canvas.Gend()
	}
}

func gradientID(i int) string {
	return fmt.Sprintf("legend-gradient-%d", i)
}

func writeGradientDefs(canvas *svg.SVG, legends []scene.Legend) {
	opened := false
	for i, lg := range legends {
		if len(lg.Bands) > 0 || len(lg.Stops) == 0 {
			continue
		}
		if !opened {
			canvas.Def()
			opened = true
		}
		stops := make([]svg.Offcolor, len(lg.Stops))
		for j, st := range lg.Stops {
			stops[j] = svg.Offcolor{Offset: uint8(px(st.T * 100)), Color: css(st.Color), Opacity: 1}
		}
		if lg.Orientation == scene.Vertical {
			// position 0 sits at the bottom of the bar
			canvas.LinearGradient(gradientID(i), 0, 100, 0, 0, stops)
		} else {
			canvas.LinearGradient(gradientID(i), 0, 0, 100, 0, stops)
		}
	}
	if opened {
		canvas.DefEnd()
	}
}

func writeLegend(canvas *svg.SVG, i int, lg scene.Legend) {
	if t, ok := legendTitleText(lg); ok {
		writeText(canvas, t)
	}
	switch {
	case len(lg.Bands) > 0:
		for j, b := range lg.Bands {
			x, y, w, h := legendBandRect(lg, j, len(lg.Bands))
			canvas.Rect(px(x), px(y), px(w), px(h), "fill:"+css(b.Color))
		}
	case len(lg.Stops) > 0:
		canvas.Rect(px(lg.X), px(lg.Y), px(lg.W), px(lg.H), fmt.Sprintf("fill:url(#%s)", gradientID(i)))
	}
	canvas.Rect(px(lg.X), px(lg.Y), px(lg.W), px(lg.H),
		fmt.Sprintf("fill:none;stroke:%s;stroke-width:1", css(scene.ColorGrid)))
	for _, tick := range lg.Ticks {
		writeText(canvas, legendTickText(lg, tick))
	}
}
