package export

import (
	"image/color"
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/compassviz/pkg/colorscale"
	"github.com/vanderheijden86/compassviz/pkg/metrics"
	"github.com/vanderheijden86/compassviz/pkg/scene"
)

// legendStrips is the number of slices used to approximate a gradient bar.
const legendStrips = 64

// RenderPNG rasterizes the scene. Text uses the fixed 7x13 bitmap face, so
// font sizes and bold are approximations; tooltips are dropped.
func RenderPNG(w io.Writer, s *scene.Scene) error {
	if s == nil {
		return ErrNoScene
	}
	defer metrics.Track(metrics.PNGRender)()

	width, height := max(px(s.Width), 1), max(px(s.Height), 1)
	dc := gg.NewContext(width, height)
	dc.SetColor(s.Background.RGBA())
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for _, r := range s.Rects {
		if r.Radius > 0 {
			dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, r.Radius)
		} else {
			dc.DrawRectangle(r.X, r.Y, r.W, r.H)
		}
		paint(dc, r.Style)
	}
	for _, c := range s.Circles {
		dc.DrawCircle(c.Center.X, c.Center.Y, c.R)
		paint(dc, c.Style)
	}
	for _, l := range s.Lines {
		dc.DrawLine(l.From.X, l.From.Y, l.To.X, l.To.Y)
		paint(dc, l.Style)
	}
	for _, p := range s.Polygons {
		if len(p.Points) == 0 {
			continue
		}
		dc.NewSubPath()
		dc.MoveTo(p.Points[0].X, p.Points[0].Y)
		for _, pt := range p.Points[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		dc.ClosePath()
		paint(dc, p.Style)
	}
	for _, m := range s.Markers {
		dc.DrawCircle(m.At.X, m.At.Y, m.R)
		paint(dc, m.Style)
	}
	for _, t := range s.Texts {
		drawText(dc, t)
	}
	for _, lg := range s.Legends {
		drawLegend(dc, lg)
	}

	return dc.EncodePNG(w)
}

func nrgba(c colorscale.RGB, opacity float64) color.NRGBA {
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(opacity*255 + 0.5)}
}

// paint fills and strokes the current path.
func paint(dc *gg.Context, st scene.Style) {
	if st.Fill != nil {
		dc.SetColor(nrgba(*st.Fill, st.FillOpacity))
		if st.Stroke != nil {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if st.Stroke == nil {
		dc.ClearPath()
		return
	}
	w := st.StrokeWidth
	if w <= 0 {
		w = 1
	}
	dc.SetColor(st.Stroke.RGBA())
	dc.SetLineWidth(w)
	if st.Dashed {
		dc.SetDash(4, 3)
	}
	dc.Stroke()
	dc.SetDash()
}

func anchorX(a scene.Anchor) float64 {
	switch a {
	case scene.AnchorMiddle:
		return 0.5
	case scene.AnchorEnd:
		return 1
	default:
		return 0
	}
}

func drawText(dc *gg.Context, t scene.Text) {
	if t.Rotate != 0 {
		dc.Push()
		dc.RotateAbout(gg.Radians(t.Rotate), t.At.X, t.At.Y)
		defer dc.Pop()
	}
	dc.SetColor(t.Color.RGBA())
	ax := anchorX(t.Anchor)
	for i, off := range lineOffsets(t) {
		dc.DrawStringAnchored(t.Lines[i], t.At.X, t.At.Y+off, ax, 0)
	}
}

func drawLegend(dc *gg.Context, lg scene.Legend) {
	if t, ok := legendTitleText(lg); ok {
		drawText(dc, t)
	}
	switch {
	case len(lg.Bands) > 0:
		for j, b := range lg.Bands {
			x, y, w, h := legendBandRect(lg, j, len(lg.Bands))
			dc.DrawRectangle(x, y, w, h)
			dc.SetColor(b.Color.RGBA())
			dc.Fill()
		}
	case len(lg.Stops) > 0:
		grad := colorscale.NewGradient(lg.Stops...)
		for j := 0; j < legendStrips; j++ {
			pos := (float64(j) + 0.5) / legendStrips
			x, y, w, h := legendBandRect(lg, j, legendStrips)
			dc.DrawRectangle(x, y, w, h)
			dc.SetColor(grad.At(pos).RGBA())
			dc.Fill()
		}
	}
	dc.DrawRectangle(lg.X, lg.Y, lg.W, lg.H)
	dc.SetColor(scene.ColorGrid.RGBA())
	dc.SetLineWidth(1)
	dc.Stroke()
	for _, tick := range lg.Ticks {
		drawText(dc, legendTickText(lg, tick))
	}
}
