package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/compassviz/pkg/colorscale"
	"github.com/vanderheijden86/compassviz/pkg/heatmap"
	"github.com/vanderheijden86/compassviz/pkg/matrix"
	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/radar"
	"github.com/vanderheijden86/compassviz/pkg/scene"
)

// labelWidth caps row labels in terminal charts.
const labelWidth = 28

// RadarBars draws a radar chart as one horizontal bar per axis, in axis
// order. A terminal cannot place labels around a circle, so the polygon is
// unrolled.
func RadarBars(c radar.Chart, t Theme, width int) string {
	if len(c.Axes) == 0 {
		return t.MutedText.Render("No axes to plot.")
	}
	lw := 0
	for _, a := range c.Axes {
		lw = max(lw, runewidth.StringWidth(a.Axis.Label()))
	}
	lw = min(lw, labelWidth)
	barWidth := max(width-lw-16, 10)

	var sb strings.Builder
	for _, a := range c.Axes {
		label := padRight(runewidth.Truncate(a.Axis.Label(), lw, "…"), lw)
		filled := int(math.Round(a.Value / 100 * float64(barWidth)))
		band := a.Score.Band()
		bar := t.Renderer.NewStyle().Foreground(t.BandColor(band)).Render(strings.Repeat("█", filled)) +
			t.MutedText.Render(strings.Repeat("░", barWidth-filled))

		value := fmt.Sprintf("%3.0f%%", a.Value)
		if !a.Matched {
			value = t.MutedText.Render("   –")
		}
		fmt.Fprintf(&sb, "%s %s %s %s\n", label, bar, value,
			t.Renderer.NewStyle().Foreground(t.BandColor(band)).Render(band.Title()))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// MatrixGrid draws the synergy matrix as coloured two-column cells with
// numbered rows and columns.
func MatrixGrid(m matrix.Matrix, t Theme) string {
	n := m.Size()
	if n == 0 {
		return t.MutedText.Render("No axes to compare.")
	}
	labels := make([]string, n)
	for i, a := range m.Axes {
		labels[i] = a.Label
	}
	return grid(labels, t, func(i, j int) colorscale.RGB { return m.Cells[i][j].Color }) +
		"\n\n" + LegendLine(m.Legend, t)
}

// HeatmapGrid draws the difference heatmap like MatrixGrid.
func HeatmapGrid(h heatmap.Heatmap, t Theme) string {
	n := h.Size()
	if n == 0 {
		return t.MutedText.Render("No scores to compare.")
	}
	labels := make([]string, n)
	for i, in := range h.Inputs {
		labels[i] = fmt.Sprintf("%s (%d%%)", in.Name, in.Value)
	}
	out := grid(labels, t, func(i, j int) colorscale.RGB { return h.Cells[i][j].Color })
	if i, j, ok := h.MaxPair(); ok {
		out += fmt.Sprintf("\n\nLargest difference: %s vs %s (%.0f points)",
			h.Inputs[i].Name, h.Inputs[j].Name, h.Max)
	}
	sc := h.Scene()
	if len(sc.Legends) > 0 {
		out += "\n" + LegendLine(sc.Legends[0], t)
	}
	return out
}

func grid(labels []string, t Theme, color func(i, j int) colorscale.RGB) string {
	n := len(labels)
	lw := 0
	for _, l := range labels {
		lw = max(lw, runewidth.StringWidth(l))
	}
	lw = min(lw, labelWidth)

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", lw+5))
	for j := 0; j < n; j++ {
		sb.WriteString(t.MutedText.Render(fmt.Sprintf("%2d", (j+1)%100)))
	}
	sb.WriteString("\n")
	for i := 0; i < n; i++ {
		label := padRight(runewidth.Truncate(labels[i], lw, "…"), lw)
		fmt.Fprintf(&sb, "%s %3d ", label, i+1)
		for j := 0; j < n; j++ {
			sb.WriteString(t.Swatch(color(i, j), "  "))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// legendSteps is the number of swatches used for a continuous legend.
const legendSteps = 8

// LegendLine renders a scene legend on one line: bands as labelled swatches,
// gradients as a swatch strip between the first and last tick labels.
func LegendLine(lg scene.Legend, t Theme) string {
	var parts []string
	if lg.Title != "" {
		parts = append(parts, t.Renderer.NewStyle().Bold(true).Render(lg.Title+":"))
	}
	if len(lg.Bands) > 0 {
		for _, b := range lg.Bands {
			parts = append(parts, t.Swatch(b.Color, "  ")+" "+b.Label)
		}
		return strings.Join(parts, " ")
	}
	if len(lg.Stops) == 0 {
		return strings.Join(parts, " ")
	}

	g := colorscale.NewGradient(lg.Stops...)
	lo, hi := g.Domain()
	var strip strings.Builder
	for k := 0; k < legendSteps; k++ {
		f := float64(k) / float64(legendSteps-1)
		strip.WriteString(t.Swatch(g.At(lo+f*(hi-lo)), "  "))
	}
	first, last := "", ""
	if len(lg.Ticks) > 0 {
		first, last = lg.Ticks[0].Label, lg.Ticks[len(lg.Ticks)-1].Label
	}
	parts = append(parts, strings.TrimSpace(first+" "+strip.String()+" "+last))
	return strings.Join(parts, " ")
}

// BandLabel renders a band name in its colour.
func BandLabel(b model.Band, t Theme) string {
	return t.Renderer.NewStyle().Foreground(t.BandColor(b)).Render(b.Title())
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
