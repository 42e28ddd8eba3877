package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/render"
	"github.com/vanderheijden86/compassviz/pkg/testutil"
)

func testBundle(t *testing.T) (render.Profile, render.Bundle) {
	t.Helper()
	f := testutil.New(testutil.GeneratorConfig{Subject: "Sam"}).Fixture(nil, nil)
	p := render.Profile{Subject: f.Subject, Test: f.Test, Clusters: f.Clusters, Constructs: f.Constructs}
	return p, render.NewEngine(render.DefaultCapacity).Build(p, render.DefaultSettings())
}

func TestRadarBars(t *testing.T) {
	_, b := testBundle(t)
	out := ansi.Strip(RadarBars(b.ClusterRadar.Chart, TestTheme(), 80))
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out)
	}
	for _, l := range lines {
		if !strings.Contains(l, "%") {
			t.Errorf("line without percentage: %q", l)
		}
	}
}

func TestRadarBars_Unmatched(t *testing.T) {
	axes := testutil.Axes(2)
	_, b := testBundle(t)
	chart := b.ClusterRadar.Chart
	chart.Axes = chart.Axes[:1]
	chart.Axes[0].Matched = false
	chart.Axes[0].Axis = axes[0]
	out := ansi.Strip(RadarBars(chart, TestTheme(), 60))
	if !strings.Contains(out, "–") || !strings.Contains(out, "Axis 1") {
		t.Errorf("unmatched axis not marked:\n%s", out)
	}
}

func TestMatrixGrid(t *testing.T) {
	_, b := testBundle(t)
	out := ansi.Strip(MatrixGrid(b.Matrix.Chart, TestTheme()))
	lines := strings.Split(out, "\n")
	// header + 18 rows + blank + legend
	if len(lines) != 21 {
		t.Fatalf("got %d lines, want 21", len(lines))
	}
	legend := lines[len(lines)-1]
	for _, want := range []string{"Conflict", "Growth", "Flow"} {
		if !strings.Contains(legend, want) {
			t.Errorf("legend missing %q: %q", want, legend)
		}
	}
}

func TestHeatmapGrid(t *testing.T) {
	_, b := testBundle(t)
	out := ansi.Strip(HeatmapGrid(b.Heatmap.Chart, TestTheme()))
	if !strings.Contains(out, "Largest difference:") {
		t.Errorf("missing max pair:\n%s", out)
	}
	if !strings.Contains(out, "Difference:") {
		t.Errorf("missing legend title:\n%s", out)
	}
}

func TestEmptyCharts(t *testing.T) {
	var empty render.Bundle
	th := TestTheme()
	if got := ansi.Strip(MatrixGrid(empty.Matrix.Chart, th)); got != "No axes to compare." {
		t.Errorf("MatrixGrid = %q", got)
	}
	if got := ansi.Strip(HeatmapGrid(empty.Heatmap.Chart, th)); got != "No scores to compare." {
		t.Errorf("HeatmapGrid = %q", got)
	}
	if got := ansi.Strip(RadarBars(empty.ClusterRadar.Chart, th, 80)); got != "No axes to plot." {
		t.Errorf("RadarBars = %q", got)
	}
}

func TestPrintScores(t *testing.T) {
	entries := []model.ScoreEntry{
		{Name: "Drive", Value: 82, Average: model.Float(4.1)},
		{Name: "Care", Value: 35},
		{Name: "Focus", Value: 55, Category: "high"},
	}
	var buf bytes.Buffer
	if err := PrintScores(&buf, entries, TableOptions{Title: "Clusters"}); err != nil {
		t.Fatalf("PrintScores: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Clusters", "AXIS", "Drive", "82%", "4.10", "Low", "High", "3 axes"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("colour codes written with UseColors false")
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Report\n\n| Axis | Score |\n|---|---|\n| Drive | 82% |\n", 60)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	plain := ansi.Strip(out)
	if !strings.Contains(plain, "Report") || !strings.Contains(plain, "Drive") {
		t.Errorf("unexpected render:\n%s", plain)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m PreviewModel, msg tea.Msg) (PreviewModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(PreviewModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return pm, cmd
}

func TestPreview_Tabs(t *testing.T) {
	p, b := testBundle(t)
	m := NewPreview(p, b, TestTheme())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.Tab() != TabClusters {
		t.Fatalf("initial tab = %v", m.Tab())
	}
	m, _ = update(t, m, key("tab"))
	if m.Tab() != TabConstructs {
		t.Errorf("after tab = %v", m.Tab())
	}
	m, _ = update(t, m, key("shift+tab"))
	m, _ = update(t, m, key("shift+tab"))
	if m.Tab() != TabReport {
		t.Errorf("wrap-around = %v, want Report", m.Tab())
	}
	m, _ = update(t, m, key("3"))
	if m.Tab() != TabMatrix {
		t.Errorf("jump = %v, want Matrix", m.Tab())
	}

	view := ansi.Strip(m.View())
	for _, want := range []string{"Strengths Compass · Sam", "3 Matrix", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = update(t, m, key("5"))
	if !strings.Contains(ansi.Strip(m.View()), "Participant") {
		t.Error("report tab should render the report summary")
	}

	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPreview_CopyAndReload(t *testing.T) {
	p, b := testBundle(t)
	m := NewPreview(p, b, TestTheme())

	var copied string
	m.copyFn = func(s string) error { copied = s; return nil }
	m, _ = update(t, m, key("c"))
	if !strings.HasPrefix(copied, "<?xml") || !strings.Contains(m.Status(), "copied Clusters SVG") {
		t.Errorf("copy failed: status %q", m.Status())
	}

	m.copyFn = func(string) error { return errors.New("no clipboard") }
	m, _ = update(t, m, key("c"))
	if !strings.Contains(ansi.Strip(m.View()), "error: no clipboard") {
		t.Error("copy error not shown")
	}

	m, _ = update(t, m, key("5"))
	m, _ = update(t, m, key("c"))
	if m.Status() != "nothing to copy on this tab" {
		t.Errorf("status = %q", m.Status())
	}

	p.Subject = "Alex"
	m, _ = update(t, m, ReloadMsg{Profile: p, Bundle: b})
	if m.Status() != "reloaded" || !strings.Contains(ansi.Strip(m.View()), "Alex") {
		t.Error("reload not applied")
	}
}
