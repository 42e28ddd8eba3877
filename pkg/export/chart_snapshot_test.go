package export

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/vanderheijden86/compassviz/pkg/colorscale"
	"github.com/vanderheijden86/compassviz/pkg/heatmap"
	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/radar"
	"github.com/vanderheijden86/compassviz/pkg/scene"
)

func sampleScene() *scene.Scene {
	c := radar.Build(model.DefaultAxes(model.LevelCluster), []model.ScoreEntry{
		{Name: "Drive & Achievement", Value: 80},
		{Name: "Caring & Connection", Value: 55},
		{Name: "Thinking & Learning", Value: 30},
	}, radar.ClusterOptions())
	s := c.Scene()
	return &s
}

func TestSaveChart_InfersFormat(t *testing.T) {
	dir := t.TempDir()
	s := sampleScene()

	cases := []struct {
		path  string
		magic []byte
	}{
		{filepath.Join(dir, "nested", "radar.svg"), []byte("<?xml")},
		{filepath.Join(dir, "radar.PNG"), []byte("\x89PNG")},
		{filepath.Join(dir, "radar.json"), []byte("{")},
	}
	for _, tc := range cases {
		t.Run(filepath.Base(tc.path), func(t *testing.T) {
			if err := SaveChart(ChartOptions{Path: tc.path, Scene: s}); err != nil {
				t.Fatalf("SaveChart: %v", err)
			}
			data, err := os.ReadFile(tc.path)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if !bytes.HasPrefix(data, tc.magic) {
				t.Errorf("%s starts with %q, want %q", tc.path, data[:min(len(data), 8)], tc.magic)
			}
		})
	}
}

func TestSaveChart_DefaultsToSVG(t *testing.T) {
	base := filepath.Join(t.TempDir(), "chart")
	if err := SaveChart(ChartOptions{Path: base, Scene: sampleScene()}); err != nil {
		t.Fatalf("SaveChart: %v", err)
	}
	if _, err := os.Stat(base + ".svg"); err != nil {
		t.Errorf("expected %s.svg: %v", base, err)
	}
}

func TestSaveChart_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := SaveChart(ChartOptions{Path: filepath.Join(dir, "a.svg")}); !errors.Is(err, ErrNoScene) {
		t.Errorf("nil scene: err = %v, want ErrNoScene", err)
	}
	if err := SaveChart(ChartOptions{Scene: sampleScene()}); err == nil {
		t.Error("empty path: expected error")
	}
	if err := SaveChart(ChartOptions{Path: filepath.Join(dir, "a.gif"), Scene: sampleScene()}); err == nil {
		t.Error("gif: expected unsupported format error")
	}
	if err := SaveChart(ChartOptions{Path: filepath.Join(dir, "a.svg"), Format: "pdf", Scene: sampleScene()}); err == nil {
		t.Error("pdf: expected unsupported format error")
	}
}

func TestRenderSVG_Content(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSVG(&buf, sampleScene()); err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<svg",
		"<polygon",
		"Drive &amp;",
		"<title>Drive &amp; Achievement: 80%</title>",
		"stroke-dasharray",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVG_GradientLegend(t *testing.T) {
	h := heatmap.Build([]heatmap.Input{{Name: "A", Value: 10}, {Name: "B", Value: 70}}, heatmap.Options{})
	s := h.Scene()
	var buf bytes.Buffer
	if err := RenderSVG(&buf, &s); err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `id="legend-gradient-0"`) {
		t.Error("missing gradient definition")
	}
	if !strings.Contains(out, "url(#legend-gradient-0)") {
		t.Error("legend does not reference its gradient")
	}
	if !strings.Contains(out, "A vs B") {
		t.Error("missing cell tooltip")
	}
}

func TestRenderPNG_Dimensions(t *testing.T) {
	s := sampleScene()
	var buf bytes.Buffer
	if err := RenderPNG(&buf, s); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != px(s.Width) || b.Dy() != px(s.Height) {
		t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), px(s.Width), px(s.Height))
	}
}

func TestRenderJSON_RoundTrip(t *testing.T) {
	s := sampleScene()
	var buf bytes.Buffer
	if err := RenderJSON(&buf, s); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var got scene.Scene
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(*s, got); diff != "" {
		t.Errorf("scene changed through JSON (-want +got):\n%s", diff)
	}
}

func TestLineOffsets(t *testing.T) {
	base := scene.Text{Lines: []string{"a", "b"}, Size: 10, LineHeight: 12}
	tests := []struct {
		baseline scene.Baseline
		want     []float64
	}{
		{scene.BaselineBottom, []float64{-12, 0}},
		{scene.BaselineTop, []float64{8, 20}},
		{scene.BaselineMiddle, []float64{-2.5, 9.5}},
	}
	for _, tt := range tests {
		txt := base
		txt.Baseline = tt.baseline
		if diff := cmp.Diff(tt.want, lineOffsets(txt)); diff != "" {
			t.Errorf("%s offsets (-want +got):\n%s", tt.baseline, diff)
		}
	}
}

func TestStyleAttr(t *testing.T) {
	red := colorscale.Red
	st := scene.Style{Fill: &red, FillOpacity: 0.35, Stroke: &red, StrokeWidth: 2, Dashed: true}
	want := "fill:#ef4444;fill-opacity:0.35;stroke:#ef4444;stroke-width:2;stroke-dasharray:4,3"
	if got := styleAttr(st); got != want {
		t.Errorf("styleAttr = %q, want %q", got, want)
	}
	if got := styleAttr(scene.Style{}); got != "fill:none" {
		t.Errorf("empty style = %q", got)
	}
}

func TestLegendBandRect_Vertical(t *testing.T) {
	lg := scene.Legend{X: 10, Y: 20, W: 16, H: 100, Orientation: scene.Vertical}
	x, y, w, h := legendBandRect(lg, 0, 4)
	if x != 10 || y != 95 || w != 16 || h != 25 {
		t.Errorf("band 0 = (%v,%v,%v,%v), want bottom quarter", x, y, w, h)
	}
}
