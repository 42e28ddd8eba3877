package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vanderheijden86/compassviz/pkg/heatmap"
	"github.com/vanderheijden86/compassviz/pkg/matrix"
	"github.com/vanderheijden86/compassviz/pkg/model"
)

func sampleReport(dir string) ReportOptions {
	constructs := model.ScoreMap{
		"Empathy":  {Average: model.Float(4.5), Percentage: model.Float(90)},
		"Vision":   {Average: model.Float(4.6), Percentage: model.Float(92)},
		"Optimism": {Average: model.Float(1.0), Percentage: model.Float(20)},
	}
	order := []string{"Empathy", "Vision", "Optimism"}
	m := matrix.Build(order, constructs, matrix.Options{})
	h := heatmap.Build(heatmap.FromScores(constructs, order), heatmap.Options{})
	ms, hs := m.Scene(), h.Scene()
	return ReportOptions{
		Dir:        dir,
		Subject:    "Ada | Lovelace",
		Test:       "Strengths Compass",
		Generated:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Constructs: constructs.Entries(order),
		Matrix:     &m,
		Heatmap:    &h,
		Charts: []ReportChart{
			{Name: "Cluster Radar", Scene: sampleScene()},
			{Name: "Synergy Matrix", Scene: &ms},
			{Name: "Difference Heatmap", Scene: &hs},
		},
	}
}

func TestWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := WriteReport(context.Background(), sampleReport(dir))
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if path != filepath.Join(dir, ReportFile) {
		t.Errorf("path = %s", path)
	}
	for _, f := range []string{"cluster-radar.svg", "synergy-matrix.svg", "difference-heatmap.svg"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("missing chart %s: %v", f, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	md := string(data)
	for _, want := range []string{
		"# Strengths Compass Report",
		"| **Participant** | Ada \\| Lovelace |",
		"| Empathy | 90% | █████████░ | High | 4.50 |",
		"| Optimism | 20% | ██░░░░░░░░ | Low | 1.00 |",
		"| Flow | 1 |",
		"| Conflict | 2 |",
		"**Vision** (92%) vs **Optimism** (20%): 72 points",
		"![Synergy Matrix](synergy-matrix.svg)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteReport_PNGAndLimit(t *testing.T) {
	opts := sampleReport(t.TempDir())
	opts.Format = "png"
	opts.Concurrency = 1
	path, err := WriteReport(context.Background(), opts)
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(path), "cluster-radar.png")); err != nil {
		t.Errorf("missing png chart: %v", err)
	}
}

func TestWriteReport_Errors(t *testing.T) {
	if _, err := WriteReport(context.Background(), ReportOptions{}); err == nil {
		t.Error("missing dir: expected error")
	}

	opts := sampleReport(t.TempDir())
	opts.Format = "json"
	if _, err := WriteReport(context.Background(), opts); err == nil {
		t.Error("json charts: expected error")
	}

	opts = sampleReport(t.TempDir())
	opts.Charts = append(opts.Charts, ReportChart{Name: "Broken"})
	if _, err := WriteReport(context.Background(), opts); !errors.Is(err, ErrNoScene) {
		t.Errorf("nil scene: err = %v, want ErrNoScene", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := WriteReport(ctx, sampleReport(t.TempDir())); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: err = %v, want context.Canceled", err)
	}
}

func TestGenerateReportMarkdown_EqualScores(t *testing.T) {
	h := heatmap.Build([]heatmap.Input{{Name: "A", Value: 10}, {Name: "B", Value: 10}}, heatmap.Options{})
	md := GenerateReportMarkdown(ReportOptions{Title: "Mine", Heatmap: &h}, nil)
	if !strings.HasPrefix(md, "# Mine\n") {
		t.Errorf("unexpected title in %q", md)
	}
	if !strings.Contains(md, "All scores are equal.") {
		t.Error("missing equal-scores note")
	}
}

func TestSlugs(t *testing.T) {
	counts := map[string]int{}
	if got := uniqueSlug(createSlug("Cluster Radar"), counts); got != "cluster-radar" {
		t.Errorf("first = %q", got)
	}
	if got := uniqueSlug(createSlug("Cluster  radar!"), counts); got != "cluster-radar-1" {
		t.Errorf("second = %q", got)
	}
	if got := uniqueSlug(createSlug("!!"), counts); got != "chart" {
		t.Errorf("empty = %q", got)
	}
}
