package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/testutil"
)

// isolate points config and data lookups at temp dirs.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("CVIZ_SCORES_DIR", "")
	t.Setenv("CVIZ_MATRIX_MODE", "")
}

type result struct {
	stdout string
	stderr string
	copied string
	err    error
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	var res result
	a := newApp(&stdout, &stderr)
	a.copyFn = func(s string) error {
		res.copied = s
		return nil
	}
	root := a.rootCmd()
	root.SetArgs(args)
	res.err = root.Execute()
	res.stdout, res.stderr = stdout.String(), stderr.String()
	return res
}

func writeScores(t *testing.T) string {
	t.Helper()
	return testutil.WriteScoreFile(t, filepath.Join(t.TempDir(), "scores.json"), testutil.QuickFixture())
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

func TestRadarCommand(t *testing.T) {
	isolate(t)
	src := writeScores(t)
	out := filepath.Join(t.TempDir(), "clusters.svg")

	res := run(t, "radar", "-s", src, "-o", out)
	if res.err != nil {
		t.Fatalf("radar: %v\n%s", res.err, res.stderr)
	}
	svg := string(readFile(t, out))
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "Cluster Profile") {
		t.Errorf("unexpected SVG:\n%.300s", svg)
	}
	if !strings.Contains(res.stderr, "Wrote "+out) {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestRadarCommand_ConstructJSONToStdout(t *testing.T) {
	isolate(t)
	src := writeScores(t)

	res := run(t, "radar", "-s", src, "--level", "construct", "--format", "json", "-o", "-")
	if res.err != nil {
		t.Fatalf("radar: %v", res.err)
	}
	var sc struct {
		Title    string          `json:"title"`
		Polygons json.RawMessage `json:"polygons"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &sc); err != nil {
		t.Fatalf("stdout is not a JSON scene: %v\n%.200s", err, res.stdout)
	}
	if sc.Title != "Construct Profile" {
		t.Errorf("title = %q", sc.Title)
	}
	if len(sc.Polygons) == 0 {
		t.Error("expected a score polygon")
	}
}

func TestRadarCommand_UnknownLevel(t *testing.T) {
	isolate(t)
	// The level is rejected before the (missing) source is read.
	missing := filepath.Join(t.TempDir(), "none.json")
	res := run(t, "radar", "-s", missing, "--level", "team", "-o", "-")
	if res.err == nil || !strings.Contains(res.err.Error(), "unknown level") {
		t.Fatalf("err = %v", res.err)
	}
}

func TestMetricsFlag(t *testing.T) {
	isolate(t)
	src := writeScores(t)
	dir := t.TempDir()

	res := run(t, "radar", "--source", src, "-o", filepath.Join(dir, "quiet.svg"))
	if res.err != nil {
		t.Fatalf("radar: %v", res.err)
	}
	if strings.Contains(res.stderr, "render_cache") || strings.Contains(res.stderr, "_build") {
		t.Errorf("metrics printed without --metrics:\n%s", res.stderr)
	}

	res = run(t, "radar", "--metrics", "--source", src, "-o", filepath.Join(dir, "loud.svg"))
	if res.err != nil {
		t.Fatalf("radar --metrics: %v", res.err)
	}
	for _, want := range []string{"radar_build", "svg_render", "render_cache"} {
		if !strings.Contains(res.stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, res.stderr)
		}
	}
	for _, unwanted := range []string{"matrix_build", "heatmap_build"} {
		if strings.Contains(res.stderr, unwanted) {
			t.Errorf("radar built more than its own chart (%s):\n%s", unwanted, res.stderr)
		}
	}
}

func TestRadarCommand_Copy(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "r")
	res := run(t, "radar", "-s", writeScores(t), "-o", out, "--copy")
	if res.err != nil {
		t.Fatalf("radar: %v", res.err)
	}
	if _, err := os.Stat(out + ".svg"); err != nil {
		t.Errorf("extensionless output should get .svg: %v", err)
	}
	if !strings.Contains(res.copied, "<svg") {
		t.Errorf("clipboard got %.80q", res.copied)
	}
}

func TestMatrixCommand_Modes(t *testing.T) {
	isolate(t)
	src := writeScores(t)

	for _, mode := range []string{"delta", "magnitude"} {
		t.Run(mode, func(t *testing.T) {
			res := run(t, "matrix", "-s", src, "--mode", mode, "--format", "json", "-o", "-")
			if res.err != nil {
				t.Fatalf("matrix: %v", res.err)
			}
			if !strings.Contains(res.stdout, `"rects"`) {
				t.Error("expected matrix cells in scene")
			}
		})
	}

	res := run(t, "matrix", "-s", src, "--mode", "bogus", "-o", "-")
	if res.err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}

func TestMatrixCommand_ModeFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("CVIZ_MATRIX_MODE", "magnitude")
	res := run(t, "config", "show")
	if res.err != nil {
		t.Fatalf("config show: %v", res.err)
	}
	if !strings.Contains(res.stdout, "mode: magnitude") {
		t.Errorf("env override not applied:\n%s", res.stdout)
	}
}

func TestHeatmapCommand_PNG(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "diff.png")
	res := run(t, "heatmap", "-s", writeScores(t), "--cell", "24", "-o", out)
	if res.err != nil {
		t.Fatalf("heatmap: %v", res.err)
	}
	data := readFile(t, out)
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Errorf("not a PNG: % x", data[:min(8, len(data))])
	}
}

func TestReportCommand(t *testing.T) {
	isolate(t)
	dir := filepath.Join(t.TempDir(), "report")
	res := run(t, "report", "-s", writeScores(t), "--out-dir", dir, "--title", "Team Day")
	if res.err != nil {
		t.Fatalf("report: %v", res.err)
	}
	md := string(readFile(t, filepath.Join(dir, "report.md")))
	for _, want := range []string{"# Team Day", "Test Participant", "## Clusters", "## Relationships", "cluster-radar.svg"} {
		if !strings.Contains(md, want) {
			t.Errorf("report.md missing %q", want)
		}
	}
	for _, f := range []string{"cluster-radar.svg", "construct-radar.svg", "synergy-matrix.svg", "difference-heatmap.svg"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("missing chart %s: %v", f, err)
		}
	}
}

func TestScoresCommand(t *testing.T) {
	isolate(t)
	res := run(t, "scores", "-s", writeScores(t), "--no-color")
	if res.err != nil {
		t.Fatalf("scores: %v", res.err)
	}
	for _, want := range []string{"Test Participant", "Clusters", "Constructs", model.DefaultClusters[0].Name} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestImportResultsAndLoadFromDatabase(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "results.db")
	src := writeScores(t)

	res := run(t, "import", "--database", db, src, src)
	if res.err != nil {
		t.Fatalf("import: %v", res.err)
	}
	if !strings.Contains(res.stdout, "as result 2") {
		t.Errorf("import output = %q", res.stdout)
	}

	res = run(t, "results", "--database", db)
	if res.err != nil {
		t.Fatalf("results: %v", res.err)
	}
	if strings.Count(res.stdout, "Test Participant") != 2 {
		t.Errorf("results table:\n%s", res.stdout)
	}

	res = run(t, "diff", src, db+"#1")
	if res.err != nil {
		t.Fatalf("diff: %v", res.err)
	}
	if !strings.HasPrefix(res.stdout, "Results match") {
		t.Errorf("file and stored result should match:\n%s", res.stdout)
	}
}

func TestDiffCommand_ExitCode(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	a := testutil.WriteScoreFile(t, filepath.Join(dir, "a.json"), testutil.QuickFixture())
	f := testutil.QuickFixture()
	f.Constructs = testutil.Uniform(model.DefaultConstructs, 10)
	b := testutil.WriteScoreFile(t, filepath.Join(dir, "b.yaml"), f)

	res := run(t, "diff", a, b, "--exit-code")
	if !errors.Is(res.err, errScoresDiffer) {
		t.Fatalf("err = %v, want errScoresDiffer", res.err)
	}
	if !strings.Contains(res.stdout, "Differences between") {
		t.Errorf("summary:\n%s", res.stdout)
	}
}

func TestSourcesCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	testutil.WriteScoreFile(t, filepath.Join(dir, "scores.json"), testutil.QuickFixture())
	if err := os.WriteFile(filepath.Join(dir, "empty.yaml"), []byte("user: nobody\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := run(t, "sources", dir)
	if res.err != nil {
		t.Fatalf("sources: %v", res.err)
	}
	if !strings.Contains(res.stdout, "* "+filepath.Join(dir, "scores.json")) {
		t.Errorf("best source not marked:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, "invalid") {
		t.Errorf("invalid source not listed:\n%s", res.stdout)
	}
}

func TestConfigInit(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	res := run(t, "--config", path, "config", "init")
	if res.err != nil {
		t.Fatalf("config init: %v", res.err)
	}
	if !strings.Contains(string(readFile(t, path)), "rotate_above") {
		t.Error("config file missing defaults")
	}
	if res := run(t, "--config", path, "config", "init"); res.err == nil {
		t.Error("second init without --force should fail")
	}
	if res := run(t, "--config", path, "config", "path"); strings.TrimSpace(res.stdout) != path {
		t.Errorf("config path = %q", res.stdout)
	}
}

func TestConfigFileOverridesOutputDir(t *testing.T) {
	isolate(t)
	outDir := t.TempDir()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("output:\n  dir: "+outDir+"\n  format: json\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := run(t, "--config", path, "heatmap", "-s", writeScores(t))
	if res.err != nil {
		t.Fatalf("heatmap: %v", res.err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "difference-heatmap.json")); err != nil {
		t.Errorf("default output path not used: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	res := run(t, "version")
	if res.err != nil || !strings.HasPrefix(res.stdout, "cviz v") {
		t.Errorf("version = %q, %v", res.stdout, res.err)
	}
}

func TestLoadRef(t *testing.T) {
	isolate(t)
	if _, err := loadRef("results.db#abc"); err == nil {
		t.Error("expected error for non-numeric result id")
	}
	if _, err := loadRef(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
