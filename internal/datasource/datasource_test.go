package datasource

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vanderheijden86/compassviz/pkg/loader"
	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/render"
)

func sampleProfile(subject string, drive float64) render.Profile {
	return render.Profile{
		Subject: subject,
		Test:    "Strengths Compass",
		Clusters: model.ScoreMap{
			"Drive & Achievement": {Average: model.Float(4.1), Percentage: model.Float(drive)},
			"Care & Connection":   {Value: model.Float(55)},
		},
		Constructs: model.ScoreMap{
			"Empathy": {AxisID: "empathy", Percentage: model.Float(64), Category: "medium"},
		},
		ConstructAxes: []model.AxisConfig{{ID: "empathy", Name: "Empathy", Order: 1}},
	}
}

func writeDB(t *testing.T, path string, profiles ...render.Profile) []int64 {
	t.Helper()
	w, err := OpenSQLiteWriter(path)
	if err != nil {
		t.Fatalf("OpenSQLiteWriter: %v", err)
	}
	defer w.Close()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var ids []int64
	for i, p := range profiles {
		id, err := w.SaveResult(p, base.Add(time.Duration(i)*time.Hour))
		if err != nil {
			t.Fatalf("SaveResult: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	ids := writeDB(t, path, sampleProfile("Sam", 82), sampleProfile("Alex", 40))

	r, err := NewSQLiteReader(DataSource{Type: SourceTypeSQLite, Path: path})
	if err != nil {
		t.Fatalf("NewSQLiteReader: %v", err)
	}
	defer r.Close()

	n, err := r.CountResults()
	if err != nil || n != 2 {
		t.Fatalf("CountResults = %d, %v; want 2", n, err)
	}
	latest, err := r.LatestResultID()
	if err != nil {
		t.Fatalf("LatestResultID: %v", err)
	}
	if latest != ids[1] {
		t.Errorf("latest = %d, want %d", latest, ids[1])
	}

	p, err := r.LoadResult(ids[0])
	if err != nil {
		t.Fatalf("LoadResult: %v", err)
	}
	if diff := cmp.Diff(sampleProfile("Sam", 82), p); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}

	list, err := r.ListResults()
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(list) != 2 || list[0].User != "Alex" || list[1].User != "Sam" {
		t.Errorf("ListResults = %+v", list)
	}
	if list[1].CreatedAt.IsZero() {
		t.Error("CreatedAt not scanned")
	}
}

func TestSQLiteReader_Errors(t *testing.T) {
	if _, err := NewSQLiteReader(DataSource{Type: SourceTypeJSON, Path: "x.json"}); err == nil {
		t.Error("expected error for non-SQLite source")
	}

	path := filepath.Join(t.TempDir(), "empty.db")
	w, err := OpenSQLiteWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	w.Close()

	r, err := NewSQLiteReader(DataSource{Type: SourceTypeSQLite, Path: path})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if _, err := r.LatestResultID(); !errors.Is(err, ErrNoResults) {
		t.Errorf("LatestResultID err = %v, want ErrNoResults", err)
	}
	if _, err := r.LoadResult(7); !errors.Is(err, ErrNoResults) {
		t.Errorf("LoadResult err = %v, want ErrNoResults", err)
	}
	axes, err := r.LoadAxes(model.LevelCluster)
	if err != nil || axes != nil {
		t.Errorf("LoadAxes = %v, %v; want nil, nil", axes, err)
	}
}

func TestDiscoverSources(t *testing.T) {
	dir := t.TempDir()
	writeDB(t, filepath.Join(dir, "results.db"), sampleProfile("Sam", 82))
	if err := os.WriteFile(filepath.Join(dir, "scores.json"), []byte(`{"clusters":{"Drive":70}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "empty.yaml"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", ".hidden.json", "scores.json.backup"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	same := time.Now().Add(-time.Minute)
	for _, name := range []string{"results.db", "scores.json", "empty.yaml"} {
		if err := os.Chtimes(filepath.Join(dir, name), same, same); err != nil {
			t.Fatal(err)
		}
	}

	var logs []string
	all, err := DiscoverSources(DiscoveryOptions{
		Dir:                    dir,
		ValidateAfterDiscovery: true,
		IncludeInvalid:         true,
		Logger:                 func(msg string) { logs = append(logs, msg) },
	})
	if err != nil {
		t.Fatalf("DiscoverSources: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("discovered %d sources, want 3: %v", len(all), all)
	}
	if all[0].Type != SourceTypeSQLite {
		t.Errorf("tie should prefer SQLite, got %s", all[0].Type)
	}
	for _, s := range all {
		if strings.HasSuffix(s.Path, "empty.yaml") && s.Valid {
			t.Error("empty yaml should be invalid")
		}
	}
	if len(logs) == 0 {
		t.Error("logger not called")
	}

	valid, err := DiscoverSources(DiscoveryOptions{Dir: dir, ValidateAfterDiscovery: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(valid) != 2 {
		t.Errorf("valid sources = %d, want 2", len(valid))
	}
}

func TestSelectBestSource(t *testing.T) {
	now := time.Now()
	sources := []DataSource{
		{Type: SourceTypeSQLite, Path: "old.db", Priority: PrioritySQLite, ModTime: now.Add(-time.Hour), Valid: true},
		{Type: SourceTypeJSON, Path: "new.json", Priority: PriorityJSON, ModTime: now, Valid: true},
		{Type: SourceTypeYAML, Path: "broken.yaml", Priority: PriorityYAML, ModTime: now.Add(time.Hour)},
	}
	best, err := SelectBestSource(sources)
	if err != nil {
		t.Fatal(err)
	}
	if best.Path != "new.json" {
		t.Errorf("best = %s, want new.json", best.Path)
	}
	if _, err := SelectBestSource(sources[2:]); err == nil {
		t.Error("expected error when nothing is valid")
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	ids := writeDB(t, filepath.Join(dir, "results.db"), sampleProfile("Sam", 82), sampleProfile("Alex", 40))

	p, src, err := LoadProfile(dir, 0)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if src.Type != SourceTypeSQLite || p.Subject != "Alex" {
		t.Errorf("latest = %s from %s, want Alex from sqlite", p.Subject, src.Type)
	}

	p, _, err = LoadProfile(filepath.Join(dir, "results.db"), ids[0])
	if err != nil {
		t.Fatal(err)
	}
	if p.Subject != "Sam" {
		t.Errorf("subject = %q, want Sam", p.Subject)
	}

	yamlPath := filepath.Join(dir, "other.yaml")
	if err := os.WriteFile(yamlPath, []byte("user: Kim\nconstructs:\n  Empathy: 71\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, src, err = LoadProfile(yamlPath, 0)
	if err != nil {
		t.Fatal(err)
	}
	if src.Type != SourceTypeYAML || p.Subject != "Kim" {
		t.Errorf("got %s from %s", p.Subject, src.Type)
	}

	if _, _, err := LoadProfile(filepath.Join(dir, "notes.txt"), 0); err == nil {
		t.Error("expected error for missing file")
	}
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadProfile(txt, 0); !errors.Is(err, loader.ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDiffProfiles(t *testing.T) {
	a := sampleProfile("Sam", 82)
	b := sampleProfile("Sam", 70)
	delete(b.Constructs, "Empathy")
	b.Constructs["Resilience"] = model.RawScore{Percentage: model.Float(50)}

	d := DiffProfiles(a, b, "march", "april")
	if !d.HasDifferences() {
		t.Fatal("expected differences")
	}
	if diff := cmp.Diff([]string{"Resilience"}, d.MissingInA); diff != "" {
		t.Errorf("MissingInA (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Empathy"}, d.MissingInB); diff != "" {
		t.Errorf("MissingInB (-want +got):\n%s", diff)
	}
	if len(d.Changes) != 2 || d.Changes[0].Name != "Drive & Achievement" || d.Changes[0].Delta() != -12 {
		t.Errorf("Changes = %+v", d.Changes)
	}

	s := d.Summary()
	for _, want := range []string{"march and april", "Drive & Achievement (cluster): 82% -> 70% (-12)", "Resilience"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}

	same := DiffProfiles(a, a, "x", "y")
	if same.HasDifferences() {
		t.Error("identical profiles should match")
	}
	if got := same.Summary(); got != "Results match (3 axes)" {
		t.Errorf("Summary = %q", got)
	}
}
