package testutil

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/vanderheijden86/compassviz/pkg/loader"
	"github.com/vanderheijden86/compassviz/pkg/model"
)

func TestFixture_DefaultTaxonomy(t *testing.T) {
	f := QuickFixture()
	if len(f.Clusters) != 6 || len(f.Constructs) != 18 {
		t.Fatalf("got %d clusters, %d constructs; want 6, 18", len(f.Clusters), len(f.Constructs))
	}
	AssertPercentages(t, f.Clusters.Entries(nil))
	for name, raw := range f.Constructs {
		if raw.Average == nil || *raw.Average < 0 || *raw.Average > 5 {
			t.Errorf("%s: average %v outside [0,5]", name, raw.Average)
		}
	}
}

func TestDeterminism(t *testing.T) {
	a := New(GeneratorConfig{Seed: 7, MixedShapes: true}).Fixture(nil, nil)
	b := New(GeneratorConfig{Seed: 7, MixedShapes: true}).Fixture(nil, nil)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different fixtures (-a +b):\n%s", diff)
	}
	c := New(GeneratorConfig{Seed: 8, MixedShapes: true}).Fixture(nil, nil)
	if cmp.Equal(a, c) {
		t.Error("different seeds produced identical fixtures")
	}
}

func TestMissingRate(t *testing.T) {
	g := New(GeneratorConfig{MissingRate: 1})
	if got := g.Scores(Axes(10)); len(got) != 0 {
		t.Errorf("MissingRate 1 kept %d scores", len(got))
	}
	g = New(GeneratorConfig{MissingRate: 0})
	if got := g.Scores(Axes(10)); len(got) != 10 {
		t.Errorf("MissingRate 0 kept %d scores, want 10", len(got))
	}
}

func TestShapes(t *testing.T) {
	axes := Axes(5)

	tests := []struct {
		name   string
		scores model.ScoreMap
		want   []float64
	}{
		{"uniform", Uniform(axes, 60), []float64{60, 60, 60, 60, 60}},
		{"ladder", Ladder(axes, 10, 30), []float64{10, 40, 70, 100, 100}},
		{"extremes", Extremes(axes), []float64{0, 100, 0, 100, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entries := tc.scores.Entries(model.AxisLabels(axes))
			got := make([]float64, len(entries))
			for i, e := range entries {
				got[i] = e.Value
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("values (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteScoreFile_LoadsBack(t *testing.T) {
	f := New(GeneratorConfig{Subject: "Sam"}).Fixture(nil, nil)
	for _, name := range []string{"scores.json", "scores.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := WriteScoreFile(t, filepath.Join(t.TempDir(), name), f)
			sf, err := loader.LoadScores(path)
			if err != nil {
				t.Fatalf("LoadScores: %v", err)
			}
			if sf.User != "Sam" {
				t.Errorf("user = %q", sf.User)
			}
			if diff := cmp.Diff(f.Constructs, sf.Constructs); diff != "" {
				t.Errorf("constructs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRawScoreGen_NormalizesIntoRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := RawScoreGen().Draw(t, "raw")
		e := raw.Entry("axis")
		if e.Value != e.Value {
			t.Fatalf("NaN survived normalization: %+v", raw)
		}
	})
}

func TestAssertSymmetric(t *testing.T) {
	m := [][]int{{0, 1, 2}, {1, 0, 3}, {2, 3, 0}}
	AssertSymmetric(t, 3, func(i, j int) int { return m[i][j] })
}
