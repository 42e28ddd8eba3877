// Package testutil provides deterministic score fixtures and assertion
// helpers shared by package tests.
package testutil

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/goccy/go-json"
	"pgregory.net/rapid"

	"github.com/vanderheijden86/compassviz/pkg/model"
)

// Fixture is one participant's generated result.
type Fixture struct {
	Subject       string             `json:"user,omitempty" yaml:"user,omitempty"`
	Test          string             `json:"test,omitempty" yaml:"test,omitempty"`
	Clusters      model.ScoreMap     `json:"clusters,omitempty" yaml:"clusters,omitempty"`
	Constructs    model.ScoreMap     `json:"constructs,omitempty" yaml:"constructs,omitempty"`
	ClusterAxes   []model.AxisConfig `json:"cluster_axes,omitempty" yaml:"cluster_axes,omitempty"`
	ConstructAxes []model.AxisConfig `json:"construct_axes,omitempty" yaml:"construct_axes,omitempty"`
}

// GeneratorConfig controls score generation.
type GeneratorConfig struct {
	Seed    int64  // Random seed for determinism (0 = use 42)
	Subject string // default "Test Participant"
	Test    string // default "Strengths Compass"
	// MissingRate is the probability an axis gets no score at all.
	MissingRate float64
	// MixedShapes emits value-keyed objects for some scores instead of
	// percentage-keyed ones.
	MixedShapes bool
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:    42,
		Subject: "Test Participant",
		Test:    "Strengths Compass",
	}
}

// Generator creates score fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.Subject == "" {
		cfg.Subject = "Test Participant"
	}
	if cfg.Test == "" {
		cfg.Test = "Strengths Compass"
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// Score draws one score: a whole percentage and the matching 0-5 average.
func (g *Generator) Score() model.RawScore {
	pct := float64(g.rng.Intn(101))
	avg := math.Round(pct/20*100) / 100
	if g.cfg.MixedShapes && g.rng.Intn(3) == 0 {
		return model.RawScore{Value: model.Float(pct)}
	}
	return model.RawScore{Average: model.Float(avg), Percentage: model.Float(pct)}
}

// Scores draws a score for each axis, skipping some per MissingRate.
func (g *Generator) Scores(axes []model.AxisConfig) model.ScoreMap {
	out := make(model.ScoreMap, len(axes))
	for _, a := range axes {
		if g.cfg.MissingRate > 0 && g.rng.Float64() < g.cfg.MissingRate {
			continue
		}
		out[a.Label()] = g.Score()
	}
	return out
}

// Fixture generates a full result over the given axis lists. Nil lists use
// the default taxonomy.
func (g *Generator) Fixture(clusters, constructs []model.AxisConfig) Fixture {
	if clusters == nil {
		clusters = model.DefaultAxes(model.LevelCluster)
	}
	if constructs == nil {
		constructs = model.DefaultAxes(model.LevelConstruct)
	}
	return Fixture{
		Subject:    g.cfg.Subject,
		Test:       g.cfg.Test,
		Clusters:   g.Scores(clusters),
		Constructs: g.Scores(constructs),
	}
}

// Axes returns n synthetic axes "Axis 1".."Axis n" with ids a1..an.
func Axes(n int) []model.AxisConfig {
	axes := make([]model.AxisConfig, n)
	for i := range axes {
		axes[i] = model.AxisConfig{ID: fmt.Sprintf("a%d", i+1), Name: fmt.Sprintf("Axis %d", i+1), Order: i}
	}
	return axes
}

// Uniform gives every axis the same percentage and average.
func Uniform(axes []model.AxisConfig, pct float64) model.ScoreMap {
	out := make(model.ScoreMap, len(axes))
	for _, a := range axes {
		out[a.Label()] = model.RawScore{Average: model.Float(pct / 20), Percentage: model.Float(pct)}
	}
	return out
}

// Ladder scores axis i at start + i*step percent, clamped to [0,100].
func Ladder(axes []model.AxisConfig, start, step float64) model.ScoreMap {
	out := make(model.ScoreMap, len(axes))
	for i, a := range axes {
		pct := math.Max(0, math.Min(100, start+float64(i)*step))
		out[a.Label()] = model.RawScore{Average: model.Float(pct / 20), Percentage: model.Float(pct)}
	}
	return out
}

// Extremes alternates 0% and 100%, the worst case for difference charts.
func Extremes(axes []model.AxisConfig) model.ScoreMap {
	out := make(model.ScoreMap, len(axes))
	for i, a := range axes {
		pct := 0.0
		if i%2 == 1 {
			pct = 100
		}
		out[a.Label()] = model.RawScore{Average: model.Float(pct / 20), Percentage: model.Float(pct)}
	}
	return out
}

// ToJSON encodes a fixture as a score file.
func ToJSON(f Fixture) string {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

// QuickFixture is a deterministic default-taxonomy result.
func QuickFixture() Fixture {
	return NewDefault().Fixture(nil, nil)
}

// RawScoreGen draws RawScores in every accepted shape, including out of
// range and non-finite values.
func RawScoreGen() *rapid.Generator[model.RawScore] {
	return rapid.Custom(func(t *rapid.T) model.RawScore {
		num := rapid.OneOf(
			rapid.Float64Range(-50, 150),
			rapid.SampledFrom([]float64{0, 100, math.NaN(), math.Inf(1), math.Inf(-1)}),
		)
		var r model.RawScore
		switch rapid.IntRange(0, 3).Draw(t, "shape") {
		case 0:
			r.Percentage = model.Float(num.Draw(t, "percentage"))
		case 1:
			r.Value = model.Float(num.Draw(t, "value"))
		case 2:
			r.Percentage = model.Float(num.Draw(t, "percentage"))
			r.Average = model.Float(rapid.Float64Range(0, 5).Draw(t, "average"))
		}
		return r
	})
}

// ScoreMapGen draws a ScoreMap over a subset of names.
func ScoreMapGen(names []string) *rapid.Generator[model.ScoreMap] {
	return rapid.Custom(func(t *rapid.T) model.ScoreMap {
		out := model.ScoreMap{}
		for _, name := range names {
			if rapid.Bool().Draw(t, "present:"+name) {
				out[name] = RawScoreGen().Draw(t, "score:"+name)
			}
		}
		return out
	})
}
