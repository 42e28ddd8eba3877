package render

import (
	"github.com/vanderheijden86/compassviz/pkg/export"
	"github.com/vanderheijden86/compassviz/pkg/heatmap"
	"github.com/vanderheijden86/compassviz/pkg/matrix"
	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/radar"
)

// Profile is one participant's scores at both taxonomy levels.
type Profile struct {
	Subject       string
	Test          string
	ClusterAxes   []model.AxisConfig // nil falls back to the default clusters
	ConstructAxes []model.AxisConfig // nil falls back to the default constructs
	Clusters      model.ScoreMap
	Constructs    model.ScoreMap
}

// Settings carries per-chart options. Zero values take each builder's
// defaults; radar options are layered over the level presets.
type Settings struct {
	ClusterRadar   radar.Options
	ConstructRadar radar.Options
	Matrix         matrix.Options
	Heatmap        heatmap.Options
}

// DefaultSettings uses the stock presets.
func DefaultSettings() Settings {
	return Settings{
		ClusterRadar:   radar.ClusterOptions(),
		ConstructRadar: radar.ConstructOptions(),
		Matrix:         matrix.DefaultOptions(),
		Heatmap:        heatmap.DefaultOptions(),
	}
}

// Bundle holds the four charts of a profile.
type Bundle struct {
	ClusterRadar   Result[radar.Chart]
	ConstructRadar Result[radar.Chart]
	Matrix         Result[matrix.Matrix]
	Heatmap        Result[heatmap.Heatmap]
}

func (p Profile) clusterAxes() []model.AxisConfig {
	if len(p.ClusterAxes) > 0 {
		return model.SortAxes(p.ClusterAxes)
	}
	return model.DefaultAxes(model.LevelCluster)
}

func (p Profile) constructAxes() []model.AxisConfig {
	if len(p.ConstructAxes) > 0 {
		return model.SortAxes(p.ConstructAxes)
	}
	return model.DefaultAxes(model.LevelConstruct)
}

// ClusterEntries returns the cluster scores in axis order. Axes without a
// score are skipped.
func (p Profile) ClusterEntries() []model.ScoreEntry {
	return entriesFor(p.Clusters, p.clusterAxes())
}

// ConstructEntries returns the construct scores in axis order.
func (p Profile) ConstructEntries() []model.ScoreEntry {
	return entriesFor(p.Constructs, p.constructAxes())
}

func entriesFor(scores model.ScoreMap, axes []model.AxisConfig) []model.ScoreEntry {
	aligned := alignScores(scores, axes)
	out := make([]model.ScoreEntry, 0, len(axes))
	for _, a := range axes {
		raw, ok := aligned[a.Label()]
		if !ok {
			continue
		}
		e := raw.Entry(a.Label())
		if e.AxisID == "" {
			e.AxisID = a.ID
		}
		out = append(out, e)
	}
	return out
}

// Build renders all four charts. The matrix and heatmap use construct
// scores; the radars use their own level.
func (e *Engine) Build(p Profile, s Settings) Bundle {
	return Bundle{
		ClusterRadar:   e.ClusterRadar(p, s),
		ConstructRadar: e.ConstructRadar(p, s),
		Matrix:         e.SynergyMatrix(p, s),
		Heatmap:        e.DifferenceHeatmap(p, s),
	}
}

// ClusterRadar renders only the cluster radar of p.
func (e *Engine) ClusterRadar(p Profile, s Settings) Result[radar.Chart] {
	return e.Radar(p.clusterAxes(), scoreEntries(p.Clusters), s.ClusterRadar)
}

// ConstructRadar renders only the construct radar of p.
func (e *Engine) ConstructRadar(p Profile, s Settings) Result[radar.Chart] {
	return e.Radar(p.constructAxes(), scoreEntries(p.Constructs), s.ConstructRadar)
}

// SynergyMatrix renders only the construct matrix of p.
func (e *Engine) SynergyMatrix(p Profile, s Settings) Result[matrix.Matrix] {
	axes := p.constructAxes()
	return e.Matrix(model.AxisLabels(axes), alignScores(p.Constructs, axes), s.Matrix)
}

// DifferenceHeatmap renders only the construct heatmap of p.
func (e *Engine) DifferenceHeatmap(p Profile, s Settings) Result[heatmap.Heatmap] {
	axes := p.constructAxes()
	labels := model.AxisLabels(axes)
	return e.Heatmap(heatmap.FromScores(alignScores(p.Constructs, axes), labels), s.Heatmap)
}

// alignScores rekeys scores by axis label. An exact or normalized key wins;
// otherwise the radar matcher chain decides, so every chart pairs a loosely
// named score with the same axis. Axes without a match are absent.
func alignScores(scores model.ScoreMap, axes []model.AxisConfig) model.ScoreMap {
	entries := scores.Entries(nil)
	out := make(model.ScoreMap, len(axes))
	for _, a := range axes {
		if raw, ok := scores.Lookup(a.Label()); ok {
			out[a.Label()] = raw
			continue
		}
		if e, ok := radar.DefaultMatcher.Match(a, entries); ok {
			out[a.Label()] = scores[e.Name]
		}
	}
	return out
}

// scoreEntries hands every score to the radar matcher, which pairs them
// with axes by ID or name.
func scoreEntries(m model.ScoreMap) []model.ScoreEntry {
	return m.Entries(nil)
}

// ReportCharts lists the bundle's scenes for export.WriteReport.
func (b *Bundle) ReportCharts() []export.ReportChart {
	return []export.ReportChart{
		{Name: "Cluster Radar", Scene: &b.ClusterRadar.Scene},
		{Name: "Construct Radar", Scene: &b.ConstructRadar.Scene},
		{Name: "Synergy Matrix", Scene: &b.Matrix.Scene},
		{Name: "Difference Heatmap", Scene: &b.Heatmap.Scene},
	}
}

// ReportOptions fills an export.ReportOptions from the bundle and profile.
func (b *Bundle) ReportOptions(p Profile, dir string) export.ReportOptions {
	return export.ReportOptions{
		Dir:        dir,
		Subject:    p.Subject,
		Test:       p.Test,
		Clusters:   p.ClusterEntries(),
		Constructs: p.ConstructEntries(),
		Matrix:     &b.Matrix.Chart,
		Heatmap:    &b.Heatmap.Chart,
		Charts:     b.ReportCharts(),
	}
}
