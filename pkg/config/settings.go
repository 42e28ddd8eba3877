package config

import (
	"github.com/vanderheijden86/compassviz/pkg/colorscale"
	"github.com/vanderheijden86/compassviz/pkg/matrix"
	"github.com/vanderheijden86/compassviz/pkg/render"
)

// Settings translates the configuration into per-chart builder options.
// The config must have passed Validate.
func (c Config) Settings() (render.Settings, error) {
	if err := c.Validate(); err != nil {
		return render.Settings{}, err
	}
	s := render.DefaultSettings()

	th := colorscale.Thresholds{
		ConflictDelta: c.Thresholds.ConflictDelta,
		FlowFloor:     c.Thresholds.FlowFloor,
		FlowDelta:     c.Thresholds.FlowDelta,
	}

	s.ClusterRadar.Width = c.Radar.Cluster.Width
	s.ClusterRadar.Height = c.Radar.Cluster.Height
	s.ClusterRadar.Radius = c.Radar.Cluster.Radius
	s.ClusterRadar.WrapAt = c.Radar.WrapAt
	s.ClusterRadar.Fill = colorscale.MustParseHex(c.Colors.ClusterFill)
	s.ClusterRadar.Stroke = colorscale.MustParseHex(c.Colors.ClusterStroke)

	s.ConstructRadar.Width = c.Radar.Construct.Width
	s.ConstructRadar.Height = c.Radar.Construct.Height
	s.ConstructRadar.Radius = c.Radar.Construct.Radius
	s.ConstructRadar.WrapAt = c.Radar.WrapAt
	s.ConstructRadar.Fill = colorscale.MustParseHex(c.Colors.ConstructFill)
	s.ConstructRadar.Stroke = colorscale.MustParseHex(c.Colors.ConstructStroke)

	mode, _ := matrix.ParseMode(c.Matrix.Mode)
	s.Matrix.Mode = mode
	s.Matrix.Thresholds = th
	s.Matrix.Width = c.Matrix.Width
	s.Matrix.RotateAbove = c.Matrix.RotateAbove

	s.Heatmap.Cell = c.Heatmap.Cell
	s.Heatmap.WrapAt = c.Heatmap.WrapAt
	s.Heatmap.Scale = colorscale.DifferenceScale{
		Dark:   colorscale.MustParseHex(c.Colors.Difference.Dark),
		Medium: colorscale.MustParseHex(c.Colors.Difference.Medium),
		Pale:   colorscale.MustParseHex(c.Colors.Difference.Pale),
	}
	return s, nil
}
