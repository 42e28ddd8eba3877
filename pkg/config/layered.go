package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CVIZ_MATRIX_MODE.
const EnvPrefix = "CVIZ"

// NewViper returns a viper instance primed with the defaults, the config file
// at path (ConfigPath when empty) and CVIZ_* environment variables. Callers
// bind their flags before LoadLayered.
func NewViper(path string) *viper.Viper {
	v := viper.New()
	if path == "" {
		path = ConfigPath()
	}
	if path != "" {
		v.SetConfigFile(path)
	}
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())
	return v
}

// LoadLayered resolves defaults < file < env < bound flags into a Config.
// A missing config file is not an error.
func LoadLayered(v *viper.Viper) (Config, error) {
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return DefaultConfig(), fmt.Errorf("reading config: %w", err)
			}
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("unable to unmarshal config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during
// Unmarshal.
func setDefaults(v *viper.Viper, c Config) {
	defaults := map[string]any{
		"thresholds.conflict_delta": c.Thresholds.ConflictDelta,
		"thresholds.flow_floor":     c.Thresholds.FlowFloor,
		"thresholds.flow_delta":     c.Thresholds.FlowDelta,
		"colors.difference.dark":    c.Colors.Difference.Dark,
		"colors.difference.medium":  c.Colors.Difference.Medium,
		"colors.difference.pale":    c.Colors.Difference.Pale,
		"colors.cluster_fill":       c.Colors.ClusterFill,
		"colors.cluster_stroke":     c.Colors.ClusterStroke,
		"colors.construct_fill":     c.Colors.ConstructFill,
		"colors.construct_stroke":   c.Colors.ConstructStroke,
		"radar.wrap_at":             c.Radar.WrapAt,
		"radar.cluster.width":       c.Radar.Cluster.Width,
		"radar.cluster.height":      c.Radar.Cluster.Height,
		"radar.cluster.radius":      c.Radar.Cluster.Radius,
		"radar.construct.width":     c.Radar.Construct.Width,
		"radar.construct.height":    c.Radar.Construct.Height,
		"radar.construct.radius":    c.Radar.Construct.Radius,
		"matrix.width":              c.Matrix.Width,
		"matrix.rotate_above":       c.Matrix.RotateAbove,
		"matrix.mode":               c.Matrix.Mode,
		"heatmap.cell":              c.Heatmap.Cell,
		"heatmap.wrap_at":           c.Heatmap.WrapAt,
		"output.dir":                c.Output.Dir,
		"output.format":             c.Output.Format,
		"sources.database":          c.Sources.Database,
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}
