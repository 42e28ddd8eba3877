// Package config handles loading and saving cviz configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/cviz/config.yaml
//   - Data:    ~/.local/share/cviz/ (default results database)
//
// The file only tunes presentation: classification thresholds, colours,
// chart sizes and output defaults. Flags and CVIZ_* environment variables
// are layered on top through viper (see LoadLayered).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/compassviz/pkg/colorscale"
	"github.com/vanderheijden86/compassviz/pkg/matrix"
)

// ThresholdsConfig holds the matrix classification thresholds on the raw
// 0-5 average scale.
type ThresholdsConfig struct {
	ConflictDelta float64 `yaml:"conflict_delta" mapstructure:"conflict_delta"`
	FlowFloor     float64 `yaml:"flow_floor" mapstructure:"flow_floor"`
	FlowDelta     float64 `yaml:"flow_delta" mapstructure:"flow_delta"`
}

// DifferenceColors are the heatmap ramp stops as hex strings.
type DifferenceColors struct {
	Dark   string `yaml:"dark" mapstructure:"dark"`
	Medium string `yaml:"medium" mapstructure:"medium"`
	Pale   string `yaml:"pale" mapstructure:"pale"`
}

// ColorsConfig holds hex colour overrides.
type ColorsConfig struct {
	Difference      DifferenceColors `yaml:"difference" mapstructure:"difference"`
	ClusterFill     string           `yaml:"cluster_fill" mapstructure:"cluster_fill"`
	ClusterStroke   string           `yaml:"cluster_stroke" mapstructure:"cluster_stroke"`
	ConstructFill   string           `yaml:"construct_fill" mapstructure:"construct_fill"`
	ConstructStroke string           `yaml:"construct_stroke" mapstructure:"construct_stroke"`
}

// ChartSize is a canvas size with the radar radius.
type ChartSize struct {
	Width  float64 `yaml:"width" mapstructure:"width"`
	Height float64 `yaml:"height" mapstructure:"height"`
	Radius float64 `yaml:"radius" mapstructure:"radius"`
}

// RadarConfig tunes both radar presets.
type RadarConfig struct {
	WrapAt    int       `yaml:"wrap_at" mapstructure:"wrap_at"` // label wrap threshold in characters
	Cluster   ChartSize `yaml:"cluster" mapstructure:"cluster"`
	Construct ChartSize `yaml:"construct" mapstructure:"construct"`
}

// MatrixConfig tunes the pairwise matrix.
type MatrixConfig struct {
	Width       float64 `yaml:"width" mapstructure:"width"`
	RotateAbove int     `yaml:"rotate_above" mapstructure:"rotate_above"`
	Mode        string  `yaml:"mode" mapstructure:"mode"` // delta or magnitude
}

// HeatmapConfig tunes the difference heatmap.
type HeatmapConfig struct {
	Cell   float64 `yaml:"cell" mapstructure:"cell"`
	WrapAt int     `yaml:"wrap_at" mapstructure:"wrap_at"`
}

// OutputConfig holds export defaults.
type OutputConfig struct {
	Dir    string `yaml:"dir" mapstructure:"dir"`
	Format string `yaml:"format" mapstructure:"format"` // svg, png or json
}

// SourcesConfig locates score data.
type SourcesConfig struct {
	Database string `yaml:"database,omitempty" mapstructure:"database"`
}

// Config is the top-level configuration for cviz.
type Config struct {
	Thresholds ThresholdsConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Colors     ColorsConfig     `yaml:"colors" mapstructure:"colors"`
	Radar      RadarConfig      `yaml:"radar" mapstructure:"radar"`
	Matrix     MatrixConfig     `yaml:"matrix" mapstructure:"matrix"`
	Heatmap    HeatmapConfig    `yaml:"heatmap" mapstructure:"heatmap"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Sources    SourcesConfig    `yaml:"sources,omitempty" mapstructure:"sources"`
}

// DefaultConfig returns a Config with the stock presentation.
func DefaultConfig() Config {
	th := colorscale.DefaultThresholds()
	diff := colorscale.DefaultDifferenceScale()
	return Config{
		Thresholds: ThresholdsConfig{
			ConflictDelta: th.ConflictDelta,
			FlowFloor:     th.FlowFloor,
			FlowDelta:     th.FlowDelta,
		},
		Colors: ColorsConfig{
			Difference: DifferenceColors{
				Dark:   diff.Dark.Hex(),
				Medium: diff.Medium.Hex(),
				Pale:   diff.Pale.Hex(),
			},
			ClusterFill:     "#6366f1",
			ClusterStroke:   "#4338ca",
			ConstructFill:   "#10b981",
			ConstructStroke: "#047857",
		},
		Radar: RadarConfig{
			WrapAt:    14,
			Cluster:   ChartSize{Width: 560, Height: 520, Radius: 170},
			Construct: ChartSize{Width: 760, Height: 720, Radius: 240},
		},
		Matrix: MatrixConfig{
			Width:       760,
			RotateAbove: 8,
			Mode:        matrix.ModeDelta.String(),
		},
		Heatmap: HeatmapConfig{
			Cell:   30,
			WrapAt: 16,
		},
		Output: OutputConfig{
			Dir:    ".",
			Format: "svg",
		},
	}
}

// ConfigDir returns the XDG config directory for cviz.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "cviz")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cviz")
}

// DataDir returns the XDG data directory for cviz.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "cviz")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "cviz")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// DatabasePath returns the configured results database, falling back to
// results.db in the data directory.
func (c Config) DatabasePath() string {
	if c.Sources.Database != "" {
		return expandHome(c.Sources.Database)
	}
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "results.db")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. Keys absent from the file keep
// their defaults. Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Output.Dir = expandHome(c.Output.Dir)
	c.Sources.Database = expandHome(c.Sources.Database)
	c.Output.Format = strings.ToLower(strings.TrimPrefix(c.Output.Format, "."))
	c.Matrix.Mode = strings.ToLower(strings.TrimSpace(c.Matrix.Mode))
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ConfigError describes one invalid field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Thresholds.ConflictDelta <= 0 {
		bad("thresholds.conflict_delta", "must be positive, got %g", c.Thresholds.ConflictDelta)
	}
	if c.Thresholds.FlowDelta <= 0 {
		bad("thresholds.flow_delta", "must be positive, got %g", c.Thresholds.FlowDelta)
	}
	if c.Thresholds.FlowFloor < 0 || c.Thresholds.FlowFloor > 5 {
		bad("thresholds.flow_floor", "must be within 0-5, got %g", c.Thresholds.FlowFloor)
	}

	for field, hex := range map[string]string{
		"colors.difference.dark":   c.Colors.Difference.Dark,
		"colors.difference.medium": c.Colors.Difference.Medium,
		"colors.difference.pale":   c.Colors.Difference.Pale,
		"colors.cluster_fill":      c.Colors.ClusterFill,
		"colors.cluster_stroke":    c.Colors.ClusterStroke,
		"colors.construct_fill":    c.Colors.ConstructFill,
		"colors.construct_stroke":  c.Colors.ConstructStroke,
	} {
		if _, err := colorscale.ParseHex(hex); err != nil {
			bad(field, "%v", err)
		}
	}

	for field, size := range map[string]ChartSize{"radar.cluster": c.Radar.Cluster, "radar.construct": c.Radar.Construct} {
		if size.Width <= 0 || size.Height <= 0 {
			bad(field, "width and height must be positive")
		}
		if size.Radius < 0 {
			bad(field+".radius", "must not be negative")
		}
	}
	if c.Radar.WrapAt <= 0 {
		bad("radar.wrap_at", "must be positive, got %d", c.Radar.WrapAt)
	}
	if c.Matrix.Width <= 0 {
		bad("matrix.width", "must be positive, got %g", c.Matrix.Width)
	}
	if _, err := matrix.ParseMode(c.Matrix.Mode); err != nil {
		bad("matrix.mode", "%v", err)
	}
	if c.Heatmap.Cell <= 0 {
		bad("heatmap.cell", "must be positive, got %g", c.Heatmap.Cell)
	}
	if c.Heatmap.WrapAt <= 0 {
		bad("heatmap.wrap_at", "must be positive, got %d", c.Heatmap.WrapAt)
	}
	switch c.Output.Format {
	case "svg", "png", "json":
	default:
		bad("output.format", "unsupported format %q", c.Output.Format)
	}
	return errors.Join(errs...)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
