package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vanderheijden86/compassviz/internal/datasource"
	"github.com/vanderheijden86/compassviz/pkg/config"
	"github.com/vanderheijden86/compassviz/pkg/debug"
	"github.com/vanderheijden86/compassviz/pkg/export"
	"github.com/vanderheijden86/compassviz/pkg/loader"
	"github.com/vanderheijden86/compassviz/pkg/metrics"
	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/render"
	"github.com/vanderheijden86/compassviz/pkg/scene"
	"github.com/vanderheijden86/compassviz/pkg/ui"
)

// flagKeys maps command flags onto config keys so viper layers them over the
// file and the environment.
var flagKeys = map[string]string{
	"mode":     "matrix.mode",
	"format":   "output.format",
	"out-dir":  "output.dir",
	"database": "sources.database",
	"cell":     "heatmap.cell",
}

// app carries the state shared by all subcommands for one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	v        *viper.Viper
	cfg      config.Config
	settings render.Settings
	engine   *render.Engine
	log      *zap.Logger

	cpuProfile    *os.File
	reportMetrics bool
	copyFn     func(string) error
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		engine: render.NewEngine(render.DefaultCapacity),
		log:    zap.NewNop(),
		copyFn: ui.CopyToClipboard,
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cviz",
		Short: "Render Strengths Compass score charts",
		Long: `cviz turns participant scores into charts.

Scores come from a JSON/YAML score file, a directory holding one, or a SQLite
results database (see 'cviz import'). Settings are read from
~/.config/cviz/config.yaml and may be overridden with CVIZ_* environment
variables and flags.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to config file (default ~/.config/cviz/config.yaml)")
	pf.BoolP("verbose", "v", false, "Log debug output to stderr")
	pf.String("cpu-profile", "", "Write CPU profile to file")
	pf.Bool("metrics", false, "Print timing and cache metrics on exit")
	pf.StringP("source", "s", "", "Score file, directory or results database")
	pf.Int64("result", 0, "Result id when the source is a database (0 = latest)")
	pf.String("cluster-axes", "", "YAML/JSON file listing cluster axes")
	pf.String("construct-axes", "", "YAML/JSON file listing construct axes")

	root.AddCommand(
		a.radarCmd(),
		a.matrixCmd(),
		a.heatmapCmd(),
		a.reportCmd(),
		a.watchCmd(),
		a.scoresCmd(),
		a.diffCmd(),
		a.previewCmd(),
		a.importCmd(),
		a.resultsCmd(),
		a.sourcesCmd(),
		a.configCmd(),
		a.versionCmd(),
	)
	return root
}

// setup configures logging, profiling and the layered config.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if err := debug.Configure(verbose || debug.Enabled()); err != nil {
		return err
	}
	a.log = debug.Logger()

	if on, _ := cmd.Flags().GetBool("metrics"); on {
		metrics.Reset()
		metrics.SetEnabled(true)
		a.reportMetrics = true
	}

	if path, _ := cmd.Flags().GetString("cpu-profile"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		a.cpuProfile = f
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	a.v = config.NewViper(cfgPath)
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind --%s: %w", name, err)
			}
		}
	}
	cfg, err := config.LoadLayered(a.v)
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	a.cfg, a.settings = cfg, settings
	a.log.Debug("config loaded",
		zap.String("file", a.v.ConfigFileUsed()),
		zap.String("matrix_mode", cfg.Matrix.Mode),
		zap.String("format", cfg.Output.Format))
	return nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	if a.cpuProfile != nil {
		pprof.StopCPUProfile()
		a.cpuProfile.Close()
		a.cpuProfile = nil
	}
	if !a.reportMetrics {
		return nil
	}
	metrics.SetEnabled(false)
	return metrics.WriteReport(a.stderr)
}

// sourcePath resolves --source, then CVIZ_SCORES_DIR, then the configured
// database when it exists, then the working directory.
func (a *app) sourcePath(cmd *cobra.Command) string {
	if s, _ := cmd.Flags().GetString("source"); s != "" {
		return s
	}
	if dir := os.Getenv(loader.ScoresDirEnvVar); dir != "" {
		return dir
	}
	if db := a.cfg.DatabasePath(); db != "" {
		if _, err := os.Stat(db); err == nil {
			return db
		}
	}
	return "."
}

// loadProfile reads the selected source and applies axis list overrides.
func (a *app) loadProfile(cmd *cobra.Command) (render.Profile, datasource.DataSource, error) {
	resultID, _ := cmd.Flags().GetInt64("result")
	p, src, err := datasource.LoadProfile(a.sourcePath(cmd), resultID)
	if err != nil {
		return p, src, err
	}
	a.log.Debug("profile loaded",
		zap.String("source", src.Path),
		zap.String("type", string(src.Type)),
		zap.Int("clusters", len(p.Clusters)),
		zap.Int("constructs", len(p.Constructs)))

	if err := a.overrideAxes(cmd, "cluster-axes", &p.ClusterAxes); err != nil {
		return p, src, err
	}
	if err := a.overrideAxes(cmd, "construct-axes", &p.ConstructAxes); err != nil {
		return p, src, err
	}
	a.warnUnmatched(p)
	return p, src, nil
}

func (a *app) overrideAxes(cmd *cobra.Command, flag string, dst *[]model.AxisConfig) error {
	path, _ := cmd.Flags().GetString(flag)
	if path == "" {
		return nil
	}
	axes, err := loader.LoadAxes(path)
	if err != nil {
		return fmt.Errorf("--%s: %w", flag, err)
	}
	*dst = axes
	return nil
}

func (a *app) warnUnmatched(p render.Profile) {
	clusterAxes := p.ClusterAxes
	if len(clusterAxes) == 0 {
		clusterAxes = model.DefaultAxes(model.LevelCluster)
	}
	constructAxes := p.ConstructAxes
	if len(constructAxes) == 0 {
		constructAxes = model.DefaultAxes(model.LevelConstruct)
	}
	if names := loader.UnmatchedScores(p.Clusters, clusterAxes); len(names) > 0 {
		a.log.Warn("cluster scores match no axis", zap.Strings("names", names))
	}
	if names := loader.UnmatchedScores(p.Constructs, constructAxes); len(names) > 0 {
		a.log.Warn("construct scores match no axis", zap.Strings("names", names))
	}
}

// build loads the profile and lays out every chart.
func (a *app) build(cmd *cobra.Command) (render.Profile, render.Bundle, error) {
	p, _, err := a.loadProfile(cmd)
	if err != nil {
		return p, render.Bundle{}, err
	}
	return p, a.engine.Build(p, a.settings), nil
}

// addOutputFlags registers the flags shared by single-chart commands.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output file ('-' for stdout; default <out-dir>/<chart>.<format>)")
	cmd.Flags().String("format", "", "Output format: svg, png or json")
	cmd.Flags().String("out-dir", "", "Directory for default output paths")
	cmd.Flags().Bool("copy", false, "Copy the SVG markup to the clipboard")
}

// writeChart writes s to --output (or the default path) and honours --copy.
func (a *app) writeChart(cmd *cobra.Command, s *scene.Scene, stem string) error {
	out, _ := cmd.Flags().GetString("output")
	format, err := export.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return err
	}

	switch {
	case out == "-":
		if err := export.Render(a.stdout, format, s); err != nil {
			return err
		}
	default:
		opts := export.ChartOptions{Path: out, Scene: s}
		if cmd.Flags().Changed("format") {
			opts.Format = string(format)
		}
		if out == "" {
			opts.Path = filepath.Join(a.cfg.Output.Dir, stem+"."+string(format))
		} else if filepath.Ext(out) == "" {
			opts.Format = string(format)
			opts.Path = out + "." + string(format)
		}
		if err := export.SaveChart(opts); err != nil {
			return err
		}
		fmt.Fprintf(a.stderr, "Wrote %s\n", opts.Path)
	}

	if cp, _ := cmd.Flags().GetBool("copy"); cp {
		var buf bytes.Buffer
		if err := export.RenderSVG(&buf, s); err != nil {
			return err
		}
		if err := a.copyFn(buf.String()); err != nil {
			return err
		}
		fmt.Fprintln(a.stderr, "Copied SVG to clipboard")
	}
	return nil
}
