// Package metrics records how long each rendering stage of cviz takes and
// how often the render engine's memo cache is hit.
//
// Collection is off unless SetEnabled(true) is called (the CLI does so for
// --metrics) or CVIZ_METRICS=1 is set. Stages are timed with Track:
//
//	defer metrics.Track(metrics.RadarBuild)()
package metrics

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var enabled atomic.Bool

func init() {
	enabled.Store(os.Getenv("CVIZ_METRICS") == "1")
}

// Enabled reports whether stages and cache lookups are being recorded.
func Enabled() bool {
	return enabled.Load()
}

// SetEnabled switches collection on or off.
func SetEnabled(e bool) {
	enabled.Store(e)
}

// Stage names one timed step of producing a chart.
type Stage string

// Build stages are keyed by chart kind; render stages by output backend.
const (
	RadarBuild   Stage = "radar_build"
	MatrixBuild  Stage = "matrix_build"
	HeatmapBuild Stage = "heatmap_build"
	SVGRender    Stage = "svg_render"
	PNGRender    Stage = "png_render"
	JSONRender   Stage = "json_render"
	ScoreLoad    Stage = "score_load"
	ReportWrite  Stage = "report_write"
)

// Stages lists every stage in report order.
var Stages = []Stage{
	ScoreLoad,
	RadarBuild, MatrixBuild, HeatmapBuild,
	SVGRender, PNGRender, JSONRender,
	ReportWrite,
}

type sample struct {
	count    int64
	total    time.Duration
	min, max time.Duration
}

var (
	mu      sync.Mutex
	samples = map[Stage]*sample{}
)

// Record adds one measurement for stage.
func Record(stage Stage, d time.Duration) {
	if !Enabled() {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	s, ok := samples[stage]
	if !ok {
		s = &sample{min: d, max: d}
		samples[stage] = s
	}
	s.count++
	s.total += d
	s.min = min(s.min, d)
	s.max = max(s.max, d)
}

// Track starts timing stage and returns the function that stops it.
func Track(stage Stage) func() {
	if !Enabled() {
		return func() {}
	}
	start := time.Now()
	return func() { Record(stage, time.Since(start)) }
}

// TimingStats is a snapshot of one stage.
type TimingStats struct {
	Name    string  `json:"name"`
	Count   int64   `json:"count"`
	TotalMs float64 `json:"total_ms"`
	AvgMs   float64 `json:"avg_ms"`
	MaxMs   float64 `json:"max_ms"`
	MinMs   float64 `json:"min_ms"`
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// Timings returns the stages that recorded anything, in Stages order.
func Timings() []TimingStats {
	mu.Lock()
	defer mu.Unlock()
	var out []TimingStats
	for _, stage := range Stages {
		s, ok := samples[stage]
		if !ok || s.count == 0 {
			continue
		}
		out = append(out, TimingStats{
			Name:    string(stage),
			Count:   s.count,
			TotalMs: ms(s.total),
			AvgMs:   ms(s.total / time.Duration(s.count)),
			MaxMs:   ms(s.max),
			MinMs:   ms(s.min),
		})
	}
	return out
}

// Reset drops every recorded timing and cache count.
func Reset() {
	mu.Lock()
	samples = map[Stage]*sample{}
	mu.Unlock()
	for _, c := range AllCacheMetrics() {
		c.Reset()
	}
}

// WriteReport prints one line per timed stage followed by the cache stats.
func WriteReport(w io.Writer) error {
	for _, st := range Timings() {
		if _, err := fmt.Fprintf(w, "%-14s n=%-4d avg=%.2fms max=%.2fms\n", st.Name, st.Count, st.AvgMs, st.MaxMs); err != nil {
			return err
		}
	}
	for _, st := range AllCacheStats() {
		if _, err := fmt.Fprintf(w, "%-14s hits=%d misses=%d rate=%.0f%%\n", st.Name, st.Hits, st.Misses, st.HitRate*100); err != nil {
			return err
		}
	}
	return nil
}
