package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func enable(t *testing.T) {
	t.Helper()
	SetEnabled(true)
	Reset()
	t.Cleanup(func() {
		SetEnabled(false)
		Reset()
	})
}

func TestRecord_Stats(t *testing.T) {
	enable(t)
	Record(RadarBuild, 10*time.Millisecond)
	Record(RadarBuild, 30*time.Millisecond)

	got := Timings()
	if len(got) != 1 {
		t.Fatalf("Timings = %+v, want one stage", got)
	}
	s := got[0]
	if s.Name != "radar_build" || s.Count != 2 {
		t.Fatalf("stats = %+v", s)
	}
	if s.MinMs != 10 || s.MaxMs != 30 || s.AvgMs != 20 || s.TotalMs != 40 {
		t.Errorf("stats = %+v", s)
	}
}

func TestTimings_StageOrder(t *testing.T) {
	enable(t)
	Record(ReportWrite, time.Millisecond)
	Record(SVGRender, time.Millisecond)
	Record(ScoreLoad, time.Millisecond)

	var names []string
	for _, s := range Timings() {
		names = append(names, s.Name)
	}
	if got := strings.Join(names, ","); got != "score_load,svg_render,report_write" {
		t.Errorf("order = %s", got)
	}
}

func TestTrack(t *testing.T) {
	enable(t)
	Track(HeatmapBuild)()
	if got := Timings(); len(got) != 1 || got[0].Count != 1 {
		t.Errorf("Timings = %+v", got)
	}
}

func TestDisabledByDefault(t *testing.T) {
	SetEnabled(false)
	Reset()

	Track(MatrixBuild)()
	Record(PNGRender, time.Second)
	RenderCache.Hit()
	if len(Timings()) != 0 || RenderCache.Hits() != 0 {
		t.Error("disabled metrics recorded data")
	}
}

func TestCacheMetric(t *testing.T) {
	enable(t)
	c := newCacheMetric("cache")
	if c.HitRate() != 0 {
		t.Errorf("empty HitRate = %v", c.HitRate())
	}
	c.Hit()
	c.Hit()
	c.Hit()
	c.Miss()
	if got := c.HitRate(); got != 0.75 {
		t.Errorf("HitRate = %v, want 0.75", got)
	}
}

func TestWriteReport(t *testing.T) {
	enable(t)
	var buf bytes.Buffer
	if err := WriteReport(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty report wrote %q", buf.String())
	}

	Record(SVGRender, 2*time.Millisecond)
	RenderCache.Miss()
	RenderCache.Hit()
	if err := WriteReport(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"svg_render", "n=1", "render_cache", "hits=1 misses=1 rate=50%"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
