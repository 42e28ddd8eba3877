// Package render ties the chart builders together behind a memoizing engine.
//
// Builders are pure, so any chart can be recomputed at any time; the engine
// only saves repeated work when the same inputs are rendered again (the
// preview tabs and watch mode do this constantly).
package render

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/compassviz/pkg/debug"
	"github.com/vanderheijden86/compassviz/pkg/heatmap"
	"github.com/vanderheijden86/compassviz/pkg/matrix"
	"github.com/vanderheijden86/compassviz/pkg/metrics"
	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/radar"
	"github.com/vanderheijden86/compassviz/pkg/scene"
)

// DefaultCapacity is the number of memoized results kept by NewEngine(0).
const DefaultCapacity = 64

// Result is a built chart together with its scene.
type Result[T any] struct {
	Chart T
	Scene scene.Scene
}

// Engine builds charts and memoizes results by input hash. It is safe for
// concurrent use.
type Engine struct {
	mu       sync.Mutex
	cache    map[string]any
	capacity int
}

// NewEngine returns an engine holding up to capacity results.
func NewEngine(capacity int) *Engine {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Engine{cache: make(map[string]any, capacity), capacity: capacity}
}

// Len returns the number of memoized results.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.cache)
}

// Reset drops every memoized result.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.cache = make(map[string]any, e.capacity)
	e.mu.Unlock()
}

// Radar builds a radar chart.
func (e *Engine) Radar(axes []model.AxisConfig, scores []model.ScoreEntry, opts radar.Options) Result[radar.Chart] {
	key := cacheKey("radar", axes, scores, opts, fmt.Sprintf("%T", opts.Matcher))
	return memo(e, key, func() Result[radar.Chart] {
		defer metrics.Track(metrics.RadarBuild)()
		c := radar.Build(axes, scores, opts)
		return Result[radar.Chart]{Chart: c, Scene: c.Scene()}
	})
}

// Matrix builds a pairwise relationship matrix.
func (e *Engine) Matrix(labels []string, scores model.ScoreMap, opts matrix.Options) Result[matrix.Matrix] {
	key := cacheKey("matrix", labels, scores, opts)
	return memo(e, key, func() Result[matrix.Matrix] {
		defer metrics.Track(metrics.MatrixBuild)()
		m := matrix.Build(labels, scores, opts)
		return Result[matrix.Matrix]{Chart: m, Scene: m.Scene()}
	})
}

// Heatmap builds a difference heatmap.
func (e *Engine) Heatmap(inputs []heatmap.Input, opts heatmap.Options) Result[heatmap.Heatmap] {
	key := cacheKey("heatmap", inputs, opts)
	return memo(e, key, func() Result[heatmap.Heatmap] {
		defer metrics.Track(metrics.HeatmapBuild)()
		h := heatmap.Build(inputs, opts)
		return Result[heatmap.Heatmap]{Chart: h, Scene: h.Scene()}
	})
}

// memo returns the cached result for key or builds and stores it. An empty
// key bypasses the cache.
func memo[T any](e *Engine, key string, build func() Result[T]) Result[T] {
	if key == "" {
		metrics.RenderCache.Miss()
		return build()
	}
	e.mu.Lock()
	if v, ok := e.cache[key]; ok {
		if r, ok := v.(Result[T]); ok {
			e.mu.Unlock()
			metrics.RenderCache.Hit()
			return r
		}
	}
	e.mu.Unlock()

	metrics.RenderCache.Miss()
	r := build()

	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.cache) >= e.capacity {
		for k := range e.cache {
			delete(e.cache, k)
			break
		}
	}
	e.cache[key] = r
	return r
}

// cacheKey hashes the JSON encoding of parts. Inputs that cannot be encoded
// (non-finite floats) yield "" and are never cached.
func cacheKey(kind string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		debug.Log("render: %s inputs not cacheable: %v", kind, err)
		return ""
	}
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
