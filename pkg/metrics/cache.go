package metrics

import "sync/atomic"

// CacheMetric counts hits and misses of a memo cache.
type CacheMetric struct {
	name   string
	hits   int64
	misses int64
}

func newCacheMetric(name string) *CacheMetric {
	return &CacheMetric{name: name}
}

// Hit records a cache hit.
func (m *CacheMetric) Hit() {
	if Enabled() {
		atomic.AddInt64(&m.hits, 1)
	}
}

// Miss records a cache miss.
func (m *CacheMetric) Miss() {
	if Enabled() {
		atomic.AddInt64(&m.misses, 1)
	}
}

// Name returns the metric name.
func (m *CacheMetric) Name() string {
	return m.name
}

// Hits returns the number of recorded hits.
func (m *CacheMetric) Hits() int64 {
	return atomic.LoadInt64(&m.hits)
}

// Misses returns the number of recorded misses.
func (m *CacheMetric) Misses() int64 {
	return atomic.LoadInt64(&m.misses)
}

// HitRate returns hits / (hits + misses), or 0 with no lookups.
func (m *CacheMetric) HitRate() float64 {
	h, mi := m.Hits(), m.Misses()
	if h+mi == 0 {
		return 0
	}
	return float64(h) / float64(h+mi)
}

// Reset clears the counters.
func (m *CacheMetric) Reset() {
	atomic.StoreInt64(&m.hits, 0)
	atomic.StoreInt64(&m.misses, 0)
}

// CacheStats is a snapshot of a cache metric.
type CacheStats struct {
	Name    string  `json:"name"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// Stats returns a snapshot.
func (m *CacheMetric) Stats() CacheStats {
	return CacheStats{Name: m.name, Hits: m.Hits(), Misses: m.Misses(), HitRate: m.HitRate()}
}

// RenderCache tracks the render engine's scene memo.
var RenderCache = newCacheMetric("render_cache")

// AllCacheMetrics returns all registered cache metrics.
func AllCacheMetrics() []*CacheMetric {
	return []*CacheMetric{RenderCache}
}

// AllCacheStats returns stats for cache metrics that saw any lookups.
func AllCacheStats() []CacheStats {
	var out []CacheStats
	for _, m := range AllCacheMetrics() {
		if m.Hits()+m.Misses() > 0 {
			out = append(out, m.Stats())
		}
	}
	return out
}
