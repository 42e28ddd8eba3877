package model

// Level distinguishes the two taxonomy levels an axis list can describe.
type Level string

const (
	LevelCluster   Level = "cluster"
	LevelConstruct Level = "construct"
)

// DefaultClusters is the canonical cluster list used when no axis list is
// supplied.
var DefaultClusters = []AxisConfig{
	{ID: "drive-achievement", Name: "Drive & Achievement", Order: 1},
	{ID: "caring-connection", Name: "Caring & Connection", Order: 2},
	{ID: "leadership-growth-orientation", Name: "Leadership Growth Orientation", Order: 3},
	{ID: "thinking-learning", Name: "Thinking & Learning", Order: 4},
	{ID: "resilience-adaptability", Name: "Resilience & Adaptability", Order: 5},
	{ID: "integrity-responsibility", Name: "Integrity & Responsibility", Order: 6},
}

// DefaultConstructs is the canonical 18-construct list, grouped three per
// cluster in cluster order.
var DefaultConstructs = []AxisConfig{
	{ID: "achievement-motivation", Name: "Achievement Motivation", Order: 1},
	{ID: "persistence", Name: "Persistence", Order: 2},
	{ID: "initiative", Name: "Initiative", Order: 3},
	{ID: "empathy", Name: "Empathy", Order: 4},
	{ID: "collaboration", Name: "Collaboration", Order: 5},
	{ID: "interpersonal-warmth", Name: "Interpersonal Warmth", Order: 6},
	{ID: "influence", Name: "Influence", Order: 7},
	{ID: "vision", Name: "Vision", Order: 8},
	{ID: "growth-mindset", Name: "Growth Mindset", Order: 9},
	{ID: "curiosity", Name: "Curiosity", Order: 10},
	{ID: "critical-thinking", Name: "Critical Thinking", Order: 11},
	{ID: "creativity", Name: "Creativity", Order: 12},
	{ID: "emotional-regulation", Name: "Emotional Regulation", Order: 13},
	{ID: "optimism", Name: "Optimism", Order: 14},
	{ID: "adaptability", Name: "Adaptability", Order: 15},
	{ID: "honesty", Name: "Honesty", Order: 16},
	{ID: "accountability", Name: "Accountability", Order: 17},
	{ID: "self-discipline", Name: "Self-Discipline", Order: 18},
}

// DefaultAxes returns a copy of the default list for level.
func DefaultAxes(level Level) []AxisConfig {
	src := DefaultClusters
	if level == LevelConstruct {
		src = DefaultConstructs
	}
	out := make([]AxisConfig, len(src))
	copy(out, src)
	return out
}
