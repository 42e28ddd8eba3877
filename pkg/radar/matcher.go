package radar

import (
	"strings"

	"github.com/vanderheijden86/compassviz/pkg/model"
)

// Matcher finds the score belonging to an axis.
type Matcher interface {
	Match(axis model.AxisConfig, scores []model.ScoreEntry) (model.ScoreEntry, bool)
}

// IDMatcher joins on the stable axis identifier. Scores without an AxisID
// never match.
type IDMatcher struct{}

// Match implements Matcher.
func (IDMatcher) Match(axis model.AxisConfig, scores []model.ScoreEntry) (model.ScoreEntry, bool) {
	id := strings.TrimSpace(axis.ID)
	if id == "" {
		return model.ScoreEntry{}, false
	}
	for _, s := range scores {
		if s.AxisID != "" && strings.EqualFold(strings.TrimSpace(s.AxisID), id) {
			return s, true
		}
	}
	return model.ScoreEntry{}, false
}

// FuzzyMatcher is the compatibility shim for collaborators that key scores by
// loosely formatted display names. Names are normalized (letters and digits,
// lowercased) and an axis matches a score when either normalized string
// contains the other. The first matching score wins.
type FuzzyMatcher struct{}

// Match implements Matcher.
func (FuzzyMatcher) Match(axis model.AxisConfig, scores []model.ScoreEntry) (model.ScoreEntry, bool) {
	keys := make([]string, 0, 2)
	for _, k := range []string{model.NormalizeName(axis.ID), model.NormalizeName(axis.Name)} {
		if k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return model.ScoreEntry{}, false
	}
	for _, s := range scores {
		name := model.NormalizeName(s.Name)
		if name == "" {
			continue
		}
		for _, k := range keys {
			if strings.Contains(name, k) || strings.Contains(k, name) {
				return s, true
			}
		}
	}
	return model.ScoreEntry{}, false
}

// ChainMatcher tries each matcher in turn.
type ChainMatcher []Matcher

// Match implements Matcher.
func (c ChainMatcher) Match(axis model.AxisConfig, scores []model.ScoreEntry) (model.ScoreEntry, bool) {
	for _, m := range c {
		if m == nil {
			continue
		}
		if s, ok := m.Match(axis, scores); ok {
			return s, true
		}
	}
	return model.ScoreEntry{}, false
}

// DefaultMatcher prefers the ID join and falls back to name matching.
var DefaultMatcher Matcher = ChainMatcher{IDMatcher{}, FuzzyMatcher{}}
