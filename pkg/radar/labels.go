package radar

import (
	"strings"

	"github.com/vanderheijden86/compassviz/pkg/scene"
)

// AnchorRule assigns text alignment to labels whose clock angle falls in
// [From, To).
type AnchorRule struct {
	From     float64
	To       float64
	Anchor   scene.Anchor
	Baseline scene.Baseline
}

// QuadrantRules place labels around the chart: centred above the top,
// left-aligned on the right, centred below the bottom, right-aligned on the
// left.
var QuadrantRules = []AnchorRule{
	{From: 0, To: 45, Anchor: scene.AnchorMiddle, Baseline: scene.BaselineBottom},
	{From: 45, To: 135, Anchor: scene.AnchorStart, Baseline: scene.BaselineMiddle},
	{From: 135, To: 225, Anchor: scene.AnchorMiddle, Baseline: scene.BaselineTop},
	{From: 225, To: 315, Anchor: scene.AnchorEnd, Baseline: scene.BaselineMiddle},
	{From: 315, To: 360, Anchor: scene.AnchorMiddle, Baseline: scene.BaselineBottom},
}

// AnchorFor looks up the alignment for a clock angle in [0, 360).
func AnchorFor(rules []AnchorRule, clock float64) (scene.Anchor, scene.Baseline) {
	for _, r := range rules {
		if clock >= r.From && clock < r.To {
			return r.Anchor, r.Baseline
		}
	}
	return scene.AnchorMiddle, scene.BaselineMiddle
}

// SingleLineRule keeps a label on one line when its lowercased text contains
// every keyword.
type SingleLineRule struct {
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Matches reports whether label contains all keywords.
func (r SingleLineRule) Matches(label string) bool {
	if len(r.Keywords) == 0 {
		return false
	}
	lower := strings.ToLower(label)
	for _, k := range r.Keywords {
		if !strings.Contains(lower, strings.ToLower(k)) {
			return false
		}
	}
	return true
}

// DefaultSingleLineRules are the labels that read badly when broken.
var DefaultSingleLineRules = []SingleLineRule{
	{Keywords: []string{"leadership", "growth", "orientation"}},
	{Keywords: []string{"caring", "connection"}},
}

// DefaultWrapAt is the label length above which multi-word labels wrap.
const DefaultWrapAt = 14

// WrapLabel splits a long label onto two lines. Exceptions stay on one line;
// labels with an "&" break after the ampersand; other multi-word labels
// break at the middle word boundary.
func WrapLabel(label string, wrapAt int, exceptions []SingleLineRule) []string {
	label = strings.TrimSpace(label)
	if label == "" {
		return []string{""}
	}
	for _, r := range exceptions {
		if r.Matches(label) {
			return []string{label}
		}
	}
	words := strings.Fields(label)
	if len([]rune(label)) <= wrapAt || len(words) < 2 {
		return []string{label}
	}
	if i := strings.Index(label, "&"); i >= 0 {
		left := strings.TrimSpace(label[:i])
		right := strings.TrimSpace(label[i+1:])
		if left != "" && right != "" {
			return []string{left + " &", right}
		}
	}
	mid := (len(words) + 1) / 2
	return []string{
		strings.Join(words[:mid], " "),
		strings.Join(words[mid:], " "),
	}
}
