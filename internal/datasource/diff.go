package datasource

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/render"
)

// ProfileDiff represents differences between two participant results
type ProfileDiff struct {
	// SourceA labels the first result
	SourceA string
	// SourceB labels the second result
	SourceB string
	// MissingInA contains axis names scored in B but not in A
	MissingInA []string
	// MissingInB contains axis names scored in A but not in B
	MissingInB []string
	// Changes contains every axis scored in both, largest move first
	Changes []ScoreChange
}

// ScoreChange is the movement of one axis between two results.
type ScoreChange struct {
	Level model.Level `json:"level"`
	Name  string      `json:"name"`
	A     float64     `json:"a"`
	B     float64     `json:"b"`
}

// Delta is B minus A, in percentage points.
func (c ScoreChange) Delta() float64 {
	return c.B - c.A
}

// HasDifferences returns true if any axis is missing or moved.
func (d ProfileDiff) HasDifferences() bool {
	if len(d.MissingInA) > 0 || len(d.MissingInB) > 0 {
		return true
	}
	for _, c := range d.Changes {
		if c.Delta() != 0 {
			return true
		}
	}
	return false
}

// DiffProfiles compares cluster and construct scores of two results.
func DiffProfiles(a, b render.Profile, labelA, labelB string) ProfileDiff {
	d := ProfileDiff{SourceA: labelA, SourceB: labelB}
	diffLevel(&d, model.LevelCluster, a.Clusters, b.Clusters)
	diffLevel(&d, model.LevelConstruct, a.Constructs, b.Constructs)
	sort.SliceStable(d.Changes, func(i, j int) bool {
		return math.Abs(d.Changes[i].Delta()) > math.Abs(d.Changes[j].Delta())
	})
	sort.Strings(d.MissingInA)
	sort.Strings(d.MissingInB)
	return d
}

func diffLevel(d *ProfileDiff, level model.Level, a, b model.ScoreMap) {
	for _, name := range a.Names() {
		rb, ok := b.Lookup(name)
		if !ok {
			d.MissingInB = append(d.MissingInB, name)
			continue
		}
		d.Changes = append(d.Changes, ScoreChange{
			Level: level,
			Name:  name,
			A:     a[name].Entry(name).Value,
			B:     rb.Entry(name).Value,
		})
	}
	for _, name := range b.Names() {
		if _, ok := a.Lookup(name); !ok {
			d.MissingInA = append(d.MissingInA, name)
		}
	}
}

// Summary returns a human-readable summary of the differences
func (d ProfileDiff) Summary() string {
	if !d.HasDifferences() {
		return fmt.Sprintf("Results match (%d axes)", len(d.Changes))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Differences between %s and %s:\n", d.SourceA, d.SourceB)

	if len(d.MissingInA) > 0 {
		fmt.Fprintf(&sb, "  - %d axes in %s but not %s\n", len(d.MissingInA), d.SourceB, d.SourceA)
		for _, name := range d.MissingInA {
			fmt.Fprintf(&sb, "    - %s\n", name)
		}
	}
	if len(d.MissingInB) > 0 {
		fmt.Fprintf(&sb, "  - %d axes in %s but not %s\n", len(d.MissingInB), d.SourceA, d.SourceB)
		for _, name := range d.MissingInB {
			fmt.Fprintf(&sb, "    - %s\n", name)
		}
	}

	moved := 0
	for _, c := range d.Changes {
		if c.Delta() != 0 {
			moved++
		}
	}
	if moved > 0 {
		fmt.Fprintf(&sb, "  - %d axes moved\n", moved)
		for _, c := range d.Changes {
			if c.Delta() == 0 {
				continue
			}
			fmt.Fprintf(&sb, "    - %s (%s): %.0f%% -> %.0f%% (%+.0f)\n", c.Name, c.Level, c.A, c.B, c.Delta())
		}
	}
	return sb.String()
}
