package model

import "strings"

// Band is the low/medium/high label assigned to a percentage score.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// Band thresholds on the 0-100 percentage scale.
const (
	BandMediumFrom = 40.0
	BandHighFrom   = 70.0
)

// BandFor classifies a percentage.
func BandFor(pct float64) Band {
	switch {
	case pct >= BandHighFrom:
		return BandHigh
	case pct >= BandMediumFrom:
		return BandMedium
	default:
		return BandLow
	}
}

// ParseBand maps a collaborator-supplied category string onto a Band.
// Unknown strings report false.
func ParseBand(s string) (Band, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return BandLow, true
	case "medium", "mid", "moderate", "m":
		return BandMedium, true
	case "high", "h":
		return BandHigh, true
	default:
		return "", false
	}
}

// Title returns the capitalized band name for display.
func (b Band) Title() string {
	switch b {
	case BandLow:
		return "Low"
	case BandMedium:
		return "Medium"
	case BandHigh:
		return "High"
	default:
		return "Unknown"
	}
}
