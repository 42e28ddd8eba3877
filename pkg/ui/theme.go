package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/compassviz/pkg/colorscale"
	"github.com/vanderheijden86/compassviz/pkg/model"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme groups the styles used by the preview and the terminal charts.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary lipgloss.AdaptiveColor
	Subtext lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor

	// Bands
	Low    lipgloss.AdaptiveColor
	Medium lipgloss.AdaptiveColor
	High   lipgloss.AdaptiveColor

	Base      lipgloss.Style
	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	MutedText lipgloss.Style
	Status    lipgloss.Style
	ErrorText lipgloss.Style
}

// DefaultTheme returns the standard adaptive theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary: lipgloss.AdaptiveColor{Light: "#4338CA", Dark: "#818CF8"}, // Indigo, matches the cluster radar
		Subtext: lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},
		Border:  lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Muted:   lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},

		Low:    lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
		Medium: lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"},
		High:   lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1B4B"}).
		Bold(true).
		Padding(0, 1)

	t.Tab = r.NewStyle().Foreground(t.Subtext).Padding(0, 1)
	t.ActiveTab = r.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Underline(true).
		Padding(0, 1)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.Status = r.NewStyle().Foreground(t.Subtext).Italic(true)
	t.ErrorText = r.NewStyle().Foreground(t.Low).Bold(true)

	return t
}

// BandColor returns the foreground colour for a score band.
func (t Theme) BandColor(b model.Band) lipgloss.AdaptiveColor {
	switch b {
	case model.BandHigh:
		return t.High
	case model.BandMedium:
		return t.Medium
	case model.BandLow:
		return t.Low
	default:
		return t.Subtext
	}
}

// Swatch renders text on a chart colour. The foreground switches between
// black and white for contrast.
func (t Theme) Swatch(c colorscale.RGB, text string) string {
	return t.Renderer.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(c.TextColor().Hex())).
		Render(text)
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
