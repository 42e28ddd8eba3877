package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/compassviz/pkg/matrix"
)

// WizardAnswers are the settings collected by the interactive setup.
type WizardAnswers struct {
	Format   string
	Dir      string
	Mode     string
	Database string
}

// AnswersFrom seeds the form with the current values.
func AnswersFrom(cfg Config) WizardAnswers {
	return WizardAnswers{
		Format:   cfg.Output.Format,
		Dir:      cfg.Output.Dir,
		Mode:     cfg.Matrix.Mode,
		Database: cfg.Sources.Database,
	}
}

// Apply copies non-empty answers onto cfg and validates the result.
func (a WizardAnswers) Apply(cfg Config) (Config, error) {
	if s := strings.TrimSpace(a.Format); s != "" {
		cfg.Output.Format = s
	}
	if s := strings.TrimSpace(a.Dir); s != "" {
		cfg.Output.Dir = s
	}
	if s := strings.TrimSpace(a.Mode); s != "" {
		cfg.Matrix.Mode = s
	}
	cfg.Sources.Database = strings.TrimSpace(a.Database)
	cfg.normalize()
	return cfg, cfg.Validate()
}

// newForm falls back to the accessible line prompts when stdin is not a
// terminal.
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		form = form.WithAccessible(true)
	}
	return form
}

// RunWizard asks for the common settings and returns cfg with the answers
// applied.
func RunWizard(cfg Config) (Config, error) {
	ans := AnswersFrom(cfg)
	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Chart format").
				Options(huh.NewOptions("svg", "png", "json")...).
				Value(&ans.Format),
			huh.NewInput().
				Title("Output directory").
				Value(&ans.Dir).
				Placeholder("."),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Matrix colouring").
				Description("delta compares score gaps, magnitude shades by combined strength").
				Options(
					huh.NewOption("Delta", matrix.ModeDelta.String()),
					huh.NewOption("Magnitude", matrix.ModeMagnitude.String()),
				).
				Value(&ans.Mode),
			huh.NewInput().
				Title("Results database (optional)").
				Description(fmt.Sprintf("Empty uses %s", Config{}.DatabasePath())).
				Value(&ans.Database),
		),
	)
	if err := form.Run(); err != nil {
		return cfg, err
	}
	return ans.Apply(cfg)
}
