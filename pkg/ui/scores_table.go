package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/vanderheijden86/compassviz/pkg/model"
)

// TableOptions controls PrintScores.
type TableOptions struct {
	Title     string
	UseColors bool
}

// PrintScores writes entries as a table with value, band, and raw average.
func PrintScores(w io.Writer, entries []model.ScoreEntry, opts TableOptions) error {
	if opts.Title != "" {
		if _, err := fmt.Fprintf(w, "%s\n", opts.Title); err != nil {
			return err
		}
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Axis", "Score", "Band", "Average"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
		cfg.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignLeft, tw.AlignRight}
	})

	paint := bandPainters(opts.UseColors)
	data := make([][]string, 0, len(entries))
	for _, e := range entries {
		avg := "-"
		if e.HasAverage() {
			avg = fmt.Sprintf("%.2f", *e.Average)
		}
		band := e.Band()
		data = append(data, []string{
			e.Name,
			fmt.Sprintf("%.0f%%", e.Value),
			paint[band](band.Title()),
			avg,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d axes\n", len(entries))
	return err
}

func bandPainters(useColors bool) map[model.Band]func(...any) string {
	if !useColors {
		return map[model.Band]func(...any) string{
			model.BandLow:    fmt.Sprint,
			model.BandMedium: fmt.Sprint,
			model.BandHigh:   fmt.Sprint,
		}
	}
	return map[model.Band]func(...any) string{
		model.BandLow:    color.New(color.FgRed).SprintFunc(),
		model.BandMedium: color.New(color.FgYellow).SprintFunc(),
		model.BandHigh:   color.New(color.FgGreen).SprintFunc(),
	}
}
