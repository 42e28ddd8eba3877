package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vanderheijden86/compassviz/internal/datasource"
	"github.com/vanderheijden86/compassviz/pkg/ui"
	"github.com/vanderheijden86/compassviz/pkg/watcher"
)

func (a *app) previewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse the charts in the terminal",
		Long: `Open an interactive preview with one tab per chart and the report summary.
Press c to copy the current chart as SVG. With --watch the preview reloads
when the score source changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, src, err := a.loadProfile(cmd)
			if err != nil {
				return err
			}
			b := a.engine.Build(p, a.settings)

			theme := ui.DefaultTheme(lipgloss.NewRenderer(a.stdout))
			prog := tea.NewProgram(ui.NewPreview(p, b, theme),
				tea.WithAltScreen(),
				tea.WithoutSignalHandler(),
				tea.WithOutput(a.stdout),
			)

			// The root context is cancelled on SIGINT/SIGTERM.
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go func() {
				<-ctx.Done()
				prog.Quit()
			}()
			if watch, _ := cmd.Flags().GetBool("watch"); watch {
				go a.reloadOnChange(ctx, cmd, src, prog)
			}

			if _, err := prog.Run(); err != nil {
				return fmt.Errorf("preview: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().Bool("watch", false, "Reload when the score source changes")
	return cmd
}

// reloadOnChange rebuilds the bundle after each change to src and hands it to
// the running preview.
func (a *app) reloadOnChange(ctx context.Context, cmd *cobra.Command, src datasource.DataSource, prog *tea.Program) {
	resultID, _ := cmd.Flags().GetInt64("result")
	initial := true
	err := watcher.Run(ctx, src.Path,
		func(context.Context) error {
			if initial {
				initial = false
				return nil
			}
			p, err := datasource.LoadFromSource(src, resultID)
			if err != nil {
				return err
			}
			prog.Send(ui.ReloadMsg{Profile: p, Bundle: a.engine.Build(p, a.settings)})
			return nil
		},
		func(err error) {
			a.log.Debug("preview reload", zap.Error(err))
			prog.Send(ui.ErrMsg{Err: err})
		},
	)
	if err != nil {
		a.log.Warn("preview watch", zap.Error(err))
	}
}
