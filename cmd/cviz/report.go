package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vanderheijden86/compassviz/internal/datasource"
	"github.com/vanderheijden86/compassviz/pkg/export"
	"github.com/vanderheijden86/compassviz/pkg/ui"
	"github.com/vanderheijden86/compassviz/pkg/watcher"
)

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().String("out-dir", "", "Directory for the report and its charts")
	cmd.Flags().String("format", "", "Chart format: svg or png")
	cmd.Flags().String("title", "", "Report title")
	cmd.Flags().Int("concurrency", 0, "Parallel chart renders (0 = one per chart)")
}

// writeReport renders the full bundle into the configured output directory.
func (a *app) writeReport(ctx context.Context, cmd *cobra.Command) (string, string, error) {
	p, b, err := a.build(cmd)
	if err != nil {
		return "", "", err
	}
	opts := b.ReportOptions(p, a.cfg.Output.Dir)
	opts.Format = a.cfg.Output.Format
	if opts.Format == string(export.FormatJSON) {
		opts.Format = string(export.FormatSVG)
	}
	opts.Title, _ = cmd.Flags().GetString("title")
	opts.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	opts.Generated = time.Now()

	path, err := export.WriteReport(ctx, opts)
	if err != nil {
		return "", "", err
	}
	summary := opts
	summary.Charts = nil
	return path, export.GenerateReportMarkdown(summary, nil), nil
}

func (a *app) reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write every chart and a markdown summary to a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, md, err := a.writeReport(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stderr, "Wrote %s\n", path)

			if show, _ := cmd.Flags().GetBool("print"); show {
				out, err := ui.RenderMarkdown(md, terminalWidth(a.stdout))
				if err != nil {
					return err
				}
				fmt.Fprint(a.stdout, out)
			}
			return nil
		},
	}
	addReportFlags(cmd)
	cmd.Flags().Bool("print", false, "Also print the summary to the terminal")
	return cmd
}

func (a *app) watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rewrite the report whenever the score source changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := datasource.Detect(a.sourcePath(cmd))
			if err != nil {
				return err
			}
			// Pin the source so later edits to sibling files do not switch it.
			if err := cmd.Flags().Set("source", src.Path); err != nil {
				return err
			}
			poll, _ := cmd.Flags().GetBool("poll")
			fmt.Fprintf(a.stderr, "Watching %s (Ctrl+C to stop)\n", src.Path)

			return watcher.Run(cmd.Context(), src.Path,
				func(ctx context.Context) error {
					path, _, err := a.writeReport(ctx, cmd)
					if err != nil {
						return err
					}
					fmt.Fprintf(a.stderr, "%s wrote %s\n", time.Now().Format("15:04:05"), path)
					return nil
				},
				func(err error) {
					a.log.Warn("watch", zap.Error(err))
				},
				watcher.WithForcePoll(poll),
			)
		},
	}
	addReportFlags(cmd)
	cmd.Flags().Bool("poll", false, "Poll instead of using filesystem events")
	return cmd
}
