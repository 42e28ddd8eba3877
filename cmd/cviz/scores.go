package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/compassviz/internal/datasource"
	"github.com/vanderheijden86/compassviz/pkg/ui"
)

func (a *app) scoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Print the normalized scores as tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, src, err := a.loadProfile(cmd)
			if err != nil {
				return err
			}
			noColor, _ := cmd.Flags().GetBool("no-color")
			useColors := !noColor && isTerminal(a.stdout)

			if p.Subject != "" {
				fmt.Fprintf(a.stdout, "%s", p.Subject)
				if p.Test != "" {
					fmt.Fprintf(a.stdout, " · %s", p.Test)
				}
				fmt.Fprintln(a.stdout)
			}
			fmt.Fprintf(a.stdout, "Source: %s\n\n", src.Path)

			if err := ui.PrintScores(a.stdout, p.ClusterEntries(), ui.TableOptions{Title: "Clusters", UseColors: useColors}); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout)
			return ui.PrintScores(a.stdout, p.ConstructEntries(), ui.TableOptions{Title: "Constructs", UseColors: useColors})
		},
	}
	cmd.Flags().Bool("no-color", false, "Disable coloured bands")
	return cmd
}

func (a *app) diffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Compare the scores of two sources",
		Long: `Compare two score sources axis by axis. Each argument is a score file,
a directory or a results database; databases may select a result with
path#id, e.g. results.db#3.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pa, err := loadRef(args[0])
			if err != nil {
				return err
			}
			pb, err := loadRef(args[1])
			if err != nil {
				return err
			}
			d := datasource.DiffProfiles(pa, pb, args[0], args[1])
			fmt.Fprintln(a.stdout, strings.TrimRight(d.Summary(), "\n"))
			if exit, _ := cmd.Flags().GetBool("exit-code"); exit && d.HasDifferences() {
				return errScoresDiffer
			}
			return nil
		},
	}
	cmd.Flags().Bool("exit-code", false, "Fail when the sources differ")
	return cmd
}
