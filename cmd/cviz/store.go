package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vanderheijden86/compassviz/internal/datasource"
	"github.com/vanderheijden86/compassviz/pkg/loader"
	"github.com/vanderheijden86/compassviz/pkg/render"
)

var errScoresDiffer = errors.New("scores differ")

// loadRef loads a source reference of the form path or path#resultID.
func loadRef(ref string) (render.Profile, error) {
	path, id := ref, int64(0)
	if i := strings.LastIndex(ref, "#"); i > 0 {
		n, err := strconv.ParseInt(ref[i+1:], 10, 64)
		if err != nil {
			return render.Profile{}, fmt.Errorf("bad result id in %q: %w", ref, err)
		}
		path, id = ref[:i], n
	}
	p, _, err := datasource.LoadProfile(path, id)
	return p, err
}

func (a *app) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <score-file>...",
		Short: "Store score files in the results database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db := a.cfg.DatabasePath()
			w, err := datasource.OpenSQLiteWriter(db)
			if err != nil {
				return err
			}
			defer w.Close()

			for _, path := range args {
				sf, err := loader.LoadScores(path)
				if err != nil {
					return err
				}
				if sf.Empty() {
					return fmt.Errorf("%s: no scores", path)
				}
				id, err := w.SaveResult(sf.Profile(), time.Now().UTC())
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				a.log.Debug("imported", zap.String("path", path), zap.Int64("id", id))
				fmt.Fprintf(a.stdout, "Imported %s as result %d\n", path, id)
			}
			fmt.Fprintf(a.stderr, "Database: %s\n", db)
			return nil
		},
	}
	cmd.Flags().String("database", "", "Results database path")
	return cmd
}

func (a *app) resultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "List the results stored in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := datasource.Detect(a.cfg.DatabasePath())
			if err != nil {
				return err
			}
			r, err := datasource.NewSQLiteReader(src)
			if err != nil {
				return err
			}
			defer r.Close()

			results, err := r.ListResults()
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(a.stdout, "No results stored.")
				return nil
			}

			table := tablewriter.NewWriter(a.stdout)
			table.Header([]string{"ID", "Participant", "Assessment", "Created"})
			var data [][]string
			for _, res := range results {
				created := ""
				if !res.CreatedAt.IsZero() {
					created = res.CreatedAt.Local().Format("2006-01-02 15:04")
				}
				data = append(data, []string{strconv.FormatInt(res.ID, 10), res.User, res.Test, created})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			return table.Render()
		},
	}
	cmd.Flags().String("database", "", "Results database path")
	return cmd
}

func (a *app) sourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources [dir]",
		Short: "List the score sources found in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			sources, err := datasource.DiscoverSources(datasource.DiscoveryOptions{
				Dir:                    dir,
				ValidateAfterDiscovery: true,
				IncludeInvalid:         true,
				Logger:                 func(msg string) { a.log.Debug(msg) },
			})
			if err != nil {
				return err
			}
			if len(sources) == 0 {
				fmt.Fprintf(a.stdout, "No score sources in %s\n", dir)
				return nil
			}
			best, bestErr := datasource.SelectBestSource(sources)
			for _, s := range sources {
				mark := " "
				if bestErr == nil && s.Path == best.Path {
					mark = "*"
				}
				fmt.Fprintf(a.stdout, "%s %s\n", mark, s)
			}
			return nil
		},
	}
	return cmd
}
