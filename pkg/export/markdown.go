package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/compassviz/pkg/colorscale"
	"github.com/vanderheijden86/compassviz/pkg/debug"
	"github.com/vanderheijden86/compassviz/pkg/heatmap"
	"github.com/vanderheijden86/compassviz/pkg/matrix"
	"github.com/vanderheijden86/compassviz/pkg/metrics"
	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/scene"
)

// Package-level compiled regex for slug creation (avoids recompilation per call)
var slugNonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)

// ReportFile is the markdown summary written next to the charts.
const ReportFile = "report.md"

// ReportChart is one chart of a report bundle.
type ReportChart struct {
	Name  string // Heading and file stem, e.g. "Cluster Radar"
	Scene *scene.Scene
}

// ReportOptions describes a report bundle.
type ReportOptions struct {
	Dir       string
	Format    string // chart format, "svg" (default) or "png"
	Title     string
	Subject   string // person the scores belong to
	Test      string // assessment name
	Generated time.Time

	Clusters   []model.ScoreEntry
	Constructs []model.ScoreEntry
	Matrix     *matrix.Matrix
	Heatmap    *heatmap.Heatmap
	Charts     []ReportChart

	// Concurrency caps parallel chart renders; 0 means one per chart.
	Concurrency int
}

// WriteReport renders every chart concurrently into Dir and writes
// report.md linking them. It returns the markdown path.
func WriteReport(ctx context.Context, opts ReportOptions) (string, error) {
	defer metrics.Track(metrics.ReportWrite)()
	if opts.Dir == "" {
		return "", fmt.Errorf("report directory is required")
	}
	format := FormatSVG
	if opts.Format != "" {
		f, err := ParseFormat(opts.Format)
		if err != nil {
			return "", err
		}
		if f == FormatJSON {
			return "", fmt.Errorf("report charts must be svg or png, got %q", opts.Format)
		}
		format = f
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	files := make([]string, len(opts.Charts))
	slugCounts := make(map[string]int, len(opts.Charts))
	for i, c := range opts.Charts {
		files[i] = uniqueSlug(createSlug(c.Name), slugCounts) + "." + string(format)
	}

	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, c := range opts.Charts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return SaveChart(ChartOptions{
				Path:   filepath.Join(opts.Dir, files[i]),
				Format: string(format),
				Scene:  c.Scene,
			})
		})
	}
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("render report charts: %w", err)
	}

	md := GenerateReportMarkdown(opts, files)
	path := filepath.Join(opts.Dir, ReportFile)
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	debug.Log("export: report with %d charts at %s", len(files), path)
	return path, nil
}

// GenerateReportMarkdown builds the report body. files holds the chart file
// names relative to the report, parallel to opts.Charts.
func GenerateReportMarkdown(opts ReportOptions, files []string) string {
	var sb strings.Builder

	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = "Strengths Compass Report"
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	if !opts.Generated.IsZero() {
		sb.WriteString(fmt.Sprintf("*Generated: %s*\n\n", opts.Generated.Format(time.RFC1123)))
	}
	if opts.Subject != "" || opts.Test != "" {
		sb.WriteString("| | |\n|---|---|\n")
		if opts.Subject != "" {
			sb.WriteString(fmt.Sprintf("| **Participant** | %s |\n", escapeCell(opts.Subject)))
		}
		if opts.Test != "" {
			sb.WriteString(fmt.Sprintf("| **Assessment** | %s |\n", escapeCell(opts.Test)))
		}
		sb.WriteString("\n")
	}

	writeScoreTable(&sb, "Clusters", opts.Clusters)
	writeScoreTable(&sb, "Constructs", opts.Constructs)

	if opts.Matrix != nil && opts.Matrix.Size() > 0 {
		summary := opts.Matrix.Summary()
		sb.WriteString("## Relationships\n\n")
		sb.WriteString("| Relationship | Pairs |\n|--------------|-------|\n")
		for _, c := range []colorscale.Category{
			colorscale.CategoryFlow, colorscale.CategoryGrowth,
			colorscale.CategoryConflict, colorscale.CategoryNeutral,
		} {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", c, summary[c]))
		}
		sb.WriteString("\n")
	}

	if h := opts.Heatmap; h != nil && h.Size() > 0 {
		sb.WriteString("## Largest Difference\n\n")
		if i, j, ok := h.MaxPair(); ok {
			sb.WriteString(fmt.Sprintf("**%s** (%d%%) vs **%s** (%d%%): %.0f points\n\n",
				h.Inputs[i].Name, h.Inputs[i].Value, h.Inputs[j].Name, h.Inputs[j].Value, h.Max))
		} else {
			sb.WriteString("All scores are equal.\n\n")
		}
	}

	if len(opts.Charts) > 0 {
		sb.WriteString("## Charts\n\n")
		for i, c := range opts.Charts {
			if i >= len(files) {
				break
			}
			sb.WriteString(fmt.Sprintf("### %s\n\n![%s](%s)\n\n", c.Name, c.Name, files[i]))
		}
	}
	return sb.String()
}

func writeScoreTable(sb *strings.Builder, heading string, entries []model.ScoreEntry) {
	if len(entries) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n", heading))
	sb.WriteString("| Axis | Score | | Band | Average |\n|------|------:|---|------|--------:|\n")
	for _, e := range entries {
		avg := "-"
		if e.HasAverage() {
			avg = fmt.Sprintf("%.2f", *e.Average)
		}
		sb.WriteString(fmt.Sprintf("| %s | %.0f%% | %s | %s | %s |\n",
			escapeCell(e.Name), e.Value, barChart(e.Value/100), e.Band().Title(), avg))
	}
	sb.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func uniqueSlug(base string, counts map[string]int) string {
	if base == "" {
		base = "chart"
	}
	if count, ok := counts[base]; ok {
		count++
		counts[base] = count
		return fmt.Sprintf("%s-%d", base, count)
	}
	counts[base] = 0
	return base
}

// createSlug creates a file-name friendly slug from a chart name.
func createSlug(text string) string {
	slug := strings.ToLower(text)
	slug = slugNonAlphanumericRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// barChart creates a mini bar for a 0-1 value
func barChart(value float64) string {
	const width = 10
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	filled := int(value*width + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
