// Package report renders a finished analysis as a markdown summary and an
// HTML export. It consumes the analysis result as a read-only snapshot.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"datalens/domain/analysis"
)

// Builder renders analysis results, gated by the entitlements it was built
// with.
type Builder struct {
	entitlements Entitlements
}

// NewBuilder creates a report builder for the given entitlements.
func NewBuilder(entitlements Entitlements) *Builder {
	return &Builder{entitlements: entitlements}
}

// Markdown renders the analysis as a markdown document.
func (b *Builder) Markdown(result *analysis.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Analysis of %s\n\n", result.FileName)
	fmt.Fprintf(&sb, "%d rows, %d columns.\n\n", result.RowCount, result.ColumnCount)

	if len(result.Insights) > 0 {
		sb.WriteString("## Key insights\n\n")
		for _, insight := range result.Insights {
			fmt.Fprintf(&sb, "- %s **%s** — %s\n", insight.Icon, insight.Title, insight.Description)
		}
		sb.WriteString("\n")
	}

	if len(result.NumericStats) > 0 {
		sb.WriteString("## Column statistics\n\n")
		sb.WriteString("| Column | Mean | Median | Min | Max | Std Dev | Count |\n")
		sb.WriteString("|---|---|---|---|---|---|---|\n")
		for _, s := range result.NumericStats {
			if s.Count == 0 {
				fmt.Fprintf(&sb, "| %s | — | — | — | — | — | 0 |\n", s.Column)
				continue
			}
			fmt.Fprintf(&sb, "| %s | %.2f | %.2f | %.2f | %.2f | %.2f | %d |\n",
				s.Column, s.Mean, s.Median, s.Min, s.Max, s.StdDev, s.Count)
		}
		sb.WriteString("\n")
	}

	if len(result.Correlations) > 0 {
		sb.WriteString("## Relationships\n\n")
		for _, corr := range result.Correlations {
			fmt.Fprintf(&sb, "- %s (r=%.2f)\n", corr.Description, corr.Coefficient)
		}
		sb.WriteString("\n")
	}

	if len(result.Trends) > 0 {
		sb.WriteString("## Trends\n\n")
		for _, trend := range result.Trends {
			fmt.Fprintf(&sb, "- %s\n", trend.Description)
		}
		sb.WriteString("\n")
	}

	if b.entitlements.IncludeOutliers && len(result.Outliers) > 0 {
		sb.WriteString("## Outliers\n\n")
		for _, outlier := range result.Outliers {
			fmt.Fprintf(&sb, "- %s\n", outlier.Description)
		}
		sb.WriteString("\n")
	}

	charts := result.Charts
	if len(charts) > b.entitlements.MaxExportCharts {
		charts = charts[:b.entitlements.MaxExportCharts]
	}
	if len(charts) > 0 {
		sb.WriteString("## Charts\n\n")
		for _, chart := range charts {
			fmt.Fprintf(&sb, "- %s (%s, %d points)\n", chart.Title, chart.Type, len(chart.Data))
		}
		if len(result.Charts) > len(charts) {
			fmt.Fprintf(&sb, "\n%d more charts available on the Pro tier.\n", len(result.Charts)-len(charts))
		}
	}

	return sb.String()
}

// HTML renders the markdown report as a standalone HTML fragment.
func (b *Builder) HTML(result *analysis.Result) []byte {
	md := b.Markdown(result)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}
