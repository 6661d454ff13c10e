// Package analysis is the core engine: it turns raw string rows into typed
// columns, descriptive statistics, relationship findings and chart payloads.
// The engine is stateless and side-effect free; two invocations with
// identical inputs produce identical results, which the re-analysis workflow
// relies on.
package analysis

import (
	"datalens/domain/analysis"
	"datalens/domain/table"
	"datalens/internal/infer"
)

// maxTrendColumns bounds how many numeric columns the trend detector runs on.
const maxTrendColumns = 3

// Options carries per-invocation knobs for an analysis run.
type Options struct {
	// IdentifierColumns names columns to exclude from aggregation-sensitive
	// computations (correlation pairing, categorical chart grouping). They
	// are still typed and profiled.
	IdentifierColumns []string
}

// Engine runs the full analysis pipeline. Safe for concurrent use: each
// Analyze call operates on its own local structures.
type Engine struct{}

// NewEngine creates the analysis engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Analyze runs the strictly sequential pipeline over a materialized table:
// type inference, descriptive statistics, correlation, trend and outlier
// detection, insight ranking and chart generation. Degenerate inputs (no
// numeric columns, constant series, tiny samples) degrade to empty findings,
// never to an error. Callers are expected to reject empty tables upstream.
func (e *Engine) Analyze(tbl table.Table, fileName string, opts Options) *analysis.Result {
	columns := infer.Columns(tbl)

	identifiers := make(map[string]bool, len(opts.IdentifierColumns))
	for _, name := range opts.IdentifierColumns {
		identifiers[name] = true
	}

	var numericCols []string
	var dateCols []string
	for _, col := range columns {
		switch col.Type {
		case table.TypeNumeric:
			numericCols = append(numericCols, col.Name)
		case table.TypeDate:
			dateCols = append(dateCols, col.Name)
		}
	}

	numericStats := make([]analysis.NumericStats, 0, len(numericCols))
	for _, name := range numericCols {
		numericStats = append(numericStats, computeNumericStats(tbl, name))
	}

	var corrCols []string
	for _, name := range numericCols {
		if !identifiers[name] {
			corrCols = append(corrCols, name)
		}
	}
	correlations := detectCorrelations(tbl, corrCols)

	var trends []analysis.Trend
	if len(dateCols) > 0 {
		dateCol := dateCols[0]
		for i, name := range numericCols {
			if i >= maxTrendColumns {
				break
			}
			if trend, ok := detectTrend(tbl, dateCol, name); ok {
				trends = append(trends, trend)
			}
		}
	}

	var outliers []analysis.Outlier
	for _, name := range numericCols {
		outliers = append(outliers, detectOutliers(tbl, name)...)
	}

	insights := rankInsights(columns, numericStats, correlations, trends, outliers)
	charts := buildCharts(tbl, columns, identifiers)

	return &analysis.Result{
		FileName:     fileName,
		RowCount:     len(tbl.Rows),
		ColumnCount:  len(tbl.Headers),
		Columns:      columns,
		NumericStats: numericStats,
		Correlations: correlations,
		Trends:       trends,
		Outliers:     outliers,
		Insights:     insights,
		Charts:       charts,
		RawData:      tbl.Rows,
	}
}
