package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/montanaflynn/stats"

	"datalens/domain/analysis"
	"datalens/domain/table"
	"datalens/internal/coerce"
)

const (
	maxCategoryGroups = 15
	maxScatterPoints  = 200
	maxHistogramBins  = 15
	timeSeriesColumns = 2
	categoryColumns   = 2
	histogramColumns  = 2
)

// chartBuilder generates a bounded set of chart payloads from column-type
// combinations. Phases run in a fixed priority order (time series, category
// aggregates, scatter, histograms) and the final list is sliced to MaxCharts,
// so later phases can be silently dropped.
type chartBuilder struct {
	tbl        table.Table
	charts     []analysis.ChartConfig
	nextSerial int
}

func buildCharts(tbl table.Table, columns []table.Column, identifiers map[string]bool) []analysis.ChartConfig {
	b := &chartBuilder{tbl: tbl, nextSerial: 1}

	var dateCols, numericCols, categoricalCols []string
	for _, col := range columns {
		switch col.Type {
		case table.TypeDate:
			dateCols = append(dateCols, col.Name)
		case table.TypeNumeric:
			numericCols = append(numericCols, col.Name)
		case table.TypeCategorical:
			if !identifiers[col.Name] {
				categoricalCols = append(categoricalCols, col.Name)
			}
		}
	}

	b.addTimeSeries(dateCols, numericCols)
	b.addCategoryAggregates(categoricalCols, numericCols)
	b.addScatter(numericCols)
	b.addHistograms(numericCols)

	if len(b.charts) > analysis.MaxCharts {
		b.charts = b.charts[:analysis.MaxCharts]
	}
	return b.charts
}

func (b *chartBuilder) add(chartType analysis.ChartType, title, xAxis, yAxis string, data []map[string]any) {
	b.charts = append(b.charts, analysis.ChartConfig{
		ID:    fmt.Sprintf("chart-%d", b.nextSerial),
		Type:  chartType,
		Title: title,
		XAxis: xAxis,
		YAxis: yAxis,
		Data:  data,
	})
	b.nextSerial++
}

// addTimeSeries builds a line chart per date column × numeric column pair,
// dropping rows whose value failed coercion.
func (b *chartBuilder) addTimeSeries(dateCols, numericCols []string) {
	numeric := firstN(numericCols, timeSeriesColumns)
	for _, dateCol := range dateCols {
		for _, numCol := range numeric {
			var data []map[string]any
			for _, row := range b.tbl.Rows {
				value, ok := coerce.Numeric(row[numCol])
				if !ok {
					continue
				}
				data = append(data, map[string]any{dateCol: row[dateCol], numCol: value})
			}
			if len(data) > 2 {
				b.add(analysis.ChartLine, fmt.Sprintf("%s over %s", numCol, dateCol), dateCol, numCol, data)
			}
		}
	}
}

// addCategoryAggregates averages the first numeric column per category value.
// Missing categories land in a literal "Unknown" bucket; groups keep
// first-appearance order and are capped at 15.
func (b *chartBuilder) addCategoryAggregates(categoricalCols, numericCols []string) {
	if len(numericCols) == 0 {
		return
	}
	numCol := numericCols[0]

	for _, catCol := range firstN(categoricalCols, categoryColumns) {
		sums := make(map[string]float64)
		counts := make(map[string]int)
		var order []string

		for _, row := range b.tbl.Rows {
			value, ok := coerce.Numeric(row[numCol])
			if !ok {
				continue
			}
			category := strings.TrimSpace(row[catCol])
			if category == "" {
				category = "Unknown"
			}
			if counts[category] == 0 {
				order = append(order, category)
			}
			sums[category] += value
			counts[category]++
		}

		order = firstN(order, maxCategoryGroups)
		if len(order) <= 1 {
			continue
		}
		data := make([]map[string]any, 0, len(order))
		for _, category := range order {
			data = append(data, map[string]any{
				catCol: category,
				numCol: sums[category] / float64(counts[category]),
			})
		}
		b.add(analysis.ChartBar, fmt.Sprintf("Average %s by %s", numCol, catCol), catCol, numCol, data)
	}
}

// addScatter pairs the first two numeric columns by row position, dropping
// rows where either side fails coercion, capped at 200 points.
func (b *chartBuilder) addScatter(numericCols []string) {
	if len(numericCols) < 2 {
		return
	}
	xCol, yCol := numericCols[0], numericCols[1]

	var data []map[string]any
	for _, row := range b.tbl.Rows {
		x, okX := coerce.Numeric(row[xCol])
		y, okY := coerce.Numeric(row[yCol])
		if !okX || !okY {
			continue
		}
		data = append(data, map[string]any{xCol: x, yCol: y})
		if len(data) >= maxScatterPoints {
			break
		}
	}
	if len(data) > 5 {
		b.add(analysis.ChartScatter, fmt.Sprintf("%s vs %s", xCol, yCol), xCol, yCol, data)
	}
}

// addHistograms builds fixed-width bins for the first two numeric columns.
// Bin count is min(15, ceil(sqrt(n))); constant columns (zero bin width) are
// skipped. The last bin is inclusive of the maximum via a clamped index.
func (b *chartBuilder) addHistograms(numericCols []string) {
	for _, numCol := range firstN(numericCols, histogramColumns) {
		values := coerce.Values(b.tbl.ColumnValues(numCol))
		if len(values) == 0 {
			continue
		}
		min, _ := stats.Min(values)
		max, _ := stats.Max(values)

		binCount := int(math.Ceil(math.Sqrt(float64(len(values)))))
		if binCount > maxHistogramBins {
			binCount = maxHistogramBins
		}
		binWidth := (max - min) / float64(binCount)
		if binWidth == 0 {
			continue
		}

		counts := make([]int, binCount)
		for _, v := range values {
			idx := int((v - min) / binWidth)
			if idx >= binCount {
				idx = binCount - 1
			}
			counts[idx]++
		}

		data := make([]map[string]any, 0, binCount)
		for i := 0; i < binCount; i++ {
			start := min + float64(i)*binWidth
			data = append(data, map[string]any{
				"bin":   fmt.Sprintf("%.1f-%.1f", start, start+binWidth),
				"count": counts[i],
			})
		}
		b.add(analysis.ChartHistogram, fmt.Sprintf("Distribution of %s", numCol), "bin", numCol, data)
	}
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
