package analysis

import (
	"github.com/montanaflynn/stats"

	"datalens/domain/analysis"
	"datalens/domain/table"
	"datalens/internal/coerce"
)

// computeNumericStats derives descriptive statistics for one numeric column.
// Cells that fail coercion are excluded. An empty result set yields all-zero
// stats with Count 0, which callers must read as "no data".
func computeNumericStats(tbl table.Table, column string) analysis.NumericStats {
	data := coerce.Values(tbl.ColumnValues(column))
	if len(data) == 0 {
		return analysis.NumericStats{Column: column}
	}

	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	total, _ := stats.Sum(data)

	// Sample standard deviation (n-1 divisor); a single value has no spread.
	stdDev := 0.0
	if len(data) > 1 {
		stdDev, _ = stats.StandardDeviationSample(data)
	}

	return analysis.NumericStats{
		Column: column,
		Mean:   mean,
		Median: median,
		Min:    min,
		Max:    max,
		StdDev: stdDev,
		Total:  total,
		Count:  len(data),
	}
}
