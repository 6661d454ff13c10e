package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"datalens/domain/analysis"
	"datalens/domain/table"
	"datalens/internal/coerce"
)

const (
	// minTrendSample is the smallest series a half-split comparison runs on.
	minTrendSample = 5
	// trendChangeThreshold is the percent change beyond which a series counts
	// as increasing or decreasing.
	trendChangeThreshold = 10.0
	// trendVolatilityThreshold is the coefficient of variation above which a
	// series is volatile regardless of its direction.
	trendVolatilityThreshold = 0.5
)

// detectTrend compares the first and second half of a numeric column's values
// against the designated date column. Values are taken in row order: input
// order is trusted as chronological order, the date column is never sorted by
// its parsed value.
func detectTrend(tbl table.Table, dateColumn, valueColumn string) (analysis.Trend, bool) {
	data := coerce.Values(tbl.ColumnValues(valueColumn))
	if len(data) < minTrendSample {
		return analysis.Trend{}, false
	}

	mid := len(data) / 2
	firstAvg, _ := stats.Mean(data[:mid])
	secondAvg, _ := stats.Mean(data[mid:])
	overallMean, _ := stats.Mean(data)
	overallStdDev, _ := stats.StandardDeviationSample(data)

	percentChange := (secondAvg - firstAvg) / nonZero(math.Abs(firstAvg)) * 100
	volatility := overallStdDev / nonZero(math.Abs(overallMean))

	trend := analysis.Trend{
		DateColumn:   dateColumn,
		ValueColumn:  valueColumn,
		RateOfChange: percentChange,
	}

	// Volatility wins over magnitude-based direction.
	switch {
	case volatility > trendVolatilityThreshold:
		trend.Direction = analysis.TrendVolatile
		trend.Description = fmt.Sprintf("%s fluctuates heavily across %s with no steady direction", valueColumn, dateColumn)
	case percentChange > trendChangeThreshold:
		trend.Direction = analysis.TrendIncreasing
		trend.Description = fmt.Sprintf("%s increased by %.1f%% over the period covered by %s", valueColumn, percentChange, dateColumn)
	case percentChange < -trendChangeThreshold:
		trend.Direction = analysis.TrendDecreasing
		trend.Description = fmt.Sprintf("%s decreased by %.1f%% over the period covered by %s", valueColumn, math.Abs(percentChange), dateColumn)
	default:
		trend.Direction = analysis.TrendStable
		trend.Description = fmt.Sprintf("%s remained stable across %s (%.1f%% change)", valueColumn, dateColumn, percentChange)
	}
	return trend, true
}

// nonZero substitutes 1 for a zero denominator so degenerate series yield
// finite ratios instead of Inf/NaN.
func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
