package analysis

import (
	"datalens/domain/table"
)

// Fixed design limits. Chart/stat selection and insight truncation depend on
// these exact values, so they are named constants rather than configuration.
const (
	MaxInsights          = 10
	MaxCorrelations      = 5
	MaxOutliersPerColumn = 10
	MaxCharts            = 6
	TypeSampleSize       = 100
	TypeThreshold        = 0.7
	OutlierZThreshold    = 2.5
)

// NumericStats holds descriptive statistics for one numeric column. Values
// that fail coercion are excluded from the aggregates, never zero-filled.
// Count==0 means "no data", not "data is literally zero".
type NumericStats struct {
	Column string  `json:"column"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
	Total  float64 `json:"total"`
	Count  int     `json:"count"`
}

// CorrelationStrength is the qualitative label assigned to a Pearson
// coefficient via fixed breakpoints.
type CorrelationStrength string

const (
	StrengthStrongPositive   CorrelationStrength = "strong_positive"
	StrengthModeratePositive CorrelationStrength = "moderate_positive"
	StrengthWeakPositive     CorrelationStrength = "weak_positive"
	StrengthNone             CorrelationStrength = "none"
	StrengthWeakNegative     CorrelationStrength = "weak_negative"
	StrengthModerateNegative CorrelationStrength = "moderate_negative"
	StrengthStrongNegative   CorrelationStrength = "strong_negative"
)

// ClassifyCorrelation maps a coefficient to one of seven strength bands.
// Breakpoints: >=0.7, >=0.4, >=0.1, >-0.1, >=-0.4, >=-0.7, else strong_negative.
func ClassifyCorrelation(coefficient float64) CorrelationStrength {
	switch {
	case coefficient >= 0.7:
		return StrengthStrongPositive
	case coefficient >= 0.4:
		return StrengthModeratePositive
	case coefficient >= 0.1:
		return StrengthWeakPositive
	case coefficient > -0.1:
		return StrengthNone
	case coefficient >= -0.4:
		return StrengthWeakNegative
	case coefficient >= -0.7:
		return StrengthModerateNegative
	default:
		return StrengthStrongNegative
	}
}

// IsStrong reports whether the band is one of the strong_* bands.
func (s CorrelationStrength) IsStrong() bool {
	return s == StrengthStrongPositive || s == StrengthStrongNegative
}

// IsModerate reports whether the band is one of the moderate_* bands.
func (s CorrelationStrength) IsModerate() bool {
	return s == StrengthModeratePositive || s == StrengthModerateNegative
}

// Correlation is one finding per unordered numeric-column pair.
type Correlation struct {
	Column1     string              `json:"column1"`
	Column2     string              `json:"column2"`
	Coefficient float64             `json:"coefficient"`
	Strength    CorrelationStrength `json:"strength"`
	Description string              `json:"description"`
}

// TrendDirection classifies a numeric column's trajectory over a date column.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
	TrendVolatile   TrendDirection = "volatile"
)

// Trend is a first-half vs second-half comparison of a numeric column taken
// in row order against the designated date column.
type Trend struct {
	DateColumn   string         `json:"date_column"`
	ValueColumn  string         `json:"value_column"`
	Direction    TrendDirection `json:"direction"`
	RateOfChange float64        `json:"rate_of_change"`
	Description  string         `json:"description"`
}

// OutlierType classifies the side of the distribution an outlier sits on.
type OutlierType string

const (
	OutlierHigh OutlierType = "high"
	OutlierLow  OutlierType = "low"
)

// Outlier is one flagged extreme value. Index is the original row position.
type Outlier struct {
	Column      string      `json:"column"`
	Value       float64     `json:"value"`
	Index       int         `json:"index"`
	Type        OutlierType `json:"type"`
	ZScore      float64     `json:"z_score"`
	Description string      `json:"description"`
}

// InsightType categorizes what kind of finding an insight summarizes.
type InsightType string

const (
	InsightTrend       InsightType = "trend"
	InsightCorrelation InsightType = "correlation"
	InsightStatistic   InsightType = "statistic"
	InsightOutlier     InsightType = "outlier"
	InsightPattern     InsightType = "pattern"
)

// Importance is the ranking tier of an insight.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// Insight is a synthesized, human-readable summary of one statistical
// finding. Insights are derived from trends/correlations/outliers/stats,
// never input directly.
type Insight struct {
	Type        InsightType `json:"type"`
	Icon        string      `json:"icon"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Importance  Importance  `json:"importance"`
}

// ChartType enumerates the chart payload shapes the builder emits.
type ChartType string

const (
	ChartLine      ChartType = "line"
	ChartBar       ChartType = "bar"
	ChartScatter   ChartType = "scatter"
	ChartHistogram ChartType = "histogram"
)

// ChartConfig is a chart-ready payload. Data is a materialized,
// size-bounded projection of the row set, not a live view.
type ChartConfig struct {
	ID    string           `json:"id"`
	Type  ChartType        `json:"type"`
	Title string           `json:"title"`
	XAxis string           `json:"x_axis"`
	YAxis string           `json:"y_axis,omitempty"`
	Data  []map[string]any `json:"data"`
}

// Result is the root aggregate of one analysis invocation. Immutable; the
// API/report layers only read it. RawData preserves the analyzed rows as the
// source of truth for re-analysis and export.
type Result struct {
	FileName     string         `json:"file_name"`
	RowCount     int            `json:"row_count"`
	ColumnCount  int            `json:"column_count"`
	Columns      []table.Column `json:"columns"`
	NumericStats []NumericStats `json:"numeric_stats"`
	Correlations []Correlation  `json:"correlations"`
	Trends       []Trend        `json:"trends"`
	Outliers     []Outlier      `json:"outliers"`
	Insights     []Insight      `json:"insights"`
	Charts       []ChartConfig  `json:"charts"`
	RawData      []table.Row    `json:"raw_data"`
}

// NumericColumns returns the names of numeric-typed columns in header order.
func (r *Result) NumericColumns() []string {
	var names []string
	for _, col := range r.Columns {
		if col.Type == table.TypeNumeric {
			names = append(names, col.Name)
		}
	}
	return names
}
