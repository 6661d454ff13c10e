package analysis

import (
	"fmt"
	"math"

	"datalens/domain/analysis"
	"datalens/domain/table"
)

// severeZThreshold marks an outlier group as high importance when any member
// exceeds it.
const severeZThreshold = 3.0

// highVariabilityCV is the coefficient-of-variation cutoff for the "high
// variability" statistic insight.
const highVariabilityCV = 1.0

// rankInsights turns statistical findings into short natural-language insight
// records. Rules run in a fixed order (trends, correlations, outlier groups,
// variability) so earlier findings survive the truncation to MaxInsights.
// Low-indexed columns are favored over later ones when more than ten qualify;
// that bias is deliberate, not a severity sort.
func rankInsights(columns []table.Column, numericStats []analysis.NumericStats,
	correlations []analysis.Correlation, trends []analysis.Trend, outliers []analysis.Outlier) []analysis.Insight {

	insights := make([]analysis.Insight, 0)

	for _, trend := range trends {
		switch trend.Direction {
		case analysis.TrendIncreasing:
			insights = append(insights, analysis.Insight{
				Type:        analysis.InsightTrend,
				Icon:        "📈",
				Title:       fmt.Sprintf("%s is trending up", trend.ValueColumn),
				Description: trend.Description,
				Importance:  analysis.ImportanceHigh,
			})
		case analysis.TrendDecreasing:
			insights = append(insights, analysis.Insight{
				Type:        analysis.InsightTrend,
				Icon:        "📉",
				Title:       fmt.Sprintf("%s is trending down", trend.ValueColumn),
				Description: trend.Description,
				Importance:  analysis.ImportanceHigh,
			})
		case analysis.TrendVolatile:
			insights = append(insights, analysis.Insight{
				Type:        analysis.InsightPattern,
				Icon:        "⚡",
				Title:       fmt.Sprintf("%s is volatile", trend.ValueColumn),
				Description: trend.Description,
				Importance:  analysis.ImportanceMedium,
			})
		}
		// Stable trends produce no insight.
	}

	for _, corr := range correlations {
		switch {
		case corr.Strength.IsStrong():
			insights = append(insights, analysis.Insight{
				Type:        analysis.InsightCorrelation,
				Icon:        "🔗",
				Title:       fmt.Sprintf("Strong link between %s and %s", corr.Column1, corr.Column2),
				Description: corr.Description,
				Importance:  analysis.ImportanceHigh,
			})
		case corr.Strength.IsModerate():
			insights = append(insights, analysis.Insight{
				Type:        analysis.InsightCorrelation,
				Icon:        "🔗",
				Title:       fmt.Sprintf("%s and %s move together", corr.Column1, corr.Column2),
				Description: corr.Description,
				Importance:  analysis.ImportanceMedium,
			})
		}
	}

	insights = append(insights, outlierInsights(columns, outliers)...)

	for _, stat := range numericStats {
		if stat.Count == 0 {
			continue
		}
		cv := stat.StdDev / nonZero(math.Abs(stat.Mean))
		if cv > highVariabilityCV {
			insights = append(insights, analysis.Insight{
				Type:        analysis.InsightStatistic,
				Icon:        "📊",
				Title:       fmt.Sprintf("High variability in %s", stat.Column),
				Description: fmt.Sprintf("%s varies widely: standard deviation %.2f against a mean of %.2f", stat.Column, stat.StdDev, stat.Mean),
				Importance:  analysis.ImportanceMedium,
			})
		}
	}

	if len(insights) > analysis.MaxInsights {
		insights = insights[:analysis.MaxInsights]
	}
	return insights
}

// outlierInsights groups flagged outliers by column, one insight per group,
// walking columns in header order so output stays deterministic.
func outlierInsights(columns []table.Column, outliers []analysis.Outlier) []analysis.Insight {
	byColumn := make(map[string][]analysis.Outlier)
	for _, o := range outliers {
		byColumn[o.Column] = append(byColumn[o.Column], o)
	}

	var insights []analysis.Insight
	for _, col := range columns {
		group := byColumn[col.Name]
		if len(group) == 0 {
			continue
		}

		highCount, lowCount := 0, 0
		severe := false
		for _, o := range group {
			if o.Type == analysis.OutlierHigh {
				highCount++
			} else {
				lowCount++
			}
			if math.Abs(o.ZScore) > severeZThreshold {
				severe = true
			}
		}

		importance := analysis.ImportanceMedium
		if severe {
			importance = analysis.ImportanceHigh
		}
		insights = append(insights, analysis.Insight{
			Type:        analysis.InsightOutlier,
			Icon:        "⚠️",
			Title:       fmt.Sprintf("Unusual values in %s", col.Name),
			Description: fmt.Sprintf("%s contains %d unusually high and %d unusually low values", col.Name, highCount, lowCount),
			Importance:  importance,
		})
	}
	return insights
}
