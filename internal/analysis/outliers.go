package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"datalens/domain/analysis"
	"datalens/domain/table"
	"datalens/internal/coerce"
)

// minOutlierSample avoids flagging on tiny samples where a z-score is
// meaningless.
const minOutlierSample = 5

// detectOutliers flags extreme values in one numeric column by z-score.
// Constant columns (stddev 0) report nothing. Flagged values are sorted by
// descending |z| and capped at MaxOutliersPerColumn.
func detectOutliers(tbl table.Table, column string) []analysis.Outlier {
	indexed := coerce.Column(tbl.ColumnValues(column))
	if len(indexed) < minOutlierSample {
		return nil
	}

	data := make([]float64, len(indexed))
	for i, iv := range indexed {
		data[i] = iv.Value
	}
	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviationSample(data)
	if stdDev == 0 {
		return nil
	}

	var outliers []analysis.Outlier
	for _, iv := range indexed {
		z := (iv.Value - mean) / stdDev
		if math.Abs(z) < analysis.OutlierZThreshold {
			continue
		}
		outlierType := analysis.OutlierHigh
		side := "high"
		if z < 0 {
			outlierType = analysis.OutlierLow
			side = "low"
		}
		outliers = append(outliers, analysis.Outlier{
			Column: column,
			Value:  iv.Value,
			Index:  iv.Index,
			Type:   outlierType,
			ZScore: z,
			Description: fmt.Sprintf("Row %d has an unusually %s value of %.2f (%.1f standard deviations from the mean)",
				iv.Index+1, side, iv.Value, math.Abs(z)),
		})
	}

	sort.SliceStable(outliers, func(a, b int) bool {
		return math.Abs(outliers[a].ZScore) > math.Abs(outliers[b].ZScore)
	})
	if len(outliers) > analysis.MaxOutliersPerColumn {
		outliers = outliers[:analysis.MaxOutliersPerColumn]
	}
	return outliers
}
