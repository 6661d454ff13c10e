package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"datalens/domain/analysis"
	"datalens/domain/table"
	"datalens/internal/coerce"
)

// minCorrelationPairs is the smallest paired sample a coefficient is computed
// from.
const minCorrelationPairs = 3

// detectCorrelations computes Pearson's coefficient for every unordered pair
// of numeric columns, pairing values by row position. Pairs whose coefficient
// lands in the "none" band are discarded; the survivors are sorted by
// descending |coefficient| and capped at MaxCorrelations.
func detectCorrelations(tbl table.Table, numericColumns []string) []analysis.Correlation {
	correlations := make([]analysis.Correlation, 0)
	for i := 0; i < len(numericColumns); i++ {
		for j := i + 1; j < len(numericColumns); j++ {
			corr, ok := pairCorrelation(tbl, numericColumns[i], numericColumns[j])
			if !ok || corr.Strength == analysis.StrengthNone {
				continue
			}
			correlations = append(correlations, corr)
		}
	}

	sort.SliceStable(correlations, func(a, b int) bool {
		return math.Abs(correlations[a].Coefficient) > math.Abs(correlations[b].Coefficient)
	})
	if len(correlations) > analysis.MaxCorrelations {
		correlations = correlations[:analysis.MaxCorrelations]
	}
	return correlations
}

// pairCorrelation zips two columns by row position, keeps only positions
// where both sides coerced, and computes the sample Pearson coefficient.
// Degenerate pairs (too few points, zero variance) produce no finding rather
// than NaN.
func pairCorrelation(tbl table.Table, col1, col2 string) (analysis.Correlation, bool) {
	values1 := tbl.ColumnValues(col1)
	values2 := tbl.ColumnValues(col2)

	var x, y []float64
	for i := range values1 {
		v1, ok1 := coerce.Numeric(values1[i])
		v2, ok2 := coerce.Numeric(values2[i])
		if ok1 && ok2 {
			x = append(x, v1)
			y = append(y, v2)
		}
	}
	if len(x) < minCorrelationPairs {
		return analysis.Correlation{}, false
	}

	coefficient := stat.Correlation(x, y, nil)
	if math.IsNaN(coefficient) || math.IsInf(coefficient, 0) {
		return analysis.Correlation{}, false
	}

	strength := analysis.ClassifyCorrelation(coefficient)
	return analysis.Correlation{
		Column1:     col1,
		Column2:     col2,
		Coefficient: coefficient,
		Strength:    strength,
		Description: correlationDescription(col1, col2, coefficient, strength),
	}, true
}

func correlationDescription(col1, col2 string, coefficient float64, strength analysis.CorrelationStrength) string {
	switch strength {
	case analysis.StrengthStrongPositive:
		return fmt.Sprintf("%s and %s have a strong positive relationship: they rise and fall together", col1, col2)
	case analysis.StrengthModeratePositive:
		return fmt.Sprintf("%s and %s have a moderate positive relationship", col1, col2)
	case analysis.StrengthWeakPositive:
		return fmt.Sprintf("%s and %s show a weak positive relationship (r=%.2f)", col1, col2, coefficient)
	case analysis.StrengthWeakNegative:
		return fmt.Sprintf("%s and %s show a weak inverse relationship (r=%.2f)", col1, col2, coefficient)
	case analysis.StrengthModerateNegative:
		return fmt.Sprintf("%s and %s have a moderate inverse relationship", col1, col2)
	case analysis.StrengthStrongNegative:
		return fmt.Sprintf("%s and %s have a strong inverse relationship: one rises as the other falls", col1, col2)
	default:
		return fmt.Sprintf("No meaningful relationship between %s and %s", col1, col2)
	}
}
