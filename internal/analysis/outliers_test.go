package analysis

import (
	"fmt"
	"math"
	"testing"

	"datalens/domain/analysis"
)

// boundaryColumn builds 16 values of ±1 plus a symmetric ±extreme pair. The
// base is symmetric, so the mean stays at zero and the extreme's z-score is
// extreme/sampleStdDev, which crosses 2.5 between extreme=4.70 and 4.72.
func boundaryColumn(extreme string) []string {
	values := make([]string, 0, 18)
	for i := 0; i < 8; i++ {
		values = append(values, "1", "-1")
	}
	return append(values, extreme, "-"+extreme)
}

func TestDetectOutliers_ZThresholdBoundary(t *testing.T) {
	// z ≈ 2.50, just over the threshold: both extremes flagged.
	tbl := columnTable("X", boundaryColumn("4.72"))
	outliers := detectOutliers(tbl, "X")
	if len(outliers) != 2 {
		t.Fatalf("extreme 4.72: got %d outliers, want 2", len(outliers))
	}
	var sawHigh, sawLow bool
	for _, o := range outliers {
		switch o.Type {
		case analysis.OutlierHigh:
			sawHigh = true
			if o.Value != 4.72 {
				t.Errorf("high outlier value = %v, want 4.72", o.Value)
			}
		case analysis.OutlierLow:
			sawLow = true
		}
		if math.Abs(o.ZScore) < analysis.OutlierZThreshold {
			t.Errorf("flagged outlier with |z| = %v below threshold", math.Abs(o.ZScore))
		}
	}
	if !sawHigh || !sawLow {
		t.Error("expected one high and one low outlier")
	}

	// z ≈ 2.498, just under: nothing flagged.
	tbl = columnTable("X", boundaryColumn("4.70"))
	if got := detectOutliers(tbl, "X"); len(got) != 0 {
		t.Errorf("extreme 4.70: got %d outliers, want 0", len(got))
	}
}

func TestDetectOutliers_ReportsOriginalRowIndex(t *testing.T) {
	// Uncoercible cells before the extreme must not shift its reported index.
	values := []string{"n/a", "10", "10", "", "10", "10", "10", "10", "10", "10", "10", "100"}
	tbl := columnTable("X", values)

	outliers := detectOutliers(tbl, "X")
	if len(outliers) != 1 {
		t.Fatalf("got %d outliers, want 1", len(outliers))
	}
	if outliers[0].Index != 11 {
		t.Errorf("Index = %d, want 11 (position in the original rows)", outliers[0].Index)
	}
	want := "Row 12 has an unusually high value of 100.00"
	if got := outliers[0].Description; len(got) < len(want) || got[:len(want)] != want {
		t.Errorf("Description = %q, want prefix %q", got, want)
	}
}

func TestDetectOutliers_ConstantColumn(t *testing.T) {
	tbl := columnTable("X", []string{"7", "7", "7", "7", "7", "7"})
	if got := detectOutliers(tbl, "X"); got != nil {
		t.Errorf("constant column: got %v, want nil", got)
	}
}

func TestDetectOutliers_TooFewValues(t *testing.T) {
	tbl := columnTable("X", []string{"1", "2", "3", "1000"})
	if got := detectOutliers(tbl, "X"); got != nil {
		t.Errorf("4 values: got %v, want nil", got)
	}
}

func TestDetectOutliers_CapSortedByMagnitude(t *testing.T) {
	// 200 base values of ±1 plus 12 symmetric extremes from ±20 to ±30:
	// all 12 clear the threshold, so the two weakest (±20) fall off the cap.
	values := make([]string, 0, 212)
	for i := 0; i < 100; i++ {
		values = append(values, "1", "-1")
	}
	for e := 20; e <= 30; e += 2 {
		values = append(values, fmt.Sprintf("%d", e), fmt.Sprintf("-%d", e))
	}
	tbl := columnTable("X", values)

	outliers := detectOutliers(tbl, "X")
	if len(outliers) != analysis.MaxOutliersPerColumn {
		t.Fatalf("got %d outliers, want cap of %d", len(outliers), analysis.MaxOutliersPerColumn)
	}
	if math.Abs(outliers[0].Value) != 30 {
		t.Errorf("strongest outlier value = %v, want ±30", outliers[0].Value)
	}
	for i, o := range outliers {
		if math.Abs(o.Value) == 20 {
			t.Error("weakest extremes (±20) should be dropped by the cap")
		}
		if i > 0 && math.Abs(o.ZScore) > math.Abs(outliers[i-1].ZScore)+1e-12 {
			t.Errorf("outliers not sorted by descending |z| at %d", i)
		}
	}
}
