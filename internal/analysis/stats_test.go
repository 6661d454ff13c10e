package analysis

import (
	"math"
	"testing"
)

func TestComputeNumericStats(t *testing.T) {
	tbl := columnTable("Revenue", []string{"10", "20", "30", "40", "50"})

	st := computeNumericStats(tbl, "Revenue")
	if st.Count != 5 {
		t.Fatalf("Count = %d, want 5", st.Count)
	}
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"Mean", st.Mean, 30},
		{"Median", st.Median, 30},
		{"Min", st.Min, 10},
		{"Max", st.Max, 50},
		{"Total", st.Total, 150},
		{"StdDev", st.StdDev, 15.8113883},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-6 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestComputeNumericStats_SkipsUncoercibleCells(t *testing.T) {
	tbl := columnTable("Amount", []string{"$1,000", "n/a", "2000", "", "3.000,50"})

	st := computeNumericStats(tbl, "Amount")
	if st.Count != 3 {
		t.Fatalf("Count = %d, want 3", st.Count)
	}
	if math.Abs(st.Total-6000.50) > 1e-9 {
		t.Errorf("Total = %v, want 6000.50", st.Total)
	}
}

func TestComputeNumericStats_EmptyColumn(t *testing.T) {
	tbl := columnTable("Notes", []string{"alpha", "beta", ""})

	st := computeNumericStats(tbl, "Notes")
	if st.Count != 0 {
		t.Fatalf("Count = %d, want 0", st.Count)
	}
	if st.Mean != 0 || st.StdDev != 0 || st.Min != 0 || st.Max != 0 {
		t.Errorf("empty column should yield zero stats, got %+v", st)
	}
}

func TestComputeNumericStats_SingleValueHasNoSpread(t *testing.T) {
	tbl := columnTable("X", []string{"42"})

	st := computeNumericStats(tbl, "X")
	if st.Count != 1 {
		t.Fatalf("Count = %d, want 1", st.Count)
	}
	if st.StdDev != 0 {
		t.Errorf("StdDev = %v, want 0 for a single value", st.StdDev)
	}
	if st.Mean != 42 || st.Median != 42 {
		t.Errorf("Mean/Median = %v/%v, want 42/42", st.Mean, st.Median)
	}
}
