package analysis

import (
	"fmt"
	"testing"

	"datalens/domain/analysis"
	"datalens/domain/table"
)

func TestRankInsights_RuleOrder(t *testing.T) {
	columns := []table.Column{
		{Name: "Revenue", Type: table.TypeNumeric},
		{Name: "Units", Type: table.TypeNumeric},
	}
	trends := []analysis.Trend{
		{DateColumn: "Date", ValueColumn: "Revenue", Direction: analysis.TrendIncreasing, Description: "up"},
	}
	correlations := []analysis.Correlation{
		{Column1: "Revenue", Column2: "Units", Coefficient: 0.92, Strength: analysis.StrengthStrongPositive, Description: "linked"},
	}
	outliers := []analysis.Outlier{
		{Column: "Revenue", Value: 9000, ZScore: 2.7, Type: analysis.OutlierHigh},
	}
	numericStats := []analysis.NumericStats{
		{Column: "Units", Mean: 10, StdDev: 25, Count: 50},
	}

	insights := rankInsights(columns, numericStats, correlations, trends, outliers)
	wantTypes := []analysis.InsightType{
		analysis.InsightTrend,
		analysis.InsightCorrelation,
		analysis.InsightOutlier,
		analysis.InsightStatistic,
	}
	if len(insights) != len(wantTypes) {
		t.Fatalf("got %d insights, want %d", len(insights), len(wantTypes))
	}
	for i, want := range wantTypes {
		if insights[i].Type != want {
			t.Errorf("insight %d type = %s, want %s", i, insights[i].Type, want)
		}
	}
}

func TestRankInsights_Truncation(t *testing.T) {
	trends := make([]analysis.Trend, 0, 14)
	for i := 0; i < 14; i++ {
		trends = append(trends, analysis.Trend{
			DateColumn:  "Date",
			ValueColumn: fmt.Sprintf("Metric%d", i),
			Direction:   analysis.TrendIncreasing,
		})
	}

	insights := rankInsights(nil, nil, nil, trends, nil)
	if len(insights) != analysis.MaxInsights {
		t.Fatalf("got %d insights, want %d", len(insights), analysis.MaxInsights)
	}
	// Earlier findings survive the cut.
	if insights[0].Title != "Metric0 is trending up" {
		t.Errorf("first insight = %q", insights[0].Title)
	}
}

func TestRankInsights_StableTrendIgnored(t *testing.T) {
	trends := []analysis.Trend{
		{DateColumn: "Date", ValueColumn: "Revenue", Direction: analysis.TrendStable},
	}
	if got := rankInsights(nil, nil, nil, trends, nil); len(got) != 0 {
		t.Errorf("stable trend produced %d insights, want 0", len(got))
	}
}

func TestRankInsights_WeakCorrelationIgnored(t *testing.T) {
	correlations := []analysis.Correlation{
		{Column1: "A", Column2: "B", Coefficient: 0.2, Strength: analysis.StrengthWeakPositive},
	}
	if got := rankInsights(nil, nil, correlations, nil, nil); len(got) != 0 {
		t.Errorf("weak correlation produced %d insights, want 0", len(got))
	}
}

func TestOutlierInsights_GroupsByColumn(t *testing.T) {
	columns := []table.Column{
		{Name: "Revenue", Type: table.TypeNumeric},
		{Name: "Units", Type: table.TypeNumeric},
	}
	outliers := []analysis.Outlier{
		{Column: "Units", ZScore: 2.6, Type: analysis.OutlierHigh},
		{Column: "Revenue", ZScore: -3.4, Type: analysis.OutlierLow},
		{Column: "Revenue", ZScore: 2.8, Type: analysis.OutlierHigh},
	}

	insights := outlierInsights(columns, outliers)
	if len(insights) != 2 {
		t.Fatalf("got %d insights, want one per column with outliers", len(insights))
	}
	// Groups come out in header order regardless of detection order.
	if insights[0].Title != "Unusual values in Revenue" {
		t.Errorf("first group = %q, want Revenue", insights[0].Title)
	}
	// Revenue holds a |z| > 3 member, so its group is high importance.
	if insights[0].Importance != analysis.ImportanceHigh {
		t.Errorf("Revenue importance = %s, want %s", insights[0].Importance, analysis.ImportanceHigh)
	}
	if insights[1].Importance != analysis.ImportanceMedium {
		t.Errorf("Units importance = %s, want %s", insights[1].Importance, analysis.ImportanceMedium)
	}
	if insights[0].Description != "Revenue contains 1 unusually high and 1 unusually low values" {
		t.Errorf("Description = %q", insights[0].Description)
	}
}
