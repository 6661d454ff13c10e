package analysis

import (
	"math"
	"reflect"
	"testing"

	"datalens/domain/analysis"
	"datalens/domain/table"
	"datalens/internal/testkit"
)

func TestAnalyze_MonthRevenueScenario(t *testing.T) {
	tbl := table.Table{
		Headers: []string{"Month", "Revenue"},
		Rows: []table.Row{
			{"Month": "Jan", "Revenue": "45200"},
			{"Month": "Feb", "Revenue": "52100"},
			{"Month": "Mar", "Revenue": "48900"},
		},
	}

	result := NewEngine().Analyze(tbl, "revenue.csv", Options{})

	if result.RowCount != 3 || result.ColumnCount != 2 {
		t.Fatalf("RowCount/ColumnCount = %d/%d, want 3/2", result.RowCount, result.ColumnCount)
	}
	if got := result.Columns[1].Type; got != table.TypeNumeric {
		t.Errorf("Revenue type = %s, want %s", got, table.TypeNumeric)
	}

	if len(result.NumericStats) != 1 {
		t.Fatalf("got %d numeric stats, want 1", len(result.NumericStats))
	}
	st := result.NumericStats[0]
	if st.Count != 3 {
		t.Errorf("Revenue count = %d, want 3", st.Count)
	}
	if math.Abs(st.Mean-48733.33) > 0.01 {
		t.Errorf("Revenue mean = %v, want 48733.33", st.Mean)
	}

	// A single numeric column can pair with nothing, and there is no date
	// column to anchor a trend.
	if len(result.Correlations) != 0 {
		t.Errorf("got %d correlations, want 0", len(result.Correlations))
	}
	if len(result.Trends) != 0 {
		t.Errorf("got %d trends, want 0", len(result.Trends))
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	tbl := testkit.SalesTable(120)

	first := NewEngine().Analyze(tbl, "sales.csv", Options{})
	second := NewEngine().Analyze(tbl, "sales.csv", Options{})

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over identical input differ")
	}
}

func TestAnalyze_ReanalysisIdempotence(t *testing.T) {
	engine := NewEngine()
	first := engine.Analyze(testkit.SalesTable(80), "sales.csv", Options{})

	// Feed the stored raw rows straight back in, rebuilding headers from the
	// typed columns the way the re-analysis endpoint does.
	headers := make([]string, len(first.Columns))
	for i, col := range first.Columns {
		headers[i] = col.Name
	}
	replay := table.Table{Headers: headers, Rows: first.RawData}
	second := engine.Analyze(replay, "sales.csv", Options{})

	if !reflect.DeepEqual(first, second) {
		t.Error("re-analyzing stored raw data changed the result")
	}
}

func TestAnalyze_FindsPlantedCorrelation(t *testing.T) {
	tbl := testkit.SalesTable(120)
	result := NewEngine().Analyze(tbl, "sales.csv", Options{})

	found := false
	for _, corr := range result.Correlations {
		pair := corr.Column1 == "Revenue" && corr.Column2 == "Units" ||
			corr.Column1 == "Units" && corr.Column2 == "Revenue"
		if pair && corr.Strength.IsStrong() {
			found = true
		}
	}
	if !found {
		t.Error("planted Revenue/Units correlation not detected")
	}
}

func TestAnalyze_IdentifierColumnsExcluded(t *testing.T) {
	tbl := testkit.SalesTable(60)
	result := NewEngine().Analyze(tbl, "sales.csv", Options{
		IdentifierColumns: []string{"Region"},
	})

	// The column is still typed and profiled.
	var region *table.Column
	for i := range result.Columns {
		if result.Columns[i].Name == "Region" {
			region = &result.Columns[i]
		}
	}
	if region == nil {
		t.Fatal("identifier column missing from the profile")
	}

	// But it never becomes a category chart axis.
	for _, chart := range result.Charts {
		if chart.Type == analysis.ChartBar && chart.XAxis == "Region" {
			t.Error("identifier column used as a chart grouping axis")
		}
	}
}

func TestAnalyze_Bounds(t *testing.T) {
	result := NewEngine().Analyze(testkit.SalesTable(300), "sales.csv", Options{})

	if len(result.Insights) > analysis.MaxInsights {
		t.Errorf("%d insights exceeds cap", len(result.Insights))
	}
	if len(result.Correlations) > analysis.MaxCorrelations {
		t.Errorf("%d correlations exceeds cap", len(result.Correlations))
	}
	if len(result.Charts) > analysis.MaxCharts {
		t.Errorf("%d charts exceeds cap", len(result.Charts))
	}
	perColumn := make(map[string]int)
	for _, o := range result.Outliers {
		perColumn[o.Column]++
		if perColumn[o.Column] > analysis.MaxOutliersPerColumn {
			t.Errorf("column %s exceeds the per-column outlier cap", o.Column)
		}
	}
}

func TestAnalyze_NoNumericColumns(t *testing.T) {
	tbl := table.Table{
		Headers: []string{"Name", "Note"},
		Rows: []table.Row{
			{"Name": "alpha", "Note": "first entry"},
			{"Name": "beta", "Note": "second entry"},
		},
	}

	result := NewEngine().Analyze(tbl, "notes.csv", Options{})
	if len(result.NumericStats) != 0 || len(result.Correlations) != 0 ||
		len(result.Trends) != 0 || len(result.Outliers) != 0 {
		t.Errorf("text-only table produced numeric findings: %+v", result)
	}
	if result.RowCount != 2 {
		t.Errorf("RowCount = %d, want 2", result.RowCount)
	}
}

func TestAnalyze_CarriesRawData(t *testing.T) {
	tbl := testkit.SalesTable(10)
	result := NewEngine().Analyze(tbl, "sales.csv", Options{})

	if len(result.RawData) != 10 {
		t.Fatalf("RawData has %d rows, want 10", len(result.RawData))
	}
	if !reflect.DeepEqual(result.RawData[0], tbl.Rows[0]) {
		t.Error("RawData does not round-trip the input rows")
	}
}
