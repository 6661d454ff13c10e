// Package testkit generates deterministic synthetic tables for tests and the
// CLI demo mode.
package testkit

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"datalens/domain/table"
)

var regions = []string{"North", "South", "East", "West"}

// SalesTable builds a synthetic daily sales table with a date column, a
// categorical region, correlated Revenue/Units columns and an identifier
// column. The same row count always yields the same table.
func SalesTable(rows int) table.Table {
	rng := rand.New(rand.NewSource(42))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	headers := []string{"Date", "Region", "Revenue", "Units", "OrderID"}
	out := table.Table{Headers: headers, Rows: make([]table.Row, 0, rows)}

	for i := 0; i < rows; i++ {
		units := 10 + rng.Intn(90)
		revenue := float64(units)*52.5 + rng.Float64()*200
		out.Rows = append(out.Rows, table.Row{
			"Date":    start.AddDate(0, 0, i).Format("2006-01-02"),
			"Region":  regions[rng.Intn(len(regions))],
			"Revenue": fmt.Sprintf("%.2f", revenue),
			"Units":   strconv.Itoa(units),
			"OrderID": fmt.Sprintf("ORD-%05d", i+1),
		})
	}
	return out
}

// ConstantColumn builds a single-column table where every cell holds the same
// value. Useful for exercising degenerate statistical paths.
func ConstantColumn(name, value string, rows int) table.Table {
	out := table.Table{Headers: []string{name}, Rows: make([]table.Row, 0, rows)}
	for i := 0; i < rows; i++ {
		out.Rows = append(out.Rows, table.Row{name: value})
	}
	return out
}
