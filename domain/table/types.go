package table

import "strings"

// SemanticType is the inferred category of a column's data, distinct from its
// raw string representation.
type SemanticType string

const (
	TypeNumeric     SemanticType = "numeric"
	TypeCategorical SemanticType = "categorical"
	TypeDate        SemanticType = "date"
	TypeBoolean     SemanticType = "boolean"
	TypeText        SemanticType = "text"
)

// Column describes one column of a table after type inference.
// Immutable after creation; re-derived whenever the underlying rows change.
type Column struct {
	Name         string       `json:"name"`
	Type         SemanticType `json:"type"`
	SampleValues []string     `json:"sample_values"` // first 5 raw strings, UI preview only
}

// Row maps column name to the raw string cell value, pre-coercion.
// Missing cells are represented as "".
type Row map[string]string

// Table is a fully materialized in-memory table: exact header strings plus
// rows keyed by those headers. Collaborators (file ingestion, the re-analysis
// layer) deliver this shape; the engine never mutates it.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// ColumnValues returns the raw cell strings of one column in row order.
// Absent keys come back as "" so positions stay aligned with the row set.
func (t Table) ColumnValues(name string) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[name]
	}
	return values
}

// HasHeader reports whether the table declares the given header.
func (t Table) HasHeader(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the table has no headers or no rows.
func (t Table) IsEmpty() bool {
	return len(t.Headers) == 0 || len(t.Rows) == 0
}

// NonEmptyValues filters out cells that are empty after trimming.
func NonEmptyValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
