// Package infer classifies each column's semantic type from a bounded sample
// of its non-empty cell strings.
package infer

import (
	"regexp"
	"strings"

	"datalens/domain/analysis"
	"datalens/domain/table"
	"datalens/internal/coerce"
)

// maxCategoricalDistinct caps how many distinct values a categorical column
// may have regardless of sample size.
const maxCategoricalDistinct = 20

// sampleValueCount is how many raw values each Column carries for UI preview.
const sampleValueCount = 5

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),            // YYYY-MM-DD
	regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),        // MM/DD/YYYY
	regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`),        // MM-DD-YYYY
	regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`),            // YYYY/MM/DD
	regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`),      // M/D/YY or M/D/YYYY
	regexp.MustCompile(`^[A-Za-z]{3,9} \d{1,2}, \d{4}$`), // Mon D, YYYY
}

// IsDateLike reports whether a value matches one of the recognized date
// layouts.
func IsDateLike(value string) bool {
	v := strings.TrimSpace(value)
	for _, pattern := range datePatterns {
		if pattern.MatchString(v) {
			return true
		}
	}
	return false
}

// Type infers the semantic type of one column from its raw values.
//
// Empty cells are discarded first; a column with no remaining values is text.
// The first min(100, n) non-empty values form the sample, and each sampled
// value is tested independently against the boolean, numeric and date buckets
// (non-exclusive). A bucket wins when it covers at least 70% of the sample,
// with priority date > boolean > numeric. Failing that, the column is
// categorical when its distinct sampled values fit within
// min(20, 30% of sample size), otherwise text.
func Type(values []string) table.SemanticType {
	nonEmpty := table.NonEmptyValues(values)
	if len(nonEmpty) == 0 {
		return table.TypeText
	}

	sample := nonEmpty
	if len(sample) > analysis.TypeSampleSize {
		sample = sample[:analysis.TypeSampleSize]
	}

	var dateCount, boolCount, numericCount int
	distinct := make(map[string]struct{}, len(sample))
	for _, v := range sample {
		if IsDateLike(v) {
			dateCount++
		}
		if _, ok := coerce.Boolean(v); ok {
			boolCount++
		}
		if _, ok := coerce.Numeric(v); ok {
			numericCount++
		}
		distinct[strings.TrimSpace(v)] = struct{}{}
	}

	threshold := analysis.TypeThreshold * float64(len(sample))
	switch {
	case float64(dateCount) >= threshold:
		return table.TypeDate
	case float64(boolCount) >= threshold:
		return table.TypeBoolean
	case float64(numericCount) >= threshold:
		return table.TypeNumeric
	}

	maxDistinct := maxCategoricalDistinct
	if limit := int(0.3 * float64(len(sample))); limit < maxDistinct {
		maxDistinct = limit
	}
	if len(distinct) <= maxDistinct {
		return table.TypeCategorical
	}
	return table.TypeText
}

// Columns runs type inference over every header of the table and attaches the
// first few raw values as a preview sample.
func Columns(tbl table.Table) []table.Column {
	columns := make([]table.Column, 0, len(tbl.Headers))
	for _, header := range tbl.Headers {
		values := tbl.ColumnValues(header)
		columns = append(columns, table.Column{
			Name:         header,
			Type:         Type(values),
			SampleValues: sampleValues(values, sampleValueCount),
		})
	}
	return columns
}

func sampleValues(values []string, limit int) []string {
	samples := make([]string, 0, limit)
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		samples = append(samples, v)
		if len(samples) >= limit {
			break
		}
	}
	return samples
}
