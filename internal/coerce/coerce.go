// Package coerce converts raw string cells to typed values. Coercion fails
// silently per cell: a value that does not parse is dropped from the relevant
// aggregate, never zero-filled.
package coerce

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var currencySymbols = []string{"$", "€", "£", "¥"}

// European-format detection: 1.234,56 uses "." for thousands and "," for the
// decimal separator. Anything else treats "," as a thousands separator.
var (
	europeanGrouped = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+(,\d+)?$`)
	europeanPlain   = regexp.MustCompile(`^-?\d+,\d+$`)
)

// Numeric parses a locale-formatted numeric string into a float. It tolerates
// currency symbols, a percent suffix, and both US (1,234.56) and European
// (1.234,56) separator conventions. The result must be finite.
func Numeric(raw string) (float64, bool) {
	cleanVal := strings.TrimSpace(raw)
	if cleanVal == "" {
		return 0, false
	}

	for _, symbol := range currencySymbols {
		cleanVal = strings.ReplaceAll(cleanVal, symbol, "")
	}
	cleanVal = strings.TrimSuffix(strings.TrimSpace(cleanVal), "%")
	cleanVal = strings.TrimSpace(cleanVal)

	if europeanGrouped.MatchString(cleanVal) || europeanPlain.MatchString(cleanVal) {
		cleanVal = strings.ReplaceAll(cleanVal, ".", "")
		cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
	} else {
		cleanVal = strings.ReplaceAll(cleanVal, ",", "")
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// Boolean recognizes the boolean token set true/false/yes/no/1/0,
// case-insensitive after trimming.
func Boolean(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	}
	return false, false
}

// IndexedValue is a successfully coerced numeric cell paired with its
// original row position.
type IndexedValue struct {
	Index int
	Value float64
}

// Column coerces every cell of a column, retaining original row indexes for
// values that parse. Failed cells are excluded.
func Column(values []string) []IndexedValue {
	out := make([]IndexedValue, 0, len(values))
	for i, v := range values {
		if num, ok := Numeric(v); ok {
			out = append(out, IndexedValue{Index: i, Value: num})
		}
	}
	return out
}

// Values coerces a column and returns only the parsed floats in row order.
func Values(values []string) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if num, ok := Numeric(v); ok {
			out = append(out, num)
		}
	}
	return out
}
