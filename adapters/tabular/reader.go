// Package tabular reads CSV and Excel files into the flat header/row shape
// the analysis engine consumes. Header-row detection is simple by design: the
// first row is the header row, and every cell is delivered as a trimmed
// string with missing cells as "".
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"datalens/domain/table"
	"datalens/internal/errors"
)

// Reader handles reading Excel and CSV files
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a new data reader that handles both Excel and CSV files
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" || ext == ".tsv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read reads the file into a Table
func (r *Reader) Read() (table.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return table.Table{}, errors.NotFound(fmt.Sprintf("file %s", r.filePath))
	}

	file, err := os.Open(r.filePath)
	if err != nil {
		return table.Table{}, errors.Wrapf(err, "failed to open %s", r.filePath)
	}
	defer file.Close()

	return ReadFrom(file, r.filePath)
}

// ReadFrom reads tabular data from a stream, choosing the decoder by file
// extension. Used by the upload handler so files never touch disk.
func ReadFrom(reader io.Reader, filename string) (table.Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readDelimited(reader, ',')
	case ".tsv":
		return readDelimited(reader, '\t')
	case ".xlsx", ".xls":
		return readExcel(reader)
	default:
		return table.Table{}, errors.UnsupportedFile(fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)))
	}
}

func readDelimited(reader io.Reader, delimiter rune) (table.Table, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := csvReader.ReadAll()
	if err != nil {
		return table.Table{}, errors.Wrap(err, "failed to read delimited data")
	}
	if len(records) < 2 {
		return table.Table{}, errors.InvalidInput("file must have a header row and at least one data row")
	}
	return processRecords(records), nil
}

func readExcel(reader io.Reader) (table.Table, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return table.Table{}, errors.Wrap(err, "failed to open Excel data")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table.Table{}, errors.InvalidInput("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return table.Table{}, errors.Wrapf(err, "failed to read sheet %s", sheets[0])
	}
	if len(records) < 2 {
		return table.Table{}, errors.InvalidInput("sheet must have a header row and at least one data row")
	}
	return processRecords(records), nil
}

// processRecords converts raw string records into a Table. The first record
// is the header row; data cells are trimmed and keyed by the exact header
// strings, with short rows padded by the zero value "".
func processRecords(records [][]string) table.Table {
	headerRow := records[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	rows := make([]table.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(table.Row, len(headers))
		for j, header := range headers {
			if j < len(record) {
				row[header] = strings.TrimSpace(record[j])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return table.Table{Headers: headers, Rows: rows}
}
