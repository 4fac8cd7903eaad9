package search

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// csvBatchSize bounds how many CSV rows are held in memory at once.
const csvBatchSize = 2000

var ErrUnsupportedFormat = errors.New("unsupported file format, use CSV or XLSX")

type Result struct {
	Headers []string
	Rows    [][]string
}

// Search scans a tabular file for records whose fields, joined with a single
// space in column order, contain the query as a case-insensitive substring.
// Matching is on the joined text only, never per column, so a query may span
// a field boundary. The file kind is picked by filename extension.
func Search(r io.Reader, filename, query string) (Result, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return searchCSV(r, query)
	case strings.HasSuffix(name, ".xlsx"):
		return searchXLSX(r, query)
	default:
		return Result{}, ErrUnsupportedFormat
	}
}

// searchCSV reads the file in fixed-size row batches, matching each batch
// before reading the next. Matches keep their original row order across
// batches.
func searchCSV(r io.Reader, query string) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return Result{}, err
	}

	result := Result{Headers: headers}
	needle := strings.ToLower(query)
	batch := make([][]string, 0, csvBatchSize)

	flush := func() {
		for _, row := range batch {
			if matches(row, needle) {
				result.Rows = append(result.Rows, row)
			}
		}
		batch = batch[:0]
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, err
		}
		batch = append(batch, record)
		if len(batch) == csvBatchSize {
			flush()
		}
	}
	flush()

	return result, nil
}

// searchXLSX loads the first sheet whole and matches it in one pass.
func searchXLSX(r io.Reader, query string) (Result, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, err
	}
	defer file.Close()

	rows, err := file.GetRows(file.GetSheetName(0))
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, nil
	}

	result := Result{Headers: rows[0]}
	needle := strings.ToLower(query)
	for _, row := range rows[1:] {
		// Trailing empty cells are dropped by the reader; restore them so
		// every record carries one value per column.
		if len(row) < len(result.Headers) {
			padded := make([]string, len(result.Headers))
			copy(padded, row)
			row = padded
		}
		if matches(row, needle) {
			result.Rows = append(result.Rows, row)
		}
	}
	return result, nil
}

func matches(row []string, needle string) bool {
	joined := strings.Join(row, " ")
	return strings.Contains(strings.ToLower(joined), needle)
}
