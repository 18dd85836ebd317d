package analysis

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrMalformed marks uploads that cannot be parsed as a table.
	ErrMalformed = errors.New("analysis: malformed tabular data")
	// ErrUnsupportedFormat marks uploads whose extension is neither .csv nor .xlsx.
	ErrUnsupportedFormat = errors.New("analysis: unsupported file format")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load parses an upload, choosing the reader from the file extension.
func Load(r io.Reader, filename string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r, filename)
	case ".xlsx":
		return ReadXLSX(r, filename)
	default:
		return nil, fmt.Errorf("%w: %q (expected .csv or .xlsx)", ErrUnsupportedFormat, filename)
	}
}

// ReadCSV parses delimited text with a header row.
func ReadCSV(r io.Reader, name string) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("analysis: read %s: %w", name, err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: no columns to parse from file", ErrMalformed)
	}
	if bytes.IndexByte(raw, 0) >= 0 || !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: file is not UTF-8 text", ErrMalformed)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = sniffDelimiter(raw)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fromRecords(name, records)
}

// ReadXLSX parses the first worksheet of a workbook.
func ReadXLSX(r io.Reader, name string) (*Dataset, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformed)
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %s: %v", ErrMalformed, sheets[0], err)
	}
	// Worksheets drop trailing empty cells, so rows are padded to the widest one.
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		if len(row) < width {
			rows[i] = append(row, make([]string, width-len(row))...)
		}
	}
	return fromRecords(name, rows)
}

func fromRecords(name string, records [][]string) (*Dataset, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("%w: no columns to parse from file", ErrMalformed)
	}
	return newDataset(name, records[0], records[1:]), nil
}

// sniffDelimiter picks the candidate that splits the header line into the most fields.
func sniffDelimiter(raw []byte) rune {
	line := raw
	if idx := bytes.IndexByte(raw, '\n'); idx >= 0 {
		line = raw[:idx]
	}
	best, bestCount := ',', 0
	for _, candidate := range []rune{',', ';', '\t', '|'} {
		if n := bytes.Count(line, []byte(string(candidate))); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}
