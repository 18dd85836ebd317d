package analysis

import (
	"strconv"
	"strings"
)

// ColumnKind classifies a column for the analysis pipeline.
type ColumnKind string

const (
	Numeric     ColumnKind = "numeric"
	Categorical ColumnKind = "categorical"
)

var missingMarkers = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NaN":  {},
	"nan":  {},
	"NULL": {},
	"null": {},
	"None": {},
	"#N/A": {},
	"<NA>": {},
}

// IsMissing reports whether a raw cell counts as a missing value.
func IsMissing(raw string) bool {
	_, ok := missingMarkers[strings.TrimSpace(raw)]
	return ok
}

// Column is a named column of raw cells plus its inferred kind.
// Numbers is populated for numeric columns; Missing marks absent cells.
type Column struct {
	Name    string     `json:"name"`
	Kind    ColumnKind `json:"kind"`
	Values  []string   `json:"-"`
	Numbers []float64  `json:"-"`
	Missing []bool     `json:"-"`
}

// MissingCount returns the number of missing cells.
func (c Column) MissingCount() int {
	n := 0
	for _, m := range c.Missing {
		if m {
			n++
		}
	}
	return n
}

// Dataset is an uploaded table: named columns of equal length.
type Dataset struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Rows    int      `json:"rows"`
}

// Column returns the named column.
func (d *Dataset) Column(name string) (Column, bool) {
	for _, col := range d.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Headers returns the column names in file order.
func (d *Dataset) Headers() []string {
	out := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		out[i] = col.Name
	}
	return out
}

// NumericColumns returns the numeric columns in file order.
func (d *Dataset) NumericColumns() []Column {
	return d.columnsOfKind(Numeric)
}

// CategoricalColumns returns the non-numeric columns in file order.
func (d *Dataset) CategoricalColumns() []Column {
	return d.columnsOfKind(Categorical)
}

func (d *Dataset) columnsOfKind(kind ColumnKind) []Column {
	var out []Column
	for _, col := range d.Columns {
		if col.Kind == kind {
			out = append(out, col)
		}
	}
	return out
}

// Preview returns the header and the first n rows as display strings.
func (d *Dataset) Preview(n int) ([]string, [][]string) {
	if n < 0 || n > d.Rows {
		n = d.Rows
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(d.Columns))
		for j, col := range d.Columns {
			if col.Missing[i] {
				row[j] = "NaN"
				continue
			}
			row[j] = strings.TrimSpace(col.Values[i])
		}
		rows[i] = row
	}
	return d.Headers(), rows
}

// newDataset builds typed columns from a header and rectangular rows.
func newDataset(name string, header []string, rows [][]string) *Dataset {
	names := normalizeHeaders(header)
	ds := &Dataset{Name: name, Rows: len(rows), Columns: make([]Column, len(names))}
	for j, colName := range names {
		col := Column{
			Name:    colName,
			Values:  make([]string, len(rows)),
			Missing: make([]bool, len(rows)),
		}
		for i, row := range rows {
			if j < len(row) {
				col.Values[i] = row[j]
			}
			col.Missing[i] = IsMissing(col.Values[i])
		}
		inferKind(&col)
		ds.Columns[j] = col
	}
	return ds
}

// inferKind marks a column numeric when every present cell parses as a float.
// A column with no present cells is numeric, matching an all-NaN float column.
func inferKind(col *Column) {
	numbers := make([]float64, len(col.Values))
	for i, raw := range col.Values {
		if col.Missing[i] {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			col.Kind = Categorical
			return
		}
		numbers[i] = v
	}
	col.Kind = Numeric
	col.Numbers = numbers
}

// normalizeHeaders names blank headers "Unnamed: <i>" and suffixes duplicates with ".<n>".
func normalizeHeaders(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		if n, dup := seen[h]; dup {
			base := h
			for {
				n++
				h = base + "." + strconv.Itoa(n)
				if _, taken := seen[h]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[h] = 0
		out[i] = h
	}
	return out
}
