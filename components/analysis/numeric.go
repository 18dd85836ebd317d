package analysis

// NumericFrame is the numeric subframe: numeric columns with every row that
// has a missing value removed, then every constant column removed.
type NumericFrame struct {
	Columns     []string    `json:"columns"`
	Data        [][]float64 `json:"-"`
	Dropped     []string    `json:"dropped_columns,omitempty"`
	RowsDropped int         `json:"rows_dropped"`
}

// Width is the number of usable numeric columns.
func (f NumericFrame) Width() int {
	return len(f.Columns)
}

// Len is the number of complete rows.
func (f NumericFrame) Len() int {
	if len(f.Data) == 0 {
		return 0
	}
	return len(f.Data[0])
}

// NumericSubframe extracts the numeric columns, drops incomplete rows, then
// drops columns whose variance is zero or undefined.
func NumericSubframe(ds *Dataset) NumericFrame {
	cols := ds.NumericColumns()
	frame := NumericFrame{}
	if len(cols) == 0 {
		return frame
	}

	keep := make([]int, 0, ds.Rows)
	for i := 0; i < ds.Rows; i++ {
		complete := true
		for _, col := range cols {
			if col.Missing[i] {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}
	frame.RowsDropped = ds.Rows - len(keep)

	for _, col := range cols {
		values := make([]float64, len(keep))
		for k, i := range keep {
			values[k] = col.Numbers[i]
		}
		if !hasVariance(values) {
			frame.Dropped = append(frame.Dropped, col.Name)
			continue
		}
		frame.Columns = append(frame.Columns, col.Name)
		frame.Data = append(frame.Data, values)
	}
	return frame
}

// hasVariance compares values exactly; a float variance of a constant column
// can come out as a tiny non-zero residue.
func hasVariance(values []float64) bool {
	if len(values) < 2 {
		return false
	}
	for _, v := range values[1:] {
		if v != values[0] {
			return true
		}
	}
	return false
}
