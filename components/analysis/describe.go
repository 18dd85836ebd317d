package analysis

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// Summary is a describe table: one row per statistic, one cell per column.
type Summary struct {
	Columns []string     `json:"columns"`
	Rows    []SummaryRow `json:"rows"`
}

// SummaryRow holds one statistic across all described columns.
type SummaryRow struct {
	Stat  string   `json:"stat"`
	Cells []string `json:"cells"`
}

// Empty reports whether there was nothing to describe.
func (s Summary) Empty() bool {
	return len(s.Columns) == 0
}

// NumericStats are the describe statistics for one numeric column.
type NumericStats struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

var numericStatNames = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Describe summarizes numeric columns; when there are none it falls back to
// count/unique/top/freq over the categorical columns.
func Describe(ds *Dataset) Summary {
	numeric := ds.NumericColumns()
	if len(numeric) > 0 {
		return describeNumeric(numeric)
	}
	return describeCategorical(ds.CategoricalColumns())
}

func describeNumeric(cols []Column) Summary {
	summary := Summary{Columns: make([]string, len(cols))}
	stats := make([]NumericStats, len(cols))
	for i, col := range cols {
		summary.Columns[i] = col.Name
		stats[i] = ComputeNumericStats(presentNumbers(col))
	}
	for _, name := range numericStatNames {
		row := SummaryRow{Stat: name, Cells: make([]string, len(cols))}
		for i, s := range stats {
			row.Cells[i] = s.cell(name)
		}
		summary.Rows = append(summary.Rows, row)
	}
	return summary
}

func (s NumericStats) cell(name string) string {
	switch name {
	case "count":
		return strconv.Itoa(s.Count)
	case "mean":
		return FormatFloat(s.Mean)
	case "std":
		return FormatFloat(s.Std)
	case "min":
		return FormatFloat(s.Min)
	case "25%":
		return FormatFloat(s.Q25)
	case "50%":
		return FormatFloat(s.Q50)
	case "75%":
		return FormatFloat(s.Q75)
	case "max":
		return FormatFloat(s.Max)
	}
	return ""
}

// ComputeNumericStats returns NaN for statistics that are undefined for the sample size.
func ComputeNumericStats(values []float64) NumericStats {
	s := NumericStats{Count: len(values)}
	nan := math.NaN()
	if s.Count == 0 {
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(sorted, nil)
	s.Std = nan
	if s.Count > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q25 = quantile(sorted, 0.25)
	s.Q50 = quantile(sorted, 0.5)
	s.Q75 = quantile(sorted, 0.75)
	return s
}

// quantile interpolates linearly between the closest ranks of sorted data
// (position p*(n-1)), which none of gonum's CumulantKind estimators match.
func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

func describeCategorical(cols []Column) Summary {
	summary := Summary{Columns: make([]string, len(cols))}
	rows := map[string][]string{}
	for i, col := range cols {
		summary.Columns[i] = col.Name
		counts := countValues(col)
		present := len(col.Values) - col.MissingCount()
		top, freq := "NaN", "NaN"
		if len(counts) > 0 {
			top = counts[0].Value
			freq = strconv.Itoa(counts[0].Count)
		}
		rows["count"] = append(rows["count"], strconv.Itoa(present))
		rows["unique"] = append(rows["unique"], strconv.Itoa(len(counts)))
		rows["top"] = append(rows["top"], top)
		rows["freq"] = append(rows["freq"], freq)
	}
	if len(cols) == 0 {
		return summary
	}
	for _, name := range []string{"count", "unique", "top", "freq"} {
		summary.Rows = append(summary.Rows, SummaryRow{Stat: name, Cells: rows[name]})
	}
	return summary
}

func presentNumbers(col Column) []float64 {
	out := make([]float64, 0, len(col.Numbers))
	for i, v := range col.Numbers {
		if !col.Missing[i] {
			out = append(out, v)
		}
	}
	return out
}

// FormatFloat renders statistics with six decimals, NaN and infinities by name.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
