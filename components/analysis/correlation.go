package analysis

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix is a square Pearson matrix over the numeric subframe.
// Values is row-major: Values[i][j] pairs Columns[i] with Columns[j].
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// Empty reports whether the matrix has no columns.
func (m CorrelationMatrix) Empty() bool {
	return len(m.Columns) == 0
}

// Size is the number of rows (and columns).
func (m CorrelationMatrix) Size() int {
	return len(m.Columns)
}

// Symmetric reports whether Values[i][j] == Values[j][i] for all pairs.
func (m CorrelationMatrix) Symmetric() bool {
	for i := range m.Values {
		for j := range m.Values[i] {
			a, b := m.Values[i][j], m.Values[j][i]
			if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
				return false
			}
		}
	}
	return true
}

// Reorder returns a copy with rows and columns permuted by order.
func (m CorrelationMatrix) Reorder(order []int) CorrelationMatrix {
	out := CorrelationMatrix{
		Columns: make([]string, len(order)),
		Values:  make([][]float64, len(order)),
	}
	for i, oi := range order {
		out.Columns[i] = m.Columns[oi]
		out.Values[i] = make([]float64, len(order))
		for j, oj := range order {
			out.Values[i][j] = m.Values[oi][oj]
		}
	}
	return out
}

// MarshalJSON writes non-finite coefficients as null.
func (m CorrelationMatrix) MarshalJSON() ([]byte, error) {
	values := make([][]*float64, len(m.Values))
	for i, row := range m.Values {
		values[i] = make([]*float64, len(row))
		for j := range row {
			if v := row[j]; !math.IsNaN(v) && !math.IsInf(v, 0) {
				values[i][j] = &v
			}
		}
	}
	return json.Marshal(struct {
		Columns []string     `json:"columns"`
		Values  [][]*float64 `json:"values"`
	}{m.Columns, values})
}

// Correlate computes pairwise Pearson coefficients. Only the upper triangle is
// computed and mirrored, and the diagonal is fixed at 1.
func Correlate(frame NumericFrame) CorrelationMatrix {
	n := frame.Width()
	m := CorrelationMatrix{
		Columns: append([]string(nil), frame.Columns...),
		Values:  make([][]float64, n),
	}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
		m.Values[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := stat.Correlation(frame.Data[i], frame.Data[j], nil)
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

// ClusterOrder orders the matrix columns by average-linkage agglomerative
// clustering on the distance 1-r, so correlated columns end up adjacent.
func ClusterOrder(m CorrelationMatrix) []int {
	n := m.Size()
	clusters := make([][]int, n)
	for i := range clusters {
		clusters[i] = []int{i}
	}
	dist := func(a, b int) float64 {
		r := m.Values[a][b]
		if math.IsNaN(r) {
			return 2
		}
		return 1 - r
	}
	linkage := func(a, b []int) float64 {
		sum := 0.0
		for _, i := range a {
			for _, j := range b {
				sum += dist(i, j)
			}
		}
		return sum / float64(len(a)*len(b))
	}

	for len(clusters) > 1 {
		bestA, bestB, best := 0, 1, math.Inf(1)
		for a := 0; a < len(clusters); a++ {
			for b := a + 1; b < len(clusters); b++ {
				if d := linkage(clusters[a], clusters[b]); d < best {
					bestA, bestB, best = a, b, d
				}
			}
		}
		merged := append(append([]int(nil), clusters[bestA]...), clusters[bestB]...)
		clusters[bestA] = merged
		clusters = append(clusters[:bestB], clusters[bestB+1:]...)
	}
	if len(clusters) == 0 {
		return nil
	}
	return clusters[0]
}
