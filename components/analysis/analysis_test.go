package analysis

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRead(t *testing.T, data string) *Dataset {
	t.Helper()
	ds, err := ReadCSV(strings.NewReader(data), "test.csv")
	require.NoError(t, err)
	return ds
}

func TestDescribeNumeric(t *testing.T) {
	ds := mustRead(t, "x,label\n1,a\n2,b\n3,a\n4,c\n")
	summary := Describe(ds)

	require.Equal(t, []string{"x"}, summary.Columns)
	cells := map[string]string{}
	for _, row := range summary.Rows {
		cells[row.Stat] = row.Cells[0]
	}
	assert.Equal(t, "4", cells["count"])
	assert.Equal(t, "2.500000", cells["mean"])
	assert.Equal(t, "1.290994", cells["std"])
	assert.Equal(t, "1.000000", cells["min"])
	assert.Equal(t, "1.750000", cells["25%"])
	assert.Equal(t, "2.500000", cells["50%"])
	assert.Equal(t, "3.250000", cells["75%"])
	assert.Equal(t, "4.000000", cells["max"])
}

func TestDescribeFallsBackToCategorical(t *testing.T) {
	ds := mustRead(t, "color,size\nred,S\nblue,M\nred,\n")
	summary := Describe(ds)

	require.Equal(t, []string{"color", "size"}, summary.Columns)
	stats := []string{}
	for _, row := range summary.Rows {
		stats = append(stats, row.Stat)
	}
	assert.Equal(t, []string{"count", "unique", "top", "freq"}, stats)
	assert.Equal(t, []string{"3", "2"}, summary.Rows[0].Cells)
	assert.Equal(t, []string{"red", "S"}, summary.Rows[2].Cells)
	assert.Equal(t, []string{"2", "1"}, summary.Rows[3].Cells)
}

func TestComputeNumericStatsSingleValue(t *testing.T) {
	s := ComputeNumericStats([]float64{5})
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 5.0, s.Mean)
	assert.True(t, math.IsNaN(s.Std))
	assert.Equal(t, 5.0, s.Q75)

	empty := ComputeNumericStats(nil)
	assert.True(t, math.IsNaN(empty.Mean))
	assert.Equal(t, "NaN", FormatFloat(empty.Max))
}

func TestNumericSubframeDropsMissingRowsAndConstantColumns(t *testing.T) {
	ds := mustRead(t, "a,b,c,d\n1,5,7,x\n2,,7,y\n3,6,7,z\n4,8,7,w\n")
	frame := NumericSubframe(ds)

	assert.Equal(t, []string{"a", "b"}, frame.Columns)
	assert.Equal(t, []string{"c"}, frame.Dropped)
	assert.Equal(t, 1, frame.RowsDropped)
	assert.Equal(t, 3, frame.Len())
	assert.Equal(t, []float64{1, 3, 4}, frame.Data[0])
}

func TestCorrelationIsSymmetricWithUnitDiagonal(t *testing.T) {
	ds := mustRead(t, "a,b,c\n1,2,9\n2,4.1,7\n3,5.9,8\n4,8.2,1\n5,9.9,3\n")
	m := Correlate(NumericSubframe(ds))

	require.Equal(t, 3, m.Size())
	assert.True(t, m.Symmetric())
	for i := 0; i < m.Size(); i++ {
		assert.Equal(t, 1.0, m.Values[i][i])
		for j := 0; j < m.Size(); j++ {
			assert.Equal(t, m.Values[i][j], m.Values[j][i])
			assert.LessOrEqual(t, math.Abs(m.Values[i][j]), 1.0+1e-12)
		}
	}
	assert.InDelta(t, 0.998, m.Values[0][1], 0.002)
	assert.Less(t, m.Values[0][2], 0.0)
}

func TestCorrelationMarshalsNonFiniteAsNull(t *testing.T) {
	m := CorrelationMatrix{
		Columns: []string{"a", "b"},
		Values:  [][]float64{{1, math.NaN()}, {math.NaN(), 1}},
	}
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns":["a","b"],"values":[[1,null],[null,1]]}`, string(data))
}

func TestClusterOrderGroupsCorrelatedColumns(t *testing.T) {
	m := CorrelationMatrix{
		Columns: []string{"a", "b", "c", "d"},
		Values: [][]float64{
			{1, -0.1, 0.95, 0.0},
			{-0.1, 1, 0.0, 0.9},
			{0.95, 0.0, 1, -0.2},
			{0.0, 0.9, -0.2, 1},
		},
	}
	order := ClusterOrder(m)
	require.Len(t, order, 4)

	pos := map[int]int{}
	for i, col := range order {
		pos[col] = i
	}
	assert.Equal(t, 1, abs(pos[0]-pos[2]))
	assert.Equal(t, 1, abs(pos[1]-pos[3]))

	reordered := m.Reorder(order)
	assert.True(t, reordered.Symmetric())
	assert.ElementsMatch(t, m.Columns, reordered.Columns)
}

func TestDistributionsOrderByCount(t *testing.T) {
	ds := mustRead(t, "fruit,n\npear,1\napple,2\npear,3\nfig,4\napple,5\npear,6\nNA,7\n")
	dists := Distributions(ds)

	require.Len(t, dists, 1)
	assert.Equal(t, "fruit", dists[0].Column)
	assert.Equal(t, []Frequency{{"pear", 3}, {"apple", 2}, {"fig", 1}}, dists[0].Items)
	assert.Equal(t, 6, dists[0].Total())
}

func TestAnalyzeWarnsWithFewNumericColumns(t *testing.T) {
	ds := mustRead(t, "city,temp,const\nOslo,3,1\nLima,19,1\nRome,15,1\n")
	report := Analyze(ds)

	assert.Nil(t, report.Correlation)
	assert.False(t, report.HasPairs())
	assert.Contains(t, report.Warnings, WarnNotEnoughNumeric)
	assert.NotContains(t, report.Warnings, WarnNoCategorical)
	assert.Len(t, report.Distributions, 1)
}

func TestAnalyzeFullReport(t *testing.T) {
	ds := mustRead(t, sampleCSV)
	report := Analyze(ds)

	require.NotNil(t, report.Correlation)
	assert.True(t, report.HasPairs())
	assert.Equal(t, []string{"age", "height", "score"}, report.Correlation.Columns)
	assert.Empty(t, report.Warnings)
	assert.Len(t, report.Distributions, 2)

	_, err := json.Marshal(report)
	require.NoError(t, err)
}

func TestAnalyzeNumericOnly(t *testing.T) {
	report := Analyze(mustRead(t, "a,b\n1,2\n2,1\n3,5\n"))
	assert.Equal(t, []string{WarnNoCategorical}, report.Warnings)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
