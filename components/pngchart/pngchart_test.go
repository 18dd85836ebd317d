package pngchart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-calcdash/components/analysis"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sampleDistribution() analysis.Distribution {
	return analysis.Distribution{
		Column: "city",
		Items: []analysis.Frequency{
			{Value: "Lisbon", Count: 3},
			{Value: "Porto", Count: 2},
			{Value: "Faro", Count: 1},
		},
	}
}

func TestDistributionBar(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, Distribution(&buf, sampleDistribution(), Bar))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestDistributionPie(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, Distribution(&buf, sampleDistribution(), Pie))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestDistributionErrors(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.Error(t, Distribution(&buf, analysis.Distribution{Column: "empty"}, Bar))
	require.Error(t, Distribution(&buf, sampleDistribution(), Kind("donut")))
}

func TestScatter(t *testing.T) {
	t.Parallel()
	frame := analysis.NumericFrame{
		Columns: []string{"x", "y"},
		Data: [][]float64{
			{1, 2, 3, 4},
			{2, 4, 5, 9},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, Scatter(&buf, frame, 0, 1))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	require.Error(t, Scatter(&buf, frame, 0, 5))
}
