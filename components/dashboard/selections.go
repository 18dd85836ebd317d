package dashboard

import (
	"fmt"
	"strings"

	"github.com/ettle/strcase"
)

// CorrelationKind selects how the correlation matrix is drawn.
type CorrelationKind string

const (
	Heatmap    CorrelationKind = "heatmap"
	ClusterMap CorrelationKind = "clustermap"
)

// PairStyle selects how pairwise relationships are drawn.
type PairStyle string

const (
	PairScatter    PairStyle = "scatter"
	PairRegression PairStyle = "reg"
)

// CategoricalChart selects the chart drawn for one categorical column.
type CategoricalChart string

const (
	CountPlot CategoricalChart = "count"
	BarPlot   CategoricalChart = "bar"
	PieChart  CategoricalChart = "pie"
)

const (
	// CorrelationKey is the form key of the correlation display selector.
	CorrelationKey = "correlation"
	// PairStyleKey is the form key of the pair plot style selector.
	PairStyleKey = "pair_style"
)

// Option is one entry of a sidebar dropdown.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

var (
	correlationLabels = []Option{{Value: string(Heatmap), Label: "Heatmap"}, {Value: string(ClusterMap), Label: "Cluster Map"}}
	pairStyleLabels   = []Option{{Value: string(PairScatter), Label: "Scatter"}, {Value: string(PairRegression), Label: "Regression"}}
	categoricalLabels = []Option{{Value: string(CountPlot), Label: "Count Plot"}, {Value: string(BarPlot), Label: "Bar Plot"}, {Value: string(PieChart), Label: "Pie Chart"}}
)

// Selections are the sidebar choices for one dashboard run. Categorical is
// keyed by selector key (see CategoricalKey), so choices never collide across
// columns.
type Selections struct {
	Correlation CorrelationKind
	PairStyle   PairStyle
	Categorical map[string]CategoricalChart
}

// DefaultSelections returns heatmap, scatter and count plots for every column.
func DefaultSelections() Selections {
	return Selections{
		Correlation: Heatmap,
		PairStyle:   PairScatter,
		Categorical: map[string]CategoricalChart{},
	}
}

// ChartFor returns the chart chosen under key, defaulting to a count plot.
func (s Selections) ChartFor(key string) CategoricalChart {
	if chart, ok := s.Categorical[key]; ok {
		return chart
	}
	return CountPlot
}

const categoricalKeyPrefix = "cat_chart_"

// CategoricalKey builds the selector key for the categorical column at index.
// The index keeps keys distinct when two names normalize to the same slug.
func CategoricalKey(index int, column string) string {
	slug := strcase.ToSnake(strings.TrimSpace(column))
	if slug == "" {
		return fmt.Sprintf("%s%d", categoricalKeyPrefix, index)
	}
	return fmt.Sprintf("%s%d_%s", categoricalKeyPrefix, index, slug)
}

// ParseSelections reads selector values from form or query values. Unknown
// or absent values fall back to the defaults.
func ParseSelections(values map[string]string) Selections {
	sel := DefaultSelections()
	if CorrelationKind(normalizeChoice(values[CorrelationKey])) == ClusterMap {
		sel.Correlation = ClusterMap
	}
	if PairStyle(normalizeChoice(values[PairStyleKey])) == PairRegression {
		sel.PairStyle = PairRegression
	}
	for key, raw := range values {
		if !strings.HasPrefix(key, categoricalKeyPrefix) {
			continue
		}
		switch chart := CategoricalChart(normalizeChoice(raw)); chart {
		case CountPlot, BarPlot, PieChart:
			sel.Categorical[key] = chart
		}
	}
	return sel
}

func normalizeChoice(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func markSelected(options []Option, value string) []Option {
	out := make([]Option, len(options))
	for i, opt := range options {
		opt.Selected = opt.Value == value
		out[i] = opt
	}
	return out
}
