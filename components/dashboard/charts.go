package dashboard

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"gonum.org/v1/gonum/stat"

	"github.com/goliatone/go-calcdash/components/analysis"
)

const (
	defaultChartHeight = "420px"
	// DefaultEChartsAssetsHost serves the ECharts runtime when no override is configured.
	DefaultEChartsAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"
)

var divergingPalette = []string{"#3b4cc0", "#f7f7f7", "#b40426"}

// ChartView is one rendered figure.
type ChartView struct {
	Title string
	Kind  string
	HTML  string
}

// ChartRenderer renders analysis results into go-echarts markup.
type ChartRenderer struct {
	theme      string
	assetsHost string
	height     string
}

// ChartOption customizes a ChartRenderer.
type ChartOption func(*ChartRenderer)

// WithChartTheme sets the ECharts theme (defaults to Westeros).
func WithChartTheme(theme string) ChartOption {
	return func(c *ChartRenderer) {
		if theme = strings.TrimSpace(theme); theme != "" {
			c.theme = theme
		}
	}
}

// WithChartAssetsHost points the ECharts script tags at another host.
func WithChartAssetsHost(host string) ChartOption {
	return func(c *ChartRenderer) {
		if host = strings.TrimSpace(host); host != "" {
			c.assetsHost = ensureTrailingSlash(host)
		}
	}
}

// WithChartHeight sets the CSS height of every chart.
func WithChartHeight(height string) ChartOption {
	return func(c *ChartRenderer) {
		if height = strings.TrimSpace(height); height != "" {
			c.height = height
		}
	}
}

// NewChartRenderer builds a renderer with defaults applied.
func NewChartRenderer(options ...ChartOption) *ChartRenderer {
	c := &ChartRenderer{
		theme:      types.ThemeWesteros,
		assetsHost: DefaultEChartsAssetsHost,
		height:     defaultChartHeight,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Correlation draws the matrix as a heatmap, or as a cluster map with rows
// and columns reordered so correlated columns sit together.
func (c *ChartRenderer) Correlation(m analysis.CorrelationMatrix, kind CorrelationKind) (ChartView, error) {
	if m.Empty() {
		return ChartView{}, fmt.Errorf("dashboard: correlation matrix is empty")
	}
	title := "Correlation Heatmap"
	if kind == ClusterMap {
		m = m.Reorder(analysis.ClusterOrder(m))
		title = "Correlation Cluster Map"
	}

	data := make([]opts.HeatMapData, 0, m.Size()*m.Size())
	for i := range m.Values {
		for j, v := range m.Values[i] {
			var cell any = "-"
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				cell = math.Round(v*100) / 100
			}
			data = append(data, opts.HeatMapData{Value: [3]any{j, i, cell}})
		}
	}

	labels := escapeAll(m.Columns)
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(append(c.globalOptions(title, "Pearson correlation", false),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: labels}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: labels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        -1,
			Max:        1,
			InRange:    &opts.VisualMapInRange{Color: divergingPalette},
		}),
	)...)
	hm.SetXAxis(labels).AddSeries("correlation", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return c.view(title, string(kind), hm)
}

// Pair draws column y against column x of the numeric subframe. The
// regression style overlays a least-squares line.
func (c *ChartRenderer) Pair(frame analysis.NumericFrame, x, y int, style PairStyle) (ChartView, error) {
	if x < 0 || y < 0 || x >= frame.Width() || y >= frame.Width() {
		return ChartView{}, fmt.Errorf("dashboard: pair (%d, %d) out of range", x, y)
	}
	xs, ys := frame.Data[x], frame.Data[y]
	xName, yName := html.EscapeString(frame.Columns[x]), html.EscapeString(frame.Columns[y])
	title := fmt.Sprintf("%s vs %s", frame.Columns[y], frame.Columns[x])

	points := make([]opts.ScatterData, len(xs))
	for i := range xs {
		points[i] = opts.ScatterData{Value: []float64{xs[i], ys[i]}}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(append(c.globalOptions(title, "", style == PairRegression),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Type: "value"}),
	)...)
	scatter.AddSeries(yName, points)

	if style == PairRegression {
		if fit := regressionLine(xs, ys); len(fit) > 0 {
			line := charts.NewLine()
			line.AddSeries("fit", fit, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
			scatter.Overlap(line)
		}
	}
	return c.view(title, string(style), scatter)
}

// Categorical draws the value counts of one column.
func (c *ChartRenderer) Categorical(dist analysis.Distribution, kind CategoricalChart) (ChartView, error) {
	if len(dist.Items) == 0 {
		return ChartView{}, fmt.Errorf("dashboard: column %s has no values to plot", dist.Column)
	}
	labels := make([]string, len(dist.Items))
	for i, item := range dist.Items {
		labels[i] = html.EscapeString(item.Value)
	}
	column := html.EscapeString(dist.Column)

	switch kind {
	case CountPlot:
		title := "Count of " + dist.Column
		bar := charts.NewBar()
		bar.SetGlobalOptions(c.globalOptions(title, "", false)...)
		bar.SetXAxis(labels).AddSeries("count", toBarData(dist.Items))
		return c.view(title, string(kind), bar)
	case BarPlot:
		title := dist.Column + " frequencies"
		bar := charts.NewBar()
		bar.SetGlobalOptions(c.globalOptions(title, "", false)...)
		bar.SetXAxis(labels).AddSeries("frequency", toBarData(dist.Items))
		bar.XYReversal()
		return c.view(title, string(kind), bar)
	case PieChart:
		title := dist.Column + " share"
		pie := charts.NewPie()
		pie.SetGlobalOptions(c.globalOptions(title, "", true)...)
		pie.AddSeries(column, toPieData(dist.Items),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}))
		return c.view(title, string(kind), pie)
	default:
		return ChartView{}, fmt.Errorf("dashboard: unsupported chart type: %s", kind)
	}
}

func (c *ChartRenderer) view(title, kind string, renderable interface{ Render(io.Writer) error }) (ChartView, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return ChartView{}, fmt.Errorf("dashboard: render %s chart: %w", kind, err)
	}
	return ChartView{Title: title, Kind: kind, HTML: buf.String()}, nil
}

func (c *ChartRenderer) globalOptions(title, subtitle string, legend bool) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: html.EscapeString(title), Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:      c.theme,
			Width:      "100%",
			Height:     c.height,
			AssetsHost: c.assetsHost,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(legend)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithToolboxOpts(opts.Toolbox{Show: opts.Bool(true)}),
	}
}

func regressionLine(xs, ys []float64) []opts.LineData {
	if len(xs) < 2 {
		return nil
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return nil
	}
	return []opts.LineData{
		{Value: []float64{lo, alpha + beta*lo}},
		{Value: []float64{hi, alpha + beta*hi}},
	}
}

func toBarData(items []analysis.Frequency) []opts.BarData {
	data := make([]opts.BarData, len(items))
	for i, item := range items {
		data[i] = opts.BarData{Name: html.EscapeString(item.Value), Value: item.Count}
	}
	return data
}

func toPieData(items []analysis.Frequency) []opts.PieData {
	data := make([]opts.PieData, len(items))
	for i, item := range items {
		name := html.EscapeString(item.Value)
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{Name: name, Value: item.Count}
	}
	return data
}

// escapeAll HTML-escapes uploaded labels. Chart options are emitted as
// unescaped JSON inside a script block.
func escapeAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = html.EscapeString(v)
	}
	return out
}

func ensureTrailingSlash(value string) string {
	if strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
