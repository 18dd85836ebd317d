// Package pngchart renders analysis results as static PNG images for the CLI.
package pngchart

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/goliatone/go-calcdash/components/analysis"
)

const (
	defaultWidth  = 800
	defaultHeight = 480
)

// Kind selects the categorical chart drawn by Distribution.
type Kind string

const (
	Bar Kind = "bar"
	Pie Kind = "pie"
)

func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

// Distribution writes the value counts of a categorical column.
func Distribution(w io.Writer, dist analysis.Distribution, kind Kind) error {
	if len(dist.Items) == 0 {
		return fmt.Errorf("pngchart: column %s has no values to plot", dist.Column)
	}
	values := make([]chart.Value, len(dist.Items))
	maxCount := 0
	for i, item := range dist.Items {
		label := item.Value
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		values[i] = chart.Value{Label: label, Value: float64(item.Count)}
		maxCount = max(maxCount, item.Count)
	}

	switch kind {
	case Pie:
		pie := chart.PieChart{
			Title:  dist.Column + " share",
			Width:  defaultHeight,
			Height: defaultHeight,
			Values: values,
		}
		if err := pie.Render(chart.PNG, w); err != nil {
			return fmt.Errorf("pngchart: render pie for %s: %w", dist.Column, err)
		}
		return nil
	case Bar, "":
		bar := chart.BarChart{
			Title:      "Count of " + dist.Column,
			Background: chart.Style{Padding: chart.Box{Top: 40}},
			Width:      defaultWidth,
			Height:     defaultHeight,
			BarWidth:   max(8, defaultWidth/(2*len(values)+1)),
			YAxis: chart.YAxis{
				Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
			},
			Bars: values,
		}
		if err := bar.Render(chart.PNG, w); err != nil {
			return fmt.Errorf("pngchart: render bar for %s: %w", dist.Column, err)
		}
		return nil
	default:
		return fmt.Errorf("pngchart: unsupported chart type: %s", kind)
	}
}

// Scatter writes column y against column x of the numeric subframe.
func Scatter(w io.Writer, frame analysis.NumericFrame, x, y int) error {
	if x < 0 || y < 0 || x >= frame.Width() || y >= frame.Width() {
		return fmt.Errorf("pngchart: pair (%d, %d) out of range", x, y)
	}
	if frame.Len() < 2 {
		return fmt.Errorf("pngchart: not enough rows to plot %s vs %s", frame.Columns[y], frame.Columns[x])
	}
	ch := chart.Chart{
		Title:      fmt.Sprintf("%s vs %s", frame.Columns[y], frame.Columns[x]),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 12}},
		Width:      defaultWidth,
		Height:     defaultHeight,
		XAxis:      chart.XAxis{Name: frame.Columns[x]},
		YAxis:      chart.YAxis{Name: frame.Columns[y]},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    frame.Columns[y],
				XValues: frame.Data[x],
				YValues: frame.Data[y],
				Style:   pointStyle(chart.ColorBlue),
			},
		},
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("pngchart: render scatter: %w", err)
	}
	return nil
}
