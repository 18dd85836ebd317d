package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/ettle/strcase"

	"github.com/goliatone/go-calcdash/components/analysis"
	"github.com/goliatone/go-calcdash/components/pngchart"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type analyzeCmd struct {
	File   string `arg:"" type:"existingfile" help:"CSV or XLSX file to analyze."`
	Rows   int    `default:"5" help:"Number of preview rows."`
	PNGDir string `name:"png-dir" type:"path" help:"Write PNG charts into this directory."`
	Chart  string `enum:"bar,pie" default:"bar" help:"Chart drawn for categorical columns (bar, pie)."`
}

func (cmd *analyzeCmd) Run(globals *Globals, _ context.Context) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	f, err := os.Open(cmd.File) //nolint:gosec
	if err != nil {
		return fmt.Errorf("calcdash: open %s: %w", cmd.File, err)
	}
	defer f.Close()

	ds, err := analysis.Load(f, filepath.Base(cmd.File))
	if err != nil {
		return fmt.Errorf("calcdash: Error processing file: %w", err)
	}
	report := analysis.Analyze(ds)

	out := globals.out()
	if err := printReport(out, report, cmd.Rows); err != nil {
		return err
	}
	if cmd.PNGDir == "" {
		return nil
	}
	written, err := writeCharts(cmd.PNGDir, report, pngchart.Kind(cmd.Chart), cfg.Dashboard.MaxPairColumns)
	if err != nil {
		return err
	}
	for _, path := range written {
		if _, err := fmt.Fprintf(out, "✓ wrote %s\n", path); err != nil {
			return err
		}
	}
	return nil
}

func printReport(w io.Writer, report analysis.Report, rows int) error {
	ds := report.Dataset
	headers, preview := ds.Preview(rows)
	if err := printSection(w, fmt.Sprintf("Data Preview (%s: %d rows × %d columns)", ds.Name, ds.Rows, len(ds.Columns)), headers, preview); err != nil {
		return err
	}

	summaryRows := make([][]string, len(report.Summary.Rows))
	for i, row := range report.Summary.Rows {
		summaryRows[i] = append([]string{row.Stat}, row.Cells...)
	}
	if err := printSection(w, "Summary Statistics", append([]string{""}, report.Summary.Columns...), summaryRows); err != nil {
		return err
	}

	if report.Correlation != nil {
		m := report.Correlation.Reorder(analysis.ClusterOrder(*report.Correlation))
		corrRows := make([][]string, m.Size())
		for i, name := range m.Columns {
			row := []string{name}
			for _, v := range m.Values[i] {
				row = append(row, fmt.Sprintf("%.2f", v))
			}
			corrRows[i] = row
		}
		if err := printSection(w, "Correlation (clustered order)", append([]string{""}, m.Columns...), corrRows); err != nil {
			return err
		}
	}

	for _, dist := range report.Distributions {
		total := dist.Total()
		distRows := make([][]string, len(dist.Items))
		for i, item := range dist.Items {
			share := 0.0
			if total > 0 {
				share = 100 * float64(item.Count) / float64(total)
			}
			distRows[i] = []string{item.Value, fmt.Sprint(item.Count), fmt.Sprintf("%.1f%%", share)}
		}
		if err := printSection(w, "Counts of "+dist.Column, []string{"value", "count", "share"}, distRows); err != nil {
			return err
		}
	}

	for _, warning := range report.Warnings {
		if _, err := fmt.Fprintln(w, warningStyle.Render("! "+warning)); err != nil {
			return err
		}
	}
	return nil
}

func printSection(w io.Writer, title string, headers []string, rows [][]string) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", titleStyle.Render(title)); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	styled := make([]string, len(headers))
	rules := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = headerStyle.Render(h)
		rules[i] = strings.Repeat("─", max(3, len(h)))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(styled, "\t")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(rules, "\t")); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeCharts renders one PNG per categorical column and per numeric pair.
func writeCharts(dir string, report analysis.Report, kind pngchart.Kind, maxPairColumns int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("calcdash: create %s: %w", dir, err)
	}
	var written []string
	write := func(name string, render func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path) //nolint:gosec
		if err != nil {
			return fmt.Errorf("calcdash: create %s: %w", path, err)
		}
		if err := render(f); err != nil {
			_ = f.Close()
			_ = os.Remove(path)
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	for i, dist := range report.Distributions {
		if len(dist.Items) == 0 {
			continue
		}
		name := fmt.Sprintf("%02d_%s_%s.png", i, slug(dist.Column), kind)
		if err := write(name, func(w io.Writer) error { return pngchart.Distribution(w, dist, kind) }); err != nil {
			return written, err
		}
	}

	width := min(report.Numeric.Width(), maxPairColumns)
	for i := 0; i < width; i++ {
		for j := i + 1; j < width; j++ {
			cols := report.Numeric.Columns
			name := fmt.Sprintf("pair_%s_vs_%s.png", slug(cols[j]), slug(cols[i]))
			if err := write(name, func(w io.Writer) error { return pngchart.Scatter(w, report.Numeric, i, j) }); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

func slug(name string) string {
	if s := strcase.ToSnake(name); s != "" {
		return s
	}
	return "column"
}
