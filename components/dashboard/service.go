package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-calcdash/components/analysis"
)

const (
	defaultPreviewRows    = 5
	defaultMaxPairColumns = 6
)

var (
	errMissingUploadStore = errors.New("dashboard: upload store not configured")
	errEmptyUpload        = errors.New("dashboard: uploaded file is empty")
)

// Options configures the dashboard Service.
type Options struct {
	Uploads        UploadStore
	Charts         *ChartRenderer
	Telemetry      Telemetry
	PreviewRows    int
	MaxPairColumns int
}

// Service runs the upload-and-visualize pipeline. Every BuildPage call
// re-parses the stored upload and recomputes all derived data.
type Service struct {
	opts Options
}

// NewService builds a Service with safe defaults.
func NewService(opts Options) *Service {
	if opts.Charts == nil {
		opts.Charts = NewChartRenderer()
	}
	if opts.PreviewRows <= 0 {
		opts.PreviewRows = defaultPreviewRows
	}
	if opts.MaxPairColumns < 2 {
		opts.MaxPairColumns = defaultMaxPairColumns
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}
}

// Upload stores a file for later runs. Only .csv and .xlsx names are accepted;
// content problems surface when the page is built.
func (s *Service) Upload(ctx context.Context, filename string, data []byte) (Upload, error) {
	if s.opts.Uploads == nil {
		return Upload{}, errMissingUploadStore
	}
	filename = filepath.Base(strings.TrimSpace(filename))
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx":
	default:
		return Upload{}, fmt.Errorf("%w: %q (expected .csv or .xlsx)", analysis.ErrUnsupportedFormat, filename)
	}
	if len(data) == 0 {
		return Upload{}, errEmptyUpload
	}
	upload, err := s.opts.Uploads.Save(ctx, Upload{FileName: filename, Data: data})
	if err != nil {
		return Upload{}, fmt.Errorf("dashboard: save upload: %w", err)
	}
	s.opts.Telemetry.Record(ctx, EventUpload, map[string]any{
		"upload_id": upload.ID,
		"file_name": upload.FileName,
		"bytes":     len(upload.Data),
	})
	return upload, nil
}

// Report parses the stored upload and runs the analysis.
func (s *Service) Report(ctx context.Context, uploadID string) (analysis.Report, error) {
	upload, err := s.upload(ctx, uploadID)
	if err != nil {
		return analysis.Report{}, err
	}
	ds, err := analysis.Load(bytes.NewReader(upload.Data), upload.FileName)
	if err != nil {
		return analysis.Report{}, err
	}
	return analysis.Analyze(ds), nil
}

// BuildPage runs the whole pipeline for one interaction. Unknown uploads
// return ErrUploadNotFound; any other failure is reported through
// DashboardView.Error so the caller can always render the page.
func (s *Service) BuildPage(ctx context.Context, uploadID string, sel Selections) (DashboardView, error) {
	upload, err := s.upload(ctx, uploadID)
	if err != nil {
		return DashboardView{}, err
	}
	view, err := s.build(upload, sel)
	if err != nil {
		view = DashboardView{
			UploadID: upload.ID,
			FileName: upload.FileName,
			Error:    fmt.Sprintf("Error processing file: %v", err),
		}
	}
	s.opts.Telemetry.Record(ctx, EventRender, map[string]any{
		"upload_id":   upload.ID,
		"failed":      view.Error != "",
		"warnings":    len(view.Warnings),
		"correlation": string(sel.Correlation),
		"pair_style":  string(sel.PairStyle),
	})
	return view, nil
}

func (s *Service) upload(ctx context.Context, uploadID string) (Upload, error) {
	if s.opts.Uploads == nil {
		return Upload{}, errMissingUploadStore
	}
	if strings.TrimSpace(uploadID) == "" {
		return Upload{}, ErrUploadNotFound
	}
	return s.opts.Uploads.Get(ctx, uploadID)
}

func (s *Service) build(upload Upload, sel Selections) (DashboardView, error) {
	ds, err := analysis.Load(bytes.NewReader(upload.Data), upload.FileName)
	if err != nil {
		return DashboardView{}, err
	}
	report := analysis.Analyze(ds)

	view := DashboardView{
		UploadID: upload.ID,
		FileName: upload.FileName,
		Rows:     ds.Rows,
		Columns:  len(ds.Columns),
		Warnings: append([]string(nil), report.Warnings...),
	}
	view.Preview.Headers, view.Preview.Rows = ds.Preview(s.opts.PreviewRows)
	view.Summary = summaryTable(report.Summary)

	if report.Correlation != nil {
		chart, err := s.opts.Charts.Correlation(*report.Correlation, sel.Correlation)
		if err != nil {
			return DashboardView{}, err
		}
		view.Correlation = &chart
		view.CorrelationOptions = markSelected(correlationLabels, string(sel.Correlation))
	}

	if report.HasPairs() {
		pairs, warning, err := s.pairCharts(report.Numeric, sel.PairStyle)
		if err != nil {
			return DashboardView{}, err
		}
		if warning != "" {
			view.Warnings = append(view.Warnings, warning)
		}
		view.Pairs = pairs
		view.PairStyleOptions = markSelected(pairStyleLabels, string(sel.PairStyle))
	}

	for i, dist := range report.Distributions {
		key := CategoricalKey(i, dist.Column)
		section := CategoricalSection{
			Column:   dist.Column,
			Key:      key,
			Selected: sel.ChartFor(key),
		}
		section.Options = markSelected(categoricalLabels, string(section.Selected))
		if len(dist.Items) == 0 {
			view.Warnings = append(view.Warnings, fmt.Sprintf("Column %s has no values to plot.", dist.Column))
			view.Categorical = append(view.Categorical, section)
			continue
		}
		chart, err := s.opts.Charts.Categorical(dist, section.Selected)
		if err != nil {
			return DashboardView{}, err
		}
		section.Chart = chart
		view.Categorical = append(view.Categorical, section)
	}
	return view, nil
}

// pairCharts renders one chart per column pair, limited to the first
// MaxPairColumns columns of the subframe.
func (s *Service) pairCharts(frame analysis.NumericFrame, style PairStyle) ([]ChartView, string, error) {
	width := frame.Width()
	warning := ""
	if width > s.opts.MaxPairColumns {
		warning = fmt.Sprintf("Pair plots limited to the first %d of %d numeric columns.", s.opts.MaxPairColumns, width)
		width = s.opts.MaxPairColumns
	}
	var out []ChartView
	for i := 0; i < width; i++ {
		for j := i + 1; j < width; j++ {
			chart, err := s.opts.Charts.Pair(frame, i, j, style)
			if err != nil {
				return nil, "", err
			}
			out = append(out, chart)
		}
	}
	return out, warning, nil
}

func summaryTable(summary analysis.Summary) Table {
	table := Table{Headers: append([]string{""}, summary.Columns...)}
	for _, row := range summary.Rows {
		table.Rows = append(table.Rows, append([]string{row.Stat}, row.Cells...))
	}
	return table
}
