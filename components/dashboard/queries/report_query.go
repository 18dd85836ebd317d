package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-calcdash/components/analysis"
)

// ReportInput identifies the upload to analyze.
type ReportInput struct {
	UploadID string
}

type reportService interface {
	Report(ctx context.Context, uploadID string) (analysis.Report, error)
}

// ReportQuery returns the raw analysis of an upload.
type ReportQuery struct {
	service reportService
}

// NewReportQuery builds the query.
func NewReportQuery(service reportService) *ReportQuery {
	return &ReportQuery{service: service}
}

var _ gocommand.Querier[ReportInput, analysis.Report] = (*ReportQuery)(nil)

// Query runs the analysis.
func (q *ReportQuery) Query(ctx context.Context, input ReportInput) (analysis.Report, error) {
	return q.service.Report(ctx, input.UploadID)
}
