package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-calcdash/components/dashboard"
)

// DashboardInput identifies a dashboard run for a stored upload.
type DashboardInput struct {
	UploadID   string
	Selections dashboard.Selections
}

type pageService interface {
	BuildPage(ctx context.Context, uploadID string, sel dashboard.Selections) (dashboard.DashboardView, error)
}

// DashboardQuery builds the dashboard page for an upload.
type DashboardQuery struct {
	service pageService
}

// NewDashboardQuery builds the query.
func NewDashboardQuery(service pageService) *DashboardQuery {
	return &DashboardQuery{service: service}
}

var _ gocommand.Querier[DashboardInput, dashboard.DashboardView] = (*DashboardQuery)(nil)

// Query recomputes every dashboard section from the stored upload.
func (q *DashboardQuery) Query(ctx context.Context, input DashboardInput) (dashboard.DashboardView, error) {
	sel := input.Selections
	if sel.Correlation == "" {
		sel.Correlation = dashboard.Heatmap
	}
	if sel.PairStyle == "" {
		sel.PairStyle = dashboard.PairScatter
	}
	return q.service.BuildPage(ctx, input.UploadID, sel)
}
