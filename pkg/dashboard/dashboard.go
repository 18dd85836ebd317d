package dashboard

import (
	core "github.com/goliatone/go-calcdash/components/dashboard"
	"github.com/goliatone/go-calcdash/pkg/config"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Selections re-export for convenience.
type Selections = core.Selections

// View re-export for convenience.
type View = core.DashboardView

// Telemetry re-export for convenience.
type Telemetry = core.Telemetry

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// ParseSelections proxies to the internal parser.
func ParseSelections(values map[string]string) Selections {
	return core.ParseSelections(values)
}

// NewFromConfig builds a service with an in-memory upload store and chart
// renderer configured from cfg.
func NewFromConfig(cfg config.Config, telemetry Telemetry) *Service {
	return core.NewService(Options{
		Uploads: core.NewMemoryUploadStore(cfg.Dashboard.TTL(), core.WithMaxUploads(cfg.Dashboard.MaxUploads)),
		Charts: core.NewChartRenderer(
			core.WithChartTheme(cfg.Charts.Theme),
			core.WithChartAssetsHost(cfg.Charts.AssetsHost),
			core.WithChartHeight(cfg.Charts.Height),
		),
		Telemetry:      telemetry,
		PreviewRows:    cfg.Dashboard.PreviewRows,
		MaxPairColumns: cfg.Dashboard.MaxPairColumns,
	})
}
