package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	router "github.com/goliatone/go-router"

	core "github.com/goliatone/go-calcdash/components/dashboard"
	"github.com/goliatone/go-calcdash/components/dashboard/commands"
	"github.com/goliatone/go-calcdash/components/dashboard/fiberapi"
	"github.com/goliatone/go-calcdash/components/dashboard/gorouter"
	"github.com/goliatone/go-calcdash/components/dashboard/httpapi"
	"github.com/goliatone/go-calcdash/components/dashboard/queries"
	"github.com/goliatone/go-calcdash/pkg/activity"
	"github.com/goliatone/go-calcdash/pkg/config"
	"github.com/goliatone/go-calcdash/pkg/dashboard"
)

const shutdownTimeout = 10 * time.Second

type serveCmd struct {
	Addr           string `env:"CALCDASH_ADDR" help:"Listen address (defaults to the config value)."`
	BasePath       string `env:"CALCDASH_BASE_PATH" help:"Mount every route under this prefix."`
	MaxUploadBytes int64  `env:"CALCDASH_MAX_UPLOAD_BYTES" help:"Reject uploads larger than this many bytes."`
	UploadTTL      string `env:"CALCDASH_UPLOAD_TTL" help:"How long uploads stay available (e.g. 30m)."`
	ChartTheme     string `env:"CALCDASH_CHART_THEME" help:"ECharts theme name."`
	AssetsHost     string `env:"CALCDASH_ASSETS_HOST" help:"Host serving the ECharts scripts."`
}

func (cmd *serveCmd) Run(globals *Globals, ctx context.Context) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	cmd.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("calcdash: %w", err)
	}

	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	app, err := buildApp(cfg, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr, "base_path", cfg.Server.BasePath)
		errCh <- app.Listen(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return fmt.Errorf("calcdash: shutdown: %w", err)
		}
		return nil
	}
}

func (cmd *serveCmd) apply(cfg *config.Config) {
	if v := strings.TrimSpace(cmd.Addr); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(cmd.BasePath); v != "" {
		cfg.Server.BasePath = v
	}
	if cmd.MaxUploadBytes > 0 {
		cfg.Server.MaxUploadBytes = cmd.MaxUploadBytes
	}
	if v := strings.TrimSpace(cmd.UploadTTL); v != "" {
		cfg.Dashboard.UploadTTL = v
	}
	if v := strings.TrimSpace(cmd.ChartTheme); v != "" {
		cfg.Charts.Theme = v
	}
	if v := strings.TrimSpace(cmd.AssetsHost); v != "" {
		cfg.Charts.AssetsHost = v
	}
}

// buildApp wires config, telemetry, the dashboard service, the go-router JSON
// API and the fiber HTML routes onto one fiber app.
func buildApp(cfg config.Config, logger *slog.Logger) (*fiber.App, error) {
	emitter := activity.NewEmitter(
		activity.Hooks{activity.NewLogHook(logger)},
		activity.Config{Enabled: cfg.Activity.Enabled, Channel: cfg.Activity.Channel},
	)
	telemetry := activity.TelemetryAdapter{
		Emitter: emitter,
		OnError: func(err error) { logger.Warn("activity hook failed", "error", err) },
	}

	service := dashboard.NewFromConfig(cfg, telemetry)
	renderer, err := core.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("calcdash: templates: %w", err)
	}

	app := newFiberApp(cfg)
	app.Use(recover.New())
	app.Use(requestLogger(logger))

	calculate := commands.NewCalculateCommand(telemetry)
	server := router.NewFiberAdapter(func(*fiber.App) *fiber.App { return app })
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router: server.Router(),
		API: &httpapi.CommandExecutor{
			CalculateCommander: calculate,
			ReportQuerier:      queries.NewReportQuery(service),
		},
		BasePath: cfg.Server.BasePath,
	}); err != nil {
		return nil, err
	}
	app = server.WrappedRouter()

	if err := fiberapi.Register(fiberapi.Config{
		App:            app,
		Renderer:       renderer,
		Calculate:      calculate,
		Upload:         commands.NewUploadDatasetCommand(service),
		Dashboard:      queries.NewDashboardQuery(service),
		BasePath:       cfg.Server.BasePath,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		Logger:         logger,
	}); err != nil {
		return nil, err
	}
	return app, nil
}

func newFiberApp(cfg config.Config) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "calcdash",
		BodyLimit:             int(cfg.Server.MaxUploadBytes) + 1<<20,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
}

func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Debug("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
		)
		return err
	}
}
