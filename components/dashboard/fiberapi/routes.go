package fiberapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-calcdash/components/calculator"
	"github.com/goliatone/go-calcdash/components/dashboard"
	"github.com/goliatone/go-calcdash/components/dashboard/commands"
	"github.com/goliatone/go-calcdash/components/dashboard/httpapi"
	"github.com/goliatone/go-calcdash/components/dashboard/queries"
)

const (
	defaultMaxUploadBytes = 10 << 20
	appTitle              = "Calculator & Data Dashboard"
	uploadPrompt          = "Please upload a CSV file."
	uploadExpired         = "Upload not found or expired. Please upload the file again."
)

// Config wires fiber with the calculator and dashboard pages. The JSON API
// is mounted separately through go-router.
type Config struct {
	App            *fiber.App
	Renderer       dashboard.Renderer
	Calculate      gocommand.Commander[*commands.CalculateInput]
	Upload         gocommand.Commander[*commands.UploadInput]
	Dashboard      gocommand.Querier[queries.DashboardInput, dashboard.DashboardView]
	BasePath       string
	MaxUploadBytes int64
	Logger         *slog.Logger
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for each endpoint.
type RouteConfig struct {
	Index      string
	Calculator string
	Dashboard  string
	Upload     string
	Run        string
}

type handlers struct {
	cfg      Config
	routes   RouteConfig
	basePath string
	logger   *slog.Logger
}

// Register mounts the HTML pages on a fiber app.
func Register(cfg Config) error {
	if cfg.App == nil {
		return errors.New("fiberapi: app is required")
	}
	if cfg.Renderer == nil {
		return errors.New("fiberapi: renderer is required")
	}
	if cfg.Calculate == nil {
		return errors.New("fiberapi: calculate command is required")
	}
	if cfg.Upload == nil || cfg.Dashboard == nil {
		return errors.New("fiberapi: upload command and dashboard query are required")
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BasePath), "/")
	if base != "" && !strings.HasPrefix(base, "/") {
		base = "/" + base
	}

	h := &handlers{
		cfg:      cfg,
		routes:   defaultRouteConfig(cfg.Routes),
		basePath: base + "/",
		logger:   logger,
	}

	var r fiber.Router = cfg.App
	if base != "" {
		r = cfg.App.Group(base)
	}

	r.Get(h.routes.Index, h.index)
	r.Get(h.routes.Calculator, h.calculatorForm)
	r.Post(h.routes.Calculator, h.calculatorSubmit)
	r.Get(h.routes.Dashboard, h.dashboardForm)
	r.Post(h.routes.Upload, h.upload)
	r.Get(h.routes.Run, h.run)
	return nil
}

func (h *handlers) index(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, dashboard.TemplateIndex, fiber.Map{"title": appTitle})
}

func (h *handlers) calculatorForm(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, dashboard.TemplateCalculator, fiber.Map{
		"num1":       "0",
		"num2":       "0",
		"operations": operationOptions(calculator.Add),
	})
}

func (h *handlers) calculatorSubmit(c *fiber.Ctx) error {
	raw1, raw2 := c.FormValue("num1"), c.FormValue("num2")
	data := fiber.Map{"num1": raw1, "num2": raw2}

	op, err := calculator.ParseOperation(c.FormValue("operation", string(calculator.Add)))
	if err != nil {
		op = calculator.Add
		data["error"] = err.Error()
	}
	data["operations"] = operationOptions(op)
	if err != nil {
		return h.render(c, fiber.StatusBadRequest, dashboard.TemplateCalculator, data)
	}

	a, errA := calculator.ParseNumber(raw1)
	b, errB := calculator.ParseNumber(raw2)
	if err := errors.Join(errA, errB); err != nil {
		data["error"] = "Please enter valid numbers."
		return h.render(c, fiber.StatusBadRequest, dashboard.TemplateCalculator, data)
	}

	input := &commands.CalculateInput{A: a, B: b, Operation: string(op)}
	if err := h.cfg.Calculate.Execute(c.UserContext(), input); err != nil {
		data["error"] = err.Error()
		return h.render(c, httpapi.StatusFor(err), dashboard.TemplateCalculator, data)
	}
	data["result_line"] = input.Result.Line()
	return h.render(c, fiber.StatusOK, dashboard.TemplateCalculator, data)
}

func (h *handlers) dashboardForm(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, dashboard.TemplateDashboard, fiber.Map{})
}

func (h *handlers) upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return h.renderDashboardError(c, fiber.StatusBadRequest, uploadPrompt)
	}
	if header.Size > h.cfg.MaxUploadBytes {
		return h.renderDashboardError(c, fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large: %d bytes (limit %d).", header.Size, h.cfg.MaxUploadBytes))
	}
	file, err := header.Open()
	if err != nil {
		return h.renderDashboardError(c, fiber.StatusBadRequest, fmt.Sprintf("Error reading file: %v", err))
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxUploadBytes+1))
	if err != nil {
		return h.renderDashboardError(c, fiber.StatusBadRequest, fmt.Sprintf("Error reading file: %v", err))
	}

	input := &commands.UploadInput{FileName: header.Filename, Data: data}
	if err := h.cfg.Upload.Execute(c.UserContext(), input); err != nil {
		h.logger.Warn("upload rejected", "file", header.Filename, "error", err)
		return h.renderDashboardError(c, fiber.StatusBadRequest, fmt.Sprintf("Error processing file: %v", err))
	}
	h.logger.Info("upload stored", "file", header.Filename, "upload_id", input.ID, "bytes", len(data))
	return c.Redirect(h.basePath+strings.TrimPrefix(strings.Replace(h.routes.Run, ":id", input.ID, 1), "/"), fiber.StatusSeeOther)
}

func (h *handlers) run(c *fiber.Ctx) error {
	id := strings.Clone(c.Params("id"))
	view, err := h.cfg.Dashboard.Query(c.UserContext(), queries.DashboardInput{
		UploadID:   id,
		Selections: dashboard.ParseSelections(c.Queries()),
	})
	if err != nil {
		if errors.Is(err, dashboard.ErrUploadNotFound) {
			return h.renderDashboardError(c, fiber.StatusNotFound, uploadExpired)
		}
		h.logger.Error("dashboard run failed", "upload_id", id, "error", err)
		return h.renderDashboardError(c, fiber.StatusInternalServerError, fmt.Sprintf("Error processing file: %v", err))
	}
	if view.Error != "" {
		h.logger.Warn("dashboard run reported error", "upload_id", id, "error", view.Error)
	}
	return h.render(c, fiber.StatusOK, dashboard.TemplateDashboard, fiber.Map{"view": &view})
}

func (h *handlers) renderDashboardError(c *fiber.Ctx, status int, message string) error {
	return h.render(c, status, dashboard.TemplateDashboard, fiber.Map{"error": message})
}

func (h *handlers) render(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	data["base_path"] = h.basePath
	var buf bytes.Buffer
	if _, err := h.cfg.Renderer.Render(name, map[string]any(data), &buf); err != nil {
		h.logger.Error("template render failed", "template", name, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

func operationOptions(selected calculator.Operation) []dashboard.Option {
	ops := calculator.Operations()
	out := make([]dashboard.Option, len(ops))
	for i, op := range ops {
		out[i] = dashboard.Option{Value: string(op), Label: string(op), Selected: op == selected}
	}
	return out
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Index == "" {
		routes.Index = "/"
	}
	if routes.Calculator == "" {
		routes.Calculator = "/calculator"
	}
	if routes.Dashboard == "" {
		routes.Dashboard = "/dashboard"
	}
	if routes.Upload == "" {
		routes.Upload = "/dashboard/upload"
	}
	if routes.Run == "" {
		routes.Run = "/dashboard/:id"
	}
	return routes
}
