package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-calcdash/components/dashboard/httpapi"
)

// Config wires go-router with the calculator and report JSON API.
type Config[T any] struct {
	Router   router.Router[T]
	API      httpapi.Executor
	BasePath string
	Routes   RouteConfig
}

// RouteConfig customizes the relative paths used for the API endpoints.
type RouteConfig struct {
	Calculate string
	Report    string
}

// Register mounts the JSON API on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: api executor is required")
	}
	routes := defaultRouteConfig(cfg.Routes)

	r := cfg.Router
	if base := normalizeBase(cfg.BasePath); base != "" {
		r = cfg.Router.Group(base)
	}

	r.Post(routes.Calculate, router.WrapHandler(func(ctx router.Context) error {
		var payload httpapi.CalculateRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		resp, err := cfg.API.Calculate(ctx.Context(), payload)
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondJSON(ctx, http.StatusOK, resp)
	}))

	r.Get(routes.Report, router.WrapHandler(func(ctx router.Context) error {
		id := strings.Clone(ctx.Param("id"))
		report, err := cfg.API.Report(ctx.Context(), id)
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondJSON(ctx, http.StatusOK, report)
	}))

	return nil
}

// respondJSON encodes before writing so an unencodable payload becomes a 500
// instead of a success status with an empty body.
func respondJSON(ctx router.Context, status int, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return respondError(ctx, http.StatusInternalServerError, err)
	}
	return ctx.JSON(status, json.RawMessage(body))
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func normalizeBase(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base != "" && !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Calculate == "" {
		routes.Calculate = "/api/calculate"
	}
	if routes.Report == "" {
		routes.Report = "/api/dashboard/:id/report"
	}
	return routes
}
