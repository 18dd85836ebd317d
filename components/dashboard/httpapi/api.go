package httpapi

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-calcdash/components/analysis"
	"github.com/goliatone/go-calcdash/components/calculator"
	"github.com/goliatone/go-calcdash/components/dashboard"
	"github.com/goliatone/go-calcdash/components/dashboard/commands"
	"github.com/goliatone/go-calcdash/components/dashboard/queries"
)

var (
	// ErrNotConfigured is returned when the executor lacks the command or query for a route.
	ErrNotConfigured = errors.New("httpapi: handler not configured")
	// ErrMissingUploadID is returned when a report is requested without an id.
	ErrMissingUploadID = errors.New("httpapi: upload id is required")
)

// Executor is the transport-agnostic API surface mounted by the routers.
type Executor interface {
	Calculate(ctx context.Context, req CalculateRequest) (CalculateResponse, error)
	Report(ctx context.Context, uploadID string) (analysis.Report, error)
}

// CommandExecutor adapts go-command commanders and queriers to Executor.
type CommandExecutor struct {
	CalculateCommander gocommand.Commander[*commands.CalculateInput]
	ReportQuerier      gocommand.Querier[queries.ReportInput, analysis.Report]
}

var _ Executor = (*CommandExecutor)(nil)

// CalculateRequest is the JSON body of a calculation.
type CalculateRequest struct {
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Operation string  `json:"operation"`
}

// CalculateResponse carries either a value or the division marker in Error.
// Result is null when there is no finite value; Line always holds the text.
type CalculateResponse struct {
	Result *float64 `json:"result"`
	Error  string   `json:"error,omitempty"`
	Line   string   `json:"line"`
}

func (e *CommandExecutor) Calculate(ctx context.Context, req CalculateRequest) (CalculateResponse, error) {
	if e == nil || e.CalculateCommander == nil {
		return CalculateResponse{}, ErrNotConfigured
	}
	input := &commands.CalculateInput{A: req.A, B: req.B, Operation: req.Operation}
	if err := e.CalculateCommander.Execute(ctx, input); err != nil {
		return CalculateResponse{}, err
	}
	resp := CalculateResponse{Error: input.Result.Err, Line: input.Result.Line()}
	if value := input.Result.Value; !input.Result.IsError() && !math.IsNaN(value) && !math.IsInf(value, 0) {
		resp.Result = &value
	}
	return resp, nil
}

func (e *CommandExecutor) Report(ctx context.Context, uploadID string) (analysis.Report, error) {
	if e == nil || e.ReportQuerier == nil {
		return analysis.Report{}, ErrNotConfigured
	}
	if strings.TrimSpace(uploadID) == "" {
		return analysis.Report{}, ErrMissingUploadID
	}
	return e.ReportQuerier.Query(ctx, queries.ReportInput{UploadID: uploadID})
}

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUploadNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotConfigured):
		return http.StatusNotImplemented
	case errors.Is(err, ErrMissingUploadID),
		errors.Is(err, calculator.ErrUnknownOperation),
		errors.Is(err, analysis.ErrMalformed),
		errors.Is(err, analysis.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
