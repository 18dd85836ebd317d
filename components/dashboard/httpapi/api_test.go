package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-calcdash/components/analysis"
	"github.com/goliatone/go-calcdash/components/calculator"
	"github.com/goliatone/go-calcdash/components/dashboard"
	"github.com/goliatone/go-calcdash/components/dashboard/commands"
	"github.com/goliatone/go-calcdash/components/dashboard/queries"
)

type stubQuerier[T, R any] struct {
	last  T
	calls int
	resp  R
	err   error
}

func (s *stubQuerier[T, R]) Query(_ context.Context, msg T) (R, error) {
	s.last = msg
	s.calls++
	return s.resp, s.err
}

func newCalculator() *CommandExecutor {
	return &CommandExecutor{CalculateCommander: commands.NewCalculateCommand(nil)}
}

func TestExecutorCalculate(t *testing.T) {
	resp, err := newCalculator().Calculate(context.Background(), CalculateRequest{A: 7, B: 2, Operation: "Add"})
	require.NoError(t, err)
	require.NotNil(t, resp.Result)
	assert.Equal(t, 9.0, *resp.Result)
	assert.Equal(t, "Result: 9.0", resp.Line)
	assert.Empty(t, resp.Error)
}

func TestExecutorCalculateDivisionByZero(t *testing.T) {
	resp, err := newCalculator().Calculate(context.Background(), CalculateRequest{A: 1, B: 0, Operation: "Divide"})
	require.NoError(t, err)
	assert.Nil(t, resp.Result)
	assert.Equal(t, "Error! Division by zero.", resp.Error)
	assert.Equal(t, "Result: Error! Division by zero.", resp.Line)
}

func TestExecutorCalculateOverflowHasNullResult(t *testing.T) {
	resp, err := newCalculator().Calculate(context.Background(), CalculateRequest{A: 1e308, B: 10, Operation: "Multiply"})
	require.NoError(t, err)
	assert.Nil(t, resp.Result)
	assert.Empty(t, resp.Error)
	assert.Equal(t, "Result: inf", resp.Line)
}

func TestExecutorCalculateErrors(t *testing.T) {
	_, err := newCalculator().Calculate(context.Background(), CalculateRequest{A: 1, B: 2, Operation: "Modulo"})
	require.ErrorIs(t, err, calculator.ErrUnknownOperation)
	assert.Equal(t, http.StatusBadRequest, StatusFor(err))

	_, err = (&CommandExecutor{}).Calculate(context.Background(), CalculateRequest{})
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, http.StatusNotImplemented, StatusFor(err))
}

func TestExecutorReport(t *testing.T) {
	report := &stubQuerier[queries.ReportInput, analysis.Report]{
		resp: analysis.Report{Warnings: []string{analysis.WarnNoCategorical}},
	}
	api := &CommandExecutor{ReportQuerier: report}

	got, err := api.Report(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", report.last.UploadID)
	assert.Equal(t, []string{analysis.WarnNoCategorical}, got.Warnings)
}

func TestExecutorReportErrors(t *testing.T) {
	report := &stubQuerier[queries.ReportInput, analysis.Report]{err: dashboard.ErrUploadNotFound}
	api := &CommandExecutor{ReportQuerier: report}

	_, err := api.Report(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, StatusFor(err))

	_, err = api.Report(context.Background(), " ")
	require.ErrorIs(t, err, ErrMissingUploadID)
	assert.Equal(t, http.StatusBadRequest, StatusFor(err))
	assert.Equal(t, 1, report.calls)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(fmt.Errorf("wrap: %w", dashboard.ErrUploadNotFound)))
	assert.Equal(t, http.StatusBadRequest, StatusFor(analysis.ErrMalformed))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(fmt.Errorf("boom")))
}
