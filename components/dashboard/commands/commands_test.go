package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-calcdash/components/calculator"
	"github.com/goliatone/go-calcdash/components/dashboard"
)

type stubTelemetry struct {
	calls int
	last  map[string]any
}

func (s *stubTelemetry) Record(_ context.Context, _ string, payload map[string]any) {
	s.calls++
	s.last = payload
}

type stubUploadService struct {
	calls int
	name  string
	err   error
}

func (s *stubUploadService) Upload(_ context.Context, filename string, data []byte) (dashboard.Upload, error) {
	s.calls++
	s.name = filename
	if s.err != nil {
		return dashboard.Upload{}, s.err
	}
	return dashboard.Upload{ID: "upload-1", FileName: filename, Data: data}, nil
}

func TestCalculateCommand(t *testing.T) {
	telemetry := &stubTelemetry{}
	cmd := NewCalculateCommand(telemetry)
	input := &CalculateInput{A: 6, B: 4, Operation: "Multiply"}
	if err := cmd.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if input.Result.Value != 24 {
		t.Fatalf("expected 24, got %v", input.Result.Value)
	}
	if telemetry.calls != 1 || telemetry.last["operation"] != "Multiply" {
		t.Fatalf("expected telemetry for Multiply, got %+v", telemetry.last)
	}
}

func TestCalculateCommandDivisionByZero(t *testing.T) {
	cmd := NewCalculateCommand(nil)
	input := &CalculateInput{A: 10, B: 0, Operation: "Divide"}
	if err := cmd.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if input.Result.String() != calculator.DivisionByZeroMessage {
		t.Fatalf("expected division marker, got %q", input.Result.String())
	}
}

func TestCalculateCommandUnknownOperation(t *testing.T) {
	cmd := NewCalculateCommand(nil)
	err := cmd.Execute(context.Background(), &CalculateInput{Operation: "Root"})
	if !errors.Is(err, calculator.ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}
}

func TestUploadDatasetCommand(t *testing.T) {
	service := &stubUploadService{}
	cmd := NewUploadDatasetCommand(service)
	input := &UploadInput{FileName: "data.csv", Data: []byte("a\n1\n")}
	if err := cmd.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if input.ID != "upload-1" || service.name != "data.csv" {
		t.Fatalf("expected id propagation, got %+v", input)
	}
}

func TestUploadDatasetCommandErrors(t *testing.T) {
	if err := NewUploadDatasetCommand(nil).Execute(context.Background(), &UploadInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
	service := &stubUploadService{err: errors.New("boom")}
	if err := NewUploadDatasetCommand(service).Execute(context.Background(), &UploadInput{}); err == nil {
		t.Fatalf("expected service error to propagate")
	}
}
