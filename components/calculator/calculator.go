package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DivisionByZeroMessage is displayed in place of a number when dividing by zero.
const DivisionByZeroMessage = "Error! Division by zero."

// ErrUnknownOperation is returned for operation labels outside the four supported ones.
var ErrUnknownOperation = errors.New("calculator: unknown operation")

// Operation is one of the labels offered by the operation selector.
type Operation string

const (
	Add      Operation = "Add"
	Subtract Operation = "Subtract"
	Multiply Operation = "Multiply"
	Divide   Operation = "Divide"
)

var operations = []Operation{Add, Subtract, Multiply, Divide}

// Operations returns the supported operations in display order.
func Operations() []Operation {
	return append([]Operation(nil), operations...)
}

// ParseOperation resolves a selector label, ignoring case and surrounding space.
func ParseOperation(label string) (Operation, error) {
	label = strings.TrimSpace(label)
	for _, op := range operations {
		if strings.EqualFold(string(op), label) {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, label)
}

// Result holds either a numeric value or a textual error marker.
type Result struct {
	Value float64 `json:"value"`
	Err   string  `json:"error,omitempty"`
}

// IsError reports whether the result carries the error marker instead of a value.
func (r Result) IsError() bool {
	return r.Err != ""
}

// String renders the value, or the marker when the result is an error.
func (r Result) String() string {
	if r.IsError() {
		return r.Err
	}
	return FormatNumber(r.Value)
}

// Line renders the output line shown under the Calculate button.
func (r Result) Line() string {
	return "Result: " + r.String()
}

// Calculate applies op to a and b. Division by zero is not an error: it
// yields a Result carrying DivisionByZeroMessage.
func Calculate(a, b float64, op Operation) (Result, error) {
	switch op {
	case Add:
		return Result{Value: a + b}, nil
	case Subtract:
		return Result{Value: a - b}, nil
	case Multiply:
		return Result{Value: a * b}, nil
	case Divide:
		if b == 0 {
			return Result{Err: DivisionByZeroMessage}, nil
		}
		return Result{Value: a / b}, nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownOperation, string(op))
	}
}

// FormatNumber renders v the way Python's float repr does: the shortest
// round-trip digits, a trailing ".0" on integral values, exponent form when the
// decimal exponent is below -4 or at least 16, and inf/-inf/nan by name.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	sci := strconv.FormatFloat(v, 'e', -1, 64)
	if v != 0 {
		if exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:]); err == nil && (exp < -4 || exp >= 16) {
			return sci
		}
	}
	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(out, '.') {
		out += ".0"
	}
	return out
}

// ParseNumber parses a decimal input; blank input reads as zero like an untouched number field.
func ParseNumber(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("calculator: invalid number %q: %w", raw, err)
	}
	return v, nil
}
