package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-calcdash/components/calculator"
)

// CalculateInput carries the calculator form. Result is filled by the command.
type CalculateInput struct {
	A         float64
	B         float64
	Operation string
	Result    calculator.Result
}

// CalculateCommand runs one calculator interaction.
type CalculateCommand struct {
	telemetry Telemetry
}

// NewCalculateCommand creates the command.
func NewCalculateCommand(telemetry Telemetry) *CalculateCommand {
	return &CalculateCommand{telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[*CalculateInput] = (*CalculateCommand)(nil)

// Execute computes the result. Division by zero is reported through the
// result marker, not as an error.
func (c *CalculateCommand) Execute(ctx context.Context, msg *CalculateInput) error {
	op, err := calculator.ParseOperation(msg.Operation)
	if err != nil {
		return err
	}
	result, err := calculator.Calculate(msg.A, msg.B, op)
	if err != nil {
		return err
	}
	msg.Result = result
	c.telemetry.Record(ctx, "calculator.calculate", map[string]any{
		"operation": string(op),
		"error":     result.Err,
	})
	return nil
}
