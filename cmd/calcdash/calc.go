package main

import (
	"context"
	"fmt"

	"github.com/goliatone/go-calcdash/components/dashboard/commands"
)

type calcCmd struct {
	A         float64 `arg:"" help:"First number."`
	B         float64 `arg:"" help:"Second number."`
	Operation string  `arg:"" help:"Add, Subtract, Multiply or Divide."`
}

func (cmd *calcCmd) Run(globals *Globals, ctx context.Context) error {
	input := &commands.CalculateInput{A: cmd.A, B: cmd.B, Operation: cmd.Operation}
	if err := commands.NewCalculateCommand(nil).Execute(ctx, input); err != nil {
		return fmt.Errorf("calcdash: %w", err)
	}
	_, err := fmt.Fprintln(globals.out(), input.Result.Line())
	return err
}
