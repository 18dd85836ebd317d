package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-calcdash/pkg/config"
)

// Globals are flags shared by every command.
type Globals struct {
	Config    string    `type:"path" env:"CALCDASH_CONFIG" help:"Path to a YAML configuration file."`
	LogLevel  string    `env:"CALCDASH_LOG_LEVEL" help:"Override the log level (debug, info, warn, error)."`
	LogFormat string    `env:"CALCDASH_LOG_FORMAT" help:"Override the log format (text, json)."`
	Stdout    io.Writer `kong:"-"`
}

type cli struct {
	Globals

	Serve   serveCmd   `cmd:"" help:"Serve the calculator and data dashboard web UI."`
	Calc    calcCmd    `cmd:"" help:"Evaluate one calculator operation."`
	Analyze analyzeCmd `cmd:"" help:"Print the dashboard analysis of a CSV or XLSX file."`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app cli
	app.Stdout = os.Stdout
	kctx := kong.Parse(&app,
		kong.Name("calcdash"),
		kong.Description("Four-operation calculator and CSV exploration dashboard."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	err := kctx.Run(&app.Globals)
	kctx.FatalIfErrorf(err)
}

// loadConfig reads the config file and applies the global overrides.
func (g *Globals) loadConfig() (config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return config.Config{}, err
	}
	if level := strings.TrimSpace(g.LogLevel); level != "" {
		cfg.Log.Level = strings.ToLower(level)
	}
	if format := strings.TrimSpace(g.LogFormat); format != "" {
		cfg.Log.Format = strings.ToLower(format)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("calcdash: %w", err)
	}
	return cfg, nil
}

func (g *Globals) out() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}
