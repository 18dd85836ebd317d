package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const (
	configVersionV1 = "1"

	DefaultAddr           = ":8080"
	DefaultMaxUploadBytes = 10 << 20
	DefaultPreviewRows    = 5
	DefaultMaxPairColumns = 6
	DefaultUploadTTL      = "30m"
	DefaultMaxUploads     = 32
	DefaultChartTheme     = "westeros"
)

//go:embed schema.json
var schemaDocument []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Config is the runtime configuration of calcdash.
type Config struct {
	Version   string          `json:"version" yaml:"version"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	Dashboard DashboardConfig `json:"dashboard" yaml:"dashboard"`
	Charts    ChartsConfig    `json:"charts" yaml:"charts"`
	Log       LogConfig       `json:"log" yaml:"log"`
	Activity  ActivityConfig  `json:"activity" yaml:"activity"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr           string `json:"addr" yaml:"addr"`
	BasePath       string `json:"base_path" yaml:"base_path"`
	MaxUploadBytes int64  `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// DashboardConfig tunes the analysis pipeline.
type DashboardConfig struct {
	PreviewRows    int    `json:"preview_rows" yaml:"preview_rows"`
	MaxPairColumns int    `json:"max_pair_columns" yaml:"max_pair_columns"`
	UploadTTL      string `json:"upload_ttl" yaml:"upload_ttl"`
	MaxUploads     int    `json:"max_uploads" yaml:"max_uploads"`
}

// TTL returns the parsed upload TTL. Invalid values yield zero (no expiry);
// Validate rejects them earlier.
func (d DashboardConfig) TTL() time.Duration {
	ttl, err := time.ParseDuration(d.UploadTTL)
	if err != nil {
		return 0
	}
	return ttl
}

// ChartsConfig configures go-echarts output.
type ChartsConfig struct {
	Theme      string `json:"theme" yaml:"theme"`
	AssetsHost string `json:"assets_host" yaml:"assets_host"`
	Height     string `json:"height" yaml:"height"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// ActivityConfig toggles activity events.
type ActivityConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Channel string `json:"channel" yaml:"channel"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Version: configVersionV1,
		Server: ServerConfig{
			Addr:           DefaultAddr,
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
		Dashboard: DashboardConfig{
			PreviewRows:    DefaultPreviewRows,
			MaxPairColumns: DefaultMaxPairColumns,
			UploadTTL:      DefaultUploadTTL,
			MaxUploads:     DefaultMaxUploads,
		},
		Charts: ChartsConfig{Theme: DefaultChartTheme},
		Log:    LogConfig{Level: "info", Format: "text"},
		Activity: ActivityConfig{
			Enabled: true,
			Channel: "dashboard",
		},
	}
}

// Load reads a YAML config file. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML from r, validates it against the embedded schema and
// layers it over the defaults. Unknown fields are rejected.
func Decode(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("config: read: %w", err)
	}
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := validateDocument(data); err != nil {
		return Config{}, err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values the schema can't express.
func (c Config) Validate() error {
	if c.Version != configVersionV1 {
		return fmt.Errorf("config: unsupported version %q", c.Version)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("config: server.addr is required")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("config: server.max_upload_bytes must be positive")
	}
	if _, err := time.ParseDuration(c.Dashboard.UploadTTL); err != nil {
		return fmt.Errorf("config: dashboard.upload_ttl: %w", err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unsupported log format %q", c.Log.Format)
	}
	return nil
}

// SlogLevel parses the configured level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log.level: %w", err)
	}
	return level, nil
}

// NewLogger builds a slog logger writing to w in the configured format.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func validateDocument(data []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("config: parse: %w", err)
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("config: normalize: %w", err)
	}
	var payload any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return fmt.Errorf("config: normalize: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("config: failed validation: %w", err)
	}
	return nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("config.json", bytes.NewReader(schemaDocument)); err != nil {
			schemaErr = fmt.Errorf("config: load schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("config.json")
		if schemaErr != nil {
			schemaErr = fmt.Errorf("config: compile schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}
