package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 5, cfg.Dashboard.PreviewRows)
	assert.Equal(t, 30*time.Minute, cfg.Dashboard.TTL())
	assert.Equal(t, DefaultMaxUploads, cfg.Dashboard.MaxUploads)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	doc := `
version: "1"
server:
  addr: ":9000"
  base_path: /tools
dashboard:
  preview_rows: 10
  upload_ttl: 2h
  max_uploads: 4
log:
  level: debug
  format: json
`
	cfg, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "/tools", cfg.Server.BasePath)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 10, cfg.Dashboard.PreviewRows)
	assert.Equal(t, DefaultMaxPairColumns, cfg.Dashboard.MaxPairColumns)
	assert.Equal(t, 2*time.Hour, cfg.Dashboard.TTL())
	assert.Equal(t, 4, cfg.Dashboard.MaxUploads)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestDecodeEmptyDocument(t *testing.T) {
	cfg, err := Decode(strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"unknown field":   "server:\n  port: 80\n",
		"bad log level":   "log:\n  level: loud\n",
		"bad preview":     "dashboard:\n  preview_rows: 0\n",
		"bad ttl":         "dashboard:\n  upload_ttl: soon\n",
		"bad version":     "version: \"2\"\n",
		"wrong type":      "server:\n  max_upload_bytes: lots\n",
		"relative prefix": "server:\n  base_path: tools\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calcdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("charts:\n  theme: dark\n"), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Charts.Theme)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"k":"v"`)
}
