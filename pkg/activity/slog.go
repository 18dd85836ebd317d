package activity

import (
	"context"
	"log/slog"
	"sort"
)

// LogHook writes every event as a structured log record.
type LogHook struct {
	Logger *slog.Logger
	Level  slog.Level
}

// NewLogHook builds a hook logging at info level.
func NewLogHook(logger *slog.Logger) *LogHook {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogHook{Logger: logger, Level: slog.LevelInfo}
}

// Notify logs the event with its metadata as attributes.
func (h *LogHook) Notify(ctx context.Context, evt Event) error {
	attrs := []slog.Attr{
		slog.String("channel", evt.Channel),
		slog.String("object_type", evt.ObjectType),
		slog.String("object_id", evt.ObjectID),
	}
	keys := make([]string, 0, len(evt.Metadata))
	for k := range evt.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, evt.Metadata[k]))
	}
	h.Logger.LogAttrs(ctx, h.Level, evt.Verb, attrs...)
	return nil
}
