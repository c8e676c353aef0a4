// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Provides Init() for stderr logging and InitFile() for TUI sessions.

package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Init configures the default slog logger to write to w.
// level: debug, info, warn, error (default: info)
// format: text, json (default: text)
func Init(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// InitFile points the default logger at debug.log inside dir so log lines
// do not draw over the terminal UI. The returned file must be closed by
// the caller. An empty dir discards all log output.
func InitFile(dir, level, format string) (io.Closer, error) {
	if dir == "" {
		Init(io.Discard, level, format)
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		Init(io.Discard, level, format)
		return nil, err
	}

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		Init(io.Discard, level, format)
		return nil, err
	}

	Init(f, level, format)
	return f, nil
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
