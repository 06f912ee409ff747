package logging

import (
	"log/slog"
	"os"
	"strings"

	"accounts-service/internal/config"

	"github.com/go-chi/traceid"
)

// NewLogger builds the process-wide slog logger and installs it as the default.
func NewLogger(cfg config.LoggerConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Encoding) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	handler = traceid.LogHandler(handler)

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
