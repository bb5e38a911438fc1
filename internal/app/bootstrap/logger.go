package bootstrap

import (
	"log/slog"
	"os"
	"strings"

	"storerating/internal/platform/config"
)

// newLogger builds the process logger from LOG_LEVEL and LOG_FORMAT and makes
// it the slog default so modules that fall back to slog.Default share it.
func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(cfg.LogFormat), "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo
	}
	return level
}
