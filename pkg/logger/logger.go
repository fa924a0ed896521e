package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs a JSON logger as the process default. The level comes from
// the LOG_LEVEL environment variable (debug, info, warn, error); unknown or
// empty values mean info.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: LevelFromEnv(),
	})
	slog.SetDefault(slog.New(handler))
}

// LevelFromEnv parses LOG_LEVEL into a slog level
func LevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
