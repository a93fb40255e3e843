// Package logging configures the process-wide slog logger. The CLI, the
// HTTP server and the daemon all log to the same file so a session can be
// read as one stream.
package logging

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Init initializes the logging system, writing text-format logs to
// ~/.praxis/logs/praxis.log. The level defaults to info and can be
// overridden with PRAXIS_LOG_LEVEL (debug, info, warn, error).
func Init() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	logDir := filepath.Join(homeDir, ".praxis", "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	file, err := os.OpenFile(filepath.Join(logDir, "praxis.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	// Stray stdlib log output lands in the same file
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags)

	return nil
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("PRAXIS_LOG_LEVEL")) {
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
