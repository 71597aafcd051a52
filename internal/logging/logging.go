package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thenoetrevino/tablero/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Init initializes the logging system, writing logs to <data dir>/logs/tablero.log
// through a rotating file. Uses text format for human readability.
func Init(cfg *config.Config) (io.Closer, error) {
	logDir := cfg.LogDir()
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	rotator := newRotatingFile(filepath.Join(logDir, "tablero.log"), cfg.Log)

	Logger = New(rotator, cfg.Log.Level)
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same file
	log.SetOutput(rotator)
	log.SetFlags(log.LstdFlags)

	return rotator, nil
}

// New creates a text logger writing to w at the named level
func New(w io.Writer, level string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler)
}

// ParseLevel maps a config level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// newRotatingFile creates a lumberjack logger from config, with environment overrides
func newRotatingFile(path string, cfg config.LogConfig) *lumberjack.Logger {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   false,
	}

	if maxSize, ok := envInt("TABLERO_LOG_MAX_SIZE"); ok && maxSize > 0 {
		rotator.MaxSize = maxSize
	}
	if maxBackups, ok := envInt("TABLERO_LOG_MAX_BACKUPS"); ok && maxBackups >= 0 {
		rotator.MaxBackups = maxBackups
	}
	if maxAge, ok := envInt("TABLERO_LOG_MAX_AGE"); ok && maxAge > 0 {
		rotator.MaxAge = maxAge
	}

	return rotator
}

func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
