package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/danielarbabian/stash/internal/config"
)

var (
	logger    *slog.Logger
	logLevel  slog.Level
	logFormat string
	logFile   *os.File
	mu        sync.Mutex
	once      sync.Once
)

func init() {
	Initialize()
}

func Initialize() {
	once.Do(func() {
		levelStr := os.Getenv("LOG_LEVEL")
		if levelStr == "" {
			levelStr = os.Getenv("STASH_DEBUG")
			if levelStr == "1" || levelStr == "true" {
				levelStr = "DEBUG"
			} else {
				levelStr = "INFO"
			}
		}

		logFormat = os.Getenv("LOG_FORMAT")
		if logFormat == "" {
			logFormat = "text"
		}
		logFormat = strings.ToLower(logFormat)

		switch strings.ToUpper(levelStr) {
		case "DEBUG":
			logLevel = slog.LevelDebug
		case "INFO":
			logLevel = slog.LevelInfo
		case "WARN", "WARNING":
			logLevel = slog.LevelWarn
		case "ERROR":
			logLevel = slog.LevelError
		default:
			logLevel = slog.LevelInfo
		}

		logger = slog.New(newHandler(os.Stderr))
	})
}

// InitializeTUI redirects log output to ~/.stash/logs/stash.log so the
// alternate screen is not garbled while the session runs. Falls back to
// stderr if the log directory cannot be created.
func InitializeTUI() {
	Initialize()

	logDir, err := config.LogDir()
	if err != nil {
		return
	}

	f, err := os.OpenFile(filepath.Join(logDir, "stash.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()
	logFile = f
	logger = slog.New(newHandler(f))
}

// Close flushes and closes the log file, if one was opened.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func newHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: logLevel}
	if logFormat == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func GetLogger() *slog.Logger {
	if logger == nil {
		Initialize()
	}
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func GetLevel() slog.Level {
	if logger == nil {
		Initialize()
	}
	return logLevel
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}
