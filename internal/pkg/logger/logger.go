package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
)

var globalLogger *slog.Logger

// ParseLevel maps a config level string to a slog level, defaulting to INFO.
func ParseLevel(levelStr string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO", "":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// InitSlog initializes the global slog logger with a specified log level and JSON format.
func InitSlog(levelStr string) {
	level, ok := ParseLevel(levelStr)
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	setGlobal(slog.New(handler))
	if !ok {
		globalLogger.Warn("Invalid log level string, defaulting to INFO", "input", levelStr)
	}
}

// InitZap routes the global slog logger into zapLogger through the slog-zap handler.
func InitZap(zapLogger *zap.Logger, levelStr string) {
	level, ok := ParseLevel(levelStr)
	handler := slogzap.Option{Level: level, Logger: zapLogger}.NewZapHandler()
	setGlobal(slog.New(handler))
	if !ok {
		globalLogger.Warn("Invalid log level string, defaulting to INFO", "input", levelStr)
	}
}

func setGlobal(l *slog.Logger) {
	globalLogger = l
	slog.SetDefault(l)
}

func ensureInitialized() {
	if globalLogger == nil {
		InitSlog("INFO")
	}
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Debug(msg, args...)
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Info(msg, args...)
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Warn(msg, args...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Error(msg, args...)
}

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Log(context.Background(), slog.LevelError, msg, args...)
	os.Exit(1)
}
