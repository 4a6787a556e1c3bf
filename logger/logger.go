package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Level string
}

type Logger struct {
	logger *slog.Logger
}

func NewLogger(cfg *Config) *Logger {
	return New(os.Stdout, cfg)
}

func New(w io.Writer, cfg *Config) *Logger {
	opts := &slog.HandlerOptions{
		Level: getLoggerLevel(cfg.Level),
	}
	return &Logger{
		logger: slog.New(slog.NewJSONHandler(w, opts)),
	}
}

// Discard drops every record. Used where a logger is optional.
func Discard() *Logger {
	return New(io.Discard, &Config{Level: "error"})
}

func (l *Logger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}
func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...)}
}

func getLoggerLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
