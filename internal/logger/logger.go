package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger writes structured kiosk events
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

// New creates a JSON logger writing to w at the given level
func New(service string, w io.Writer, level string) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// Open creates a logger appending to the file at path
func Open(service, path, level string) (*Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(service, f, level), f, nil
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New("discard", io.Discard, "error")
}

// ParseLevel maps a config level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func (l *Logger) log(level slog.Level, action, message string, attrs ...slog.Attr) {
	base := []slog.Attr{
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
	}
	l.handler.LogAttrs(context.Background(), level, message, append(base, attrs...)...)
}

func (l *Logger) Info(action, message string, attrs ...slog.Attr) {
	l.log(slog.LevelInfo, action, message, attrs...)
}

func (l *Logger) Debug(action, message string, attrs ...slog.Attr) {
	l.log(slog.LevelDebug, action, message, attrs...)
}

func (l *Logger) Warn(action, message string, attrs ...slog.Attr) {
	l.log(slog.LevelWarn, action, message, attrs...)
}

func (l *Logger) Error(action, message string, err error, attrs ...slog.Attr) {
	l.log(slog.LevelError, action, message, append(attrs, slog.String("error", err.Error()))...)
}
