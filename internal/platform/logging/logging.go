package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// Config captures logging configuration options.
type Config struct {
	Level    string
	Dir      string
	Filename string
}

var (
	colorReset = "\x1b[0m"
	colorTime  = "\x1b[90m"
	colorDebug = "\x1b[36m"
	colorInfo  = "\x1b[32m"
	colorWarn  = "\x1b[33m"
	colorError = "\x1b[31m"
)

// tagColors maps module tags to terminal colors for console output.
var tagColors = map[string]string{
	"[Bootstrap]": "\x1b[96m",
	"[HTTP]":      "\x1b[95m",
	"[WebSocket]": "\x1b[92m",
	"[Capture]":   "\x1b[94m",
	"[STT]":       "\x1b[35m",
	"[Clone]":     "\x1b[34m",
	"[Translate]": "\x1b[33m",
	"[TTS]":       "\x1b[95m",
	"[Pipeline]":  "\x1b[92m",
	"[Cleanup]":   "\x1b[90m",
}

// CustomTextHandler renders records as "time level message" lines with
// level colors and per-tag highlighting on the console writer.
type CustomTextHandler struct {
	console io.Writer
	file    io.Writer
	level   slog.Level
	mu      sync.Mutex
}

func (h *CustomTextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *CustomTextHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	timeStr := r.Time.Format("2006-01-02 15:04:05.000")

	var levelStr, levelColor string
	switch r.Level {
	case slog.LevelDebug:
		levelStr, levelColor = "DEBUG", colorDebug
	case slog.LevelInfo:
		levelStr, levelColor = "INFO", colorInfo
	case slog.LevelWarn:
		levelStr, levelColor = "WARN", colorWarn
	case slog.LevelError:
		levelStr, levelColor = "ERROR", colorError
	default:
		levelStr, levelColor = "INFO", colorReset
	}

	msg := r.Message
	msgColor := colorReset
	for tag, color := range tagColors {
		if strings.HasPrefix(msg, tag) {
			msgColor = color
			break
		}
	}

	fmt.Fprintf(h.console, "%s[%s]%s %s[%s]%s %s%s%s\n",
		colorTime, timeStr, colorReset,
		levelColor, levelStr, colorReset,
		msgColor, msg, colorReset)

	if h.file != nil {
		fmt.Fprintf(h.file, "[%s] [%s] %s\n", timeStr, levelStr, msg)
	}
	return nil
}

func (h *CustomTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }
func (h *CustomTextHandler) WithGroup(name string) slog.Handler      { return h }

// Logger wraps slog with tag-prefixed convenience helpers.
type Logger struct {
	slogger *slog.Logger
	closer  io.Closer
}

// New creates a Logger writing colored lines to stdout and, when a log
// directory is configured, plain lines to the configured file.
func New(cfg Config) (*Logger, error) {
	handler := &CustomTextHandler{
		console: os.Stdout,
		level:   parseLevel(cfg.Level),
	}

	var closer io.Closer
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		name := cfg.Filename
		if name == "" {
			name = "server.log"
		}
		f, err := os.OpenFile(filepath.Join(cfg.Dir, name),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		handler.file = f
		closer = f
	}

	return &Logger{
		slogger: slog.New(handler),
		closer:  closer,
	}, nil
}

func parseLevel(level string) slog.Level {
	switch LogLevel(strings.ToLower(level)) {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog exposes the structured logger for integrations that want slog directly.
func (l *Logger) Slog() *slog.Logger {
	return l.slogger
}

func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func (l *Logger) Debug(format string, args ...any) {
	l.slogger.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) {
	l.slogger.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.slogger.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.slogger.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) DebugTag(tag, format string, args ...any) {
	l.slogger.Debug(fmt.Sprintf("[%s] %s", tag, fmt.Sprintf(format, args...)))
}

func (l *Logger) InfoTag(tag, format string, args ...any) {
	l.slogger.Info(fmt.Sprintf("[%s] %s", tag, fmt.Sprintf(format, args...)))
}

func (l *Logger) WarnTag(tag, format string, args ...any) {
	l.slogger.Warn(fmt.Sprintf("[%s] %s", tag, fmt.Sprintf(format, args...)))
}

func (l *Logger) ErrorTag(tag, format string, args ...any) {
	l.slogger.Error(fmt.Sprintf("[%s] %s", tag, fmt.Sprintf(format, args...)))
}
