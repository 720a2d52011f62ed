package log

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"log/slog"
	"os"
	"strings"
)

// Level represents the severity level of a log message.
type Level int

// Log levels
const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name (case-insensitive) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("log: unknown level %q", s)
	}
}

// Format selects the output encoding.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value any
}

// Field constructors.
func Str(key, value string) Field         { return Field{Key: key, Value: value} }
func Int(key string, value int) Field     { return Field{Key: key, Value: value} }
func Uint(key string, value uint64) Field { return Field{Key: key, Value: value} }
func Any(key string, value any) Field     { return Field{Key: key, Value: value} }
func Err(err error) Field                 { return Field{Key: "error", Value: err} }

// Component tags logs with the emitting component name.
func Component(name string) Field { return Field{Key: "component", Value: name} }

// Logger is the leveled, structured logging interface used across tuid.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// Fatal logs at error severity and exits the process.
	Fatal(msg string, fields ...Field)

	// With returns a child logger carrying additional fields.
	With(fields ...Field) Logger

	SetLevel(level Level)
	GetLevel() Level
}

// Option configures a logger under construction.
type Option func(*baseLogger)

// WithLevel sets the minimum log level.
func WithLevel(level Level) Option {
	return func(l *baseLogger) { l.level.Set(toSlogLevel(level)) }
}

// WithFormat selects text or JSON output.
func WithFormat(format Format) Option {
	return func(l *baseLogger) { l.format = format }
}

// WithOutput sets the destination writer. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(l *baseLogger) { l.out = w }
}

type baseLogger struct {
	level  *slog.LevelVar
	format Format
	out    io.Writer
	slog   *slog.Logger
}

// NewLogger creates a logger with the given options.
func NewLogger(options ...Option) Logger {
	l := &baseLogger{level: new(slog.LevelVar), out: os.Stderr}
	l.level.Set(slog.LevelInfo)
	for _, opt := range options {
		opt(l)
	}
	hopts := &slog.HandlerOptions{Level: l.level}
	var h slog.Handler
	switch l.format {
	case FormatJSON:
		h = slog.NewJSONHandler(l.out, hopts)
	default:
		h = slog.NewTextHandler(l.out, hopts)
	}
	l.slog = slog.New(h)
	return l
}

// Config declares logger construction in data form, suitable for env/file
// driven setup.
type Config struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// ApplyConfig builds a Logger from cfg. Empty fields take defaults
// (info, text); unknown values are an error.
func ApplyConfig(cfg *Config) (Logger, error) {
	level := InfoLevel
	if cfg.Level != "" {
		parsed, err := ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	format := FormatText
	switch strings.ToLower(cfg.Format) {
	case "", "text":
	case "json":
		format = FormatJSON
	default:
		return nil, fmt.Errorf("log: unknown format %q", cfg.Format)
	}
	return NewLogger(WithLevel(level), WithFormat(format)), nil
}

func (l *baseLogger) log(level slog.Level, msg string, fields []Field) {
	attrs := make([]any, 0, len(fields))
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	l.slog.Log(context.Background(), level, msg, attrs...)
}

func (l *baseLogger) Debug(msg string, fields ...Field) { l.log(slog.LevelDebug, msg, fields) }
func (l *baseLogger) Info(msg string, fields ...Field)  { l.log(slog.LevelInfo, msg, fields) }
func (l *baseLogger) Warn(msg string, fields ...Field)  { l.log(slog.LevelWarn, msg, fields) }
func (l *baseLogger) Error(msg string, fields ...Field) { l.log(slog.LevelError, msg, fields) }

func (l *baseLogger) Fatal(msg string, fields ...Field) {
	l.log(slog.LevelError, msg, fields)
	osExit(1)
}

// osExit is a test seam.
var osExit = os.Exit

func (l *baseLogger) With(fields ...Field) Logger {
	attrs := make([]any, 0, len(fields))
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	child := *l
	child.slog = l.slog.With(attrs...)
	return &child
}

func (l *baseLogger) SetLevel(level Level) { l.level.Set(toSlogLevel(level)) }

func (l *baseLogger) GetLevel() Level { return fromSlogLevel(l.level.Level()) }

// RedirectStdLog routes the standard library's default logger through l at
// info level. Libraries that only speak *log.Logger (Pebble's event listener,
// net/http error logs) end up in the structured stream.
func RedirectStdLog(l Logger) {
	stdlog.SetFlags(0)
	stdlog.SetOutput(stdWriter{l})
}

type stdWriter struct{ l Logger }

func (w stdWriter) Write(p []byte) (int, error) {
	w.l.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func toSlogLevel(level Level) slog.Level {
	switch level {
	case DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func fromSlogLevel(level slog.Level) Level {
	switch {
	case level <= slog.LevelDebug:
		return DebugLevel
	case level == slog.LevelInfo:
		return InfoLevel
	case level == slog.LevelWarn:
		return WarnLevel
	default:
		return ErrorLevel
	}
}
