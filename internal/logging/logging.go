// Package logging provides structured logging functionality.
package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"option-tool/internal/config"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string
	Console    bool
	File       bool
	FilePath   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Out        io.Writer
}

// DefaultLogConfig returns the default logging configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		Console:    true,
		File:       false,
		FilePath:   filepath.Join(config.DefaultConfigDir(), "logs", "option-tool.log"),
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     30,
	}
}

// FromConfig converts the [logging] config section. Empty path and
// rotation settings keep their defaults.
func FromConfig(cfg config.LoggingConfig) LogConfig {
	lc := DefaultLogConfig()
	lc.Console = cfg.Console
	lc.File = cfg.File
	if cfg.Level != "" {
		lc.Level = cfg.Level
	}
	if cfg.FilePath != "" {
		lc.FilePath = cfg.FilePath
	}
	if cfg.MaxSize > 0 {
		lc.MaxSize = cfg.MaxSize
	}
	if cfg.MaxBackups > 0 {
		lc.MaxBackups = cfg.MaxBackups
	}
	if cfg.MaxAge > 0 {
		lc.MaxAge = cfg.MaxAge
	}
	return lc
}

// NewLoggerWithConfig creates a new logger with the specified configuration.
// Console output goes to stderr unless Out is set, so command output on
// stdout stays clean for --json and --csv -.
func NewLoggerWithConfig(cfg LogConfig) zerolog.Logger {
	var writers []io.Writer

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	// Console writer
	if cfg.Console {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			FormatLevel: func(i interface{}) string {
				if ll, ok := i.(string); ok {
					switch ll {
					case "debug":
						return "\033[36mDBG\033[0m"
					case "info":
						return "\033[32mINF\033[0m"
					case "warn":
						return "\033[33mWRN\033[0m"
					case "error":
						return "\033[31mERR\033[0m"
					default:
						return ll
					}
				}
				return "???"
			},
		}
		writers = append(writers, consoleWriter)
	}

	// File writer with rotation
	if cfg.File && cfg.FilePath != "" {
		logDir := filepath.Dir(cfg.FilePath)
		if err := os.MkdirAll(logDir, 0755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   true,
			})
		}
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		writer = io.Discard
	case 1:
		writer = writers[0]
	default:
		writer = zerolog.MultiLevelWriter(writers...)
	}

	return zerolog.New(writer).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a config level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ContextKey is the type for context keys.
type ContextKey string

const (
	// LoggerKey is the context key for the logger.
	LoggerKey ContextKey = "logger"
	// RequestIDKey is the context key for request ID.
	RequestIDKey ContextKey = "request_id"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context.
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}

// WithRequestID adds a request ID to the logger context.
func WithRequestID(logger zerolog.Logger, requestID string) zerolog.Logger {
	return logger.With().Str("request_id", requestID).Logger()
}

// WithOperation adds an operation name to the logger context.
func WithOperation(logger zerolog.Logger, operation string) zerolog.Logger {
	return logger.With().Str("operation", operation).Logger()
}

// LogEvaluation logs a completed position evaluation.
func LogEvaluation(logger zerolog.Logger, legs int, underlying, spreadPct, setupCost, maxGain, minGain float64, recommendation string) {
	logger.Info().
		Str("event", "evaluation").
		Int("legs", legs).
		Float64("underlying", underlying).
		Float64("spread_pct", spreadPct).
		Float64("setup_cost", setupCost).
		Float64("max_gain", maxGain).
		Float64("min_gain", minGain).
		Str("recommendation", recommendation).
		Msg("Position evaluated")
}

// LogRequest logs a served HTTP request.
func LogRequest(logger zerolog.Logger, method, path string, status int, duration time.Duration) {
	event := logger.Info()
	if status >= 500 {
		event = logger.Error()
	} else if status >= 400 {
		event = logger.Warn()
	}
	event.
		Str("event", "http_request").
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Dur("duration", duration).
		Msg("Request served")
}
