package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/0xReLogic/greeter/internal/config"
)

type contextKey string

const (
	loggerKey    contextKey = "greeter_logger"
	requestIDKey contextKey = "greeter_request_id"

	defaultRequestHeader = "X-Request-ID"
)

type logFormat int

const (
	formatText logFormat = iota
	formatJSON
)

var (
	baseLogger   zerolog.Logger
	baseLoggerMu sync.RWMutex
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	setBaseLogger(newLogger(os.Stdout, zerolog.InfoLevel, formatText, false))
}

// Init configures the global logger based on configuration values.
func Init(cfg config.LoggingConfig) {
	level := parseLevel(cfg.Level)
	format := parseFormat(cfg.Format)
	setBaseLogger(newLogger(os.Stdout, level, format, cfg.IncludeCaller))
}

func parseLevel(value string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

func parseFormat(value string) logFormat {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "json":
		return formatJSON
	default:
		return formatText
	}
}

func newLogger(writer io.Writer, level zerolog.Level, format logFormat, includeCaller bool) zerolog.Logger {
	var output io.Writer = writer
	if format == formatText {
		output = zerolog.ConsoleWriter{
			Out:        writer,
			TimeFormat: time.RFC3339Nano,
			NoColor:    true,
		}
	}

	builder := zerolog.New(output).Level(level).With().Timestamp()
	if includeCaller {
		builder = builder.Caller()
	}
	return builder.Logger()
}

func setBaseLogger(logger zerolog.Logger) {
	baseLoggerMu.Lock()
	baseLogger = logger
	baseLoggerMu.Unlock()
}

// L returns the base logger.
func L() zerolog.Logger {
	baseLoggerMu.RLock()
	logger := baseLogger
	baseLoggerMu.RUnlock()
	return logger
}

// WithContext returns the request scoped logger stored in ctx, or the base
// logger when there is none.
func WithContext(ctx context.Context) zerolog.Logger {
	if ctx == nil {
		return L()
	}

	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}

	if reqID := RequestIDFromContext(ctx); reqID != "" {
		return L().With().Str("request_id", reqID).Logger()
	}
	return L()
}

// RequestIDFromContext extracts the request identifier from context if present.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if reqID, ok := ctx.Value(requestIDKey).(string); ok {
		return reqID
	}
	return ""
}

// RequestHeaderName returns the configured request header name, falling back to default.
func RequestHeaderName(cfg config.LoggingConfig) string {
	header := strings.TrimSpace(cfg.RequestID.Header)
	if header == "" {
		return defaultRequestHeader
	}
	return header
}

func contextWithLogger(ctx context.Context, logger zerolog.Logger, reqID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, loggerKey, logger)
	if reqID != "" {
		ctx = context.WithValue(ctx, requestIDKey, reqID)
	}
	return ctx
}
