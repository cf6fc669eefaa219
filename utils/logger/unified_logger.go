// ABOUTME: slog JSON logger shared by every component of the pipeline
// ABOUTME: Adds service metadata, trace correlation and context-carried fields
package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

const serviceVersion = "1.0.0"

// UnifiedLogger wraps a JSON slog.Logger with the service's field conventions.
type UnifiedLogger struct {
	logger      *slog.Logger
	serviceName string
}

// NewUnifiedLogger writes JSON records to output at the given level.
func NewUnifiedLogger(output io.Writer, serviceName, level string) *UnifiedLogger {
	handler := NewCorrelationHandler(newJSONHandler(output, ParseLevel(level)))
	return newUnifiedLogger(handler, serviceName)
}

// NewUnifiedLoggerWithOTel fans records out to output and the global OTel logger provider.
func NewUnifiedLoggerWithOTel(output io.Writer, serviceName, level string, enableOTel bool) *UnifiedLogger {
	if !enableOTel {
		return NewUnifiedLogger(output, serviceName, level)
	}
	lvl := ParseLevel(level)
	tee := NewExportHandler(serviceName, newJSONHandler(output, lvl), max(lvl, slog.LevelInfo))
	return newUnifiedLogger(NewCorrelationHandler(tee), serviceName)
}

func newUnifiedLogger(handler slog.Handler, serviceName string) *UnifiedLogger {
	return &UnifiedLogger{
		logger:      slog.New(handler).With("service", serviceName, "version", serviceVersion),
		serviceName: serviceName,
	}
}

func newJSONHandler(output io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// the log forwarder expects lowercase levels
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					return slog.String(slog.LevelKey, strings.ToLower(lvl.String()))
				}
			}
			return a
		},
	})
}

// Logger exposes the underlying slog.Logger.
func (ul *UnifiedLogger) Logger() *slog.Logger {
	return ul.logger
}

// WithContext returns a logger carrying request, batch, item and operation fields found in ctx.
func (ul *UnifiedLogger) WithContext(ctx context.Context) *slog.Logger {
	if fields := contextFields(ctx); len(fields) > 0 {
		return ul.logger.With(fields...)
	}
	return ul.logger
}

func (ul *UnifiedLogger) With(args ...any) *UnifiedLogger {
	return &UnifiedLogger{
		logger:      ul.logger.With(args...),
		serviceName: ul.serviceName,
	}
}
