package logger

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// CorrelationHandler copies the batch, raw article, request and operation ids carried by
// the context onto each record, plus trace_id and span_id when a span is recording.
// A key already bound with WithAttrs or present on the record is not repeated.
type CorrelationHandler struct {
	inner slog.Handler
	bound map[string]bool
}

// NewCorrelationHandler wraps inner.
func NewCorrelationHandler(inner slog.Handler) *CorrelationHandler {
	return &CorrelationHandler{inner: inner}
}

func (h *CorrelationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *CorrelationHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx == nil {
		return h.inner.Handle(ctx, r)
	}

	var onRecord map[string]bool
	for _, key := range contextKeys {
		v, ok := ctx.Value(key).(string)
		if !ok || v == "" || h.bound[string(key)] {
			continue
		}
		if onRecord == nil {
			onRecord = recordKeys(r)
		}
		if !onRecord[string(key)] {
			r.AddAttrs(slog.String(string(key), v))
		}
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.inner.Handle(ctx, r)
}

func (h *CorrelationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := make(map[string]bool, len(h.bound)+len(attrs))
	for k := range h.bound {
		bound[k] = true
	}
	for _, a := range attrs {
		bound[a.Key] = true
	}
	return &CorrelationHandler{inner: h.inner.WithAttrs(attrs), bound: bound}
}

func (h *CorrelationHandler) WithGroup(name string) slog.Handler {
	return &CorrelationHandler{inner: h.inner.WithGroup(name), bound: h.bound}
}

func recordKeys(r slog.Record) map[string]bool {
	keys := make(map[string]bool, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		keys[a.Key] = true
		return true
	})
	return keys
}
