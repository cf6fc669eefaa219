package logger

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log/global"
)

// ExportHandler tees records to the local JSON handler and to the OTel log pipeline.
// Only records at or above minExport are exported; debug output stays on stdout.
type ExportHandler struct {
	local     slog.Handler
	exporter  slog.Handler
	minExport slog.Leveler
}

// NewExportHandler exports through the global logger provider under serviceName.
func NewExportHandler(serviceName string, local slog.Handler, minExport slog.Leveler) *ExportHandler {
	return newExportHandler(local, otelslog.NewHandler(
		serviceName,
		otelslog.WithLoggerProvider(global.GetLoggerProvider()),
	), minExport)
}

func newExportHandler(local, exporter slog.Handler, minExport slog.Leveler) *ExportHandler {
	if minExport == nil {
		minExport = slog.LevelInfo
	}
	return &ExportHandler{local: local, exporter: exporter, minExport: minExport}
}

func (h *ExportHandler) exports(ctx context.Context, level slog.Level) bool {
	return level >= h.minExport.Level() && h.exporter.Enabled(ctx, level)
}

func (h *ExportHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.local.Enabled(ctx, level) || h.exports(ctx, level)
}

// Handle writes to both sinks and joins their errors.
func (h *ExportHandler) Handle(ctx context.Context, r slog.Record) error {
	var localErr, exportErr error
	if h.local.Enabled(ctx, r.Level) {
		localErr = h.local.Handle(ctx, r.Clone())
	}
	if h.exports(ctx, r.Level) {
		exportErr = h.exporter.Handle(ctx, r.Clone())
	}
	return errors.Join(localErr, exportErr)
}

func (h *ExportHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ExportHandler{local: h.local.WithAttrs(attrs), exporter: h.exporter.WithAttrs(attrs), minExport: h.minExport}
}

func (h *ExportHandler) WithGroup(name string) slog.Handler {
	return &ExportHandler{local: h.local.WithGroup(name), exporter: h.exporter.WithGroup(name), minExport: h.minExport}
}
