package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"story-pipeline/domain"
	"story-pipeline/orchestrator"
)

// RunRequest is the optional body of POST /api/v1/pipeline/run.
type RunRequest struct {
	Limit int `json:"limit"`
}

// CircuitOpenResponse is returned with 503 while enrichment is paused.
type CircuitOpenResponse struct {
	CooldownUntil *time.Time `json:"cooldown_until"`
	Message       string     `json:"message"`
	FailureCount  int        `json:"failure_count"`
}

// PipelineHandler triggers batches on behalf of the external scheduler.
type PipelineHandler struct {
	runner BatchRunner
	logger *slog.Logger
}

// NewPipelineHandler creates a new pipeline handler.
func NewPipelineHandler(runner BatchRunner, logger *slog.Logger) *PipelineHandler {
	return &PipelineHandler{runner: runner, logger: logger}
}

// HandleRun handles POST /api/v1/pipeline/run requests.
func (h *PipelineHandler) HandleRun(c echo.Context) error {
	ctx := c.Request().Context()

	var req RunRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			h.logger.WarnContext(ctx, "failed to bind run request", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
		}
	}
	if req.Limit < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must not be negative")
	}

	// Claimed items must finish even if the invoker disconnects or times out.
	report, err := h.runner.RunBatch(context.WithoutCancel(ctx), orchestrator.BatchRequest{Limit: req.Limit})
	if err != nil {
		var open *domain.CircuitOpenError
		if errors.As(err, &open) {
			h.logger.WarnContext(ctx, "batch refused, circuit breaker open",
				"failure_count", open.FailureCount,
				"cooldown_until", open.CooldownUntil)
			return c.JSON(http.StatusServiceUnavailable, CircuitOpenResponse{
				Message:       "Circuit breaker is open. Enrichment paused until cooldown ends.",
				CooldownUntil: open.CooldownUntil,
				FailureCount:  open.FailureCount,
			})
		}
		h.logger.ErrorContext(ctx, "batch failed", "error", err)
		return err
	}

	return c.JSON(http.StatusOK, report)
}
