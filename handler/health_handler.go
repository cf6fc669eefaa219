package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"story-pipeline/domain"
)

const readinessTimeout = 3 * time.Second

// HealthResponse is the body of both health endpoints.
type HealthResponse struct {
	Breaker  *domain.CircuitBreakerState `json:"circuit_breaker,omitempty"`
	Status   string                      `json:"status"`
	Database string                      `json:"database,omitempty"`
	Time     time.Time                   `json:"time"`
}

// HealthHandler serves liveness and readiness.
type HealthHandler struct {
	db      Pinger
	breaker BreakerReader
	logger  *slog.Logger
	now     func() time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db Pinger, breaker BreakerReader, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, breaker: breaker, logger: logger, now: time.Now}
}

// HandleLiveness handles GET /api/v1/health.
func (h *HealthHandler) HandleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Time: h.now().UTC()})
}

// HandleReadiness handles GET /api/v1/health/ready. An unreachable database fails
// readiness; an open breaker is reported but does not.
func (h *HealthHandler) HandleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Database: "ok", Time: h.now().UTC()}
	if err := h.db.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "readiness database ping failed", "error", err)
		resp.Status = "unavailable"
		resp.Database = "unreachable"
		return c.JSON(http.StatusServiceUnavailable, resp)
	}

	resp.Breaker = h.breaker.Load(ctx)
	if resp.Breaker != nil && resp.Breaker.IsOpen {
		resp.Status = "degraded"
	}
	return c.JSON(http.StatusOK, resp)
}
