package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/time/rate"

	appmiddleware "story-pipeline/middleware"
)

const extractLimiterExpiry = 3 * time.Minute

// NewHTTPServer creates and configures the Echo HTTP server.
func NewHTTPServer(deps *Dependencies, otelEnabled bool, otelServiceName string) *echo.Echo {
	cfg := deps.Config

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.HTTPErrorHandler = appmiddleware.CustomHTTPErrorHandler(deps.Logger)

	if otelEnabled {
		e.Use(otelecho.Middleware(otelServiceName))
		e.Use(appmiddleware.SpanStatus())
	}

	e.Use(appmiddleware.RequestIDMiddleware())
	e.Use(appmiddleware.LoggingMiddleware(deps.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))

	if cfg.Metrics.Enabled {
		e.GET(cfg.Metrics.Path, echo.WrapHandler(promhttp.Handler()))
	}

	api := e.Group("/api/v1")
	api.GET("/health", deps.HealthHandler.HandleLiveness)
	api.GET("/health/ready", deps.HealthHandler.HandleReadiness)

	auth := appmiddleware.InvokerAuth(cfg.Auth, deps.Logger)
	api.POST("/pipeline/run", deps.PipelineHandler.HandleRun, auth)
	api.POST("/extract", deps.ExtractHandler.HandleExtract, auth, extractRateLimiter(cfg.RateLimit.ExtractRequestsPerSec))

	return e
}

// extractRateLimiter bounds on-demand extraction per client IP.
func extractRateLimiter(rps float64) echo.MiddlewareFunc {
	burst := max(int(rps), 1)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: extractLimiterExpiry,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many extraction requests")
		},
	})
}

// StartHTTPServer starts the HTTP server in a goroutine.
func StartHTTPServer(e *echo.Echo, port int, log *slog.Logger) {
	go func() {
		addr := fmt.Sprintf(":%d", port)
		log.Info("Starting HTTP server", "port", port)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()
}
