// ABOUTME: This file provides HTTP request/response logging middleware
// ABOUTME: Emits one access log per request with timing and context information
package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"story-pipeline/utils/logger"
)

func LoggingMiddleware(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			ctx := logger.WithOperation(req.Context(), req.Method+" "+c.Path())
			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			res := c.Response()
			status := res.Status
			if err != nil && !res.Committed {
				// the error handler has not written yet; report what it will send
				status = errorStatus(err)
			}

			level := slog.LevelInfo
			if status >= 500 {
				level = slog.LevelError
			}
			base.Log(ctx, level, "request completed",
				"log_type", "access",
				"request_id", logger.RequestIDFromContext(ctx),
				"method", req.Method,
				"path", req.URL.Path,
				"route", c.Path(),
				"status_code", status,
				"response_size", res.Size,
				"ip_address", c.RealIP(),
				"user_agent", req.UserAgent(),
				"duration_ms", time.Since(start).Milliseconds(),
			)

			return err
		}
	}
}
