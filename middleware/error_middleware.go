// ABOUTME: Centralized error handling middleware for Echo framework
// ABOUTME: Converts AppContextError and domain errors to secure HTTP responses
package middleware

import (
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"

	apperrors "story-pipeline/utils/errors"
	"story-pipeline/utils/logger"
)

// CustomHTTPErrorHandler creates the centralized HTTP error handler for Echo.
//
// Error handling priority:
// 1. echo.HTTPError - routing and binding errors keep their status
// 2. AppContextError anywhere in the chain - uses ToSecureHTTPResponse()
// 3. Anything else - classified through FromDomain so domain sentinels map to a status
func CustomHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		ctx := c.Request().Context()
		requestID := logger.RequestIDFromContext(ctx)

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status := httpErr.Code
			msg := "An error occurred"
			if m, ok := httpErr.Message.(string); ok {
				msg = m
			}

			safeMsg := msg
			if status >= 500 {
				safeMsg = "An unexpected error occurred. Please try again later."
			}

			log.WarnContext(ctx, "HTTP error",
				"request_id", requestID,
				"status", status,
				"message", msg)
			respond(c, log, status, apperrors.SecureHTTPResponse{
				Error: apperrors.SecureErrorDetail{
					Code:      "HTTP_ERROR",
					Message:   safeMsg,
					Retryable: apperrors.IsRetryableHTTPStatus(status),
				},
			})
			return
		}

		appErr := apperrors.FromDomain(err, "handler", "http", c.Path())
		status := appErr.HTTPStatusCode()

		attrs := []any{
			"request_id", requestID,
			"error_id", appErr.ErrorID,
			"code", appErr.Code,
			"message", appErr.Message,
			"layer", appErr.Layer,
			"component", appErr.Component,
			"operation", appErr.Operation,
			"cause", appErr.Cause,
		}
		if status >= 500 {
			log.ErrorContext(ctx, "application error", attrs...)
		} else {
			log.WarnContext(ctx, "application error", attrs...)
		}

		respond(c, log, status, appErr.ToSecureHTTPResponse())
	}
}

func respond(c echo.Context, log *slog.Logger, status int, body apperrors.SecureHTTPResponse) {
	if err := c.JSON(status, body); err != nil {
		log.Error("failed to send error response", "error", err)
	}
}
