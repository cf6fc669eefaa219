// ABOUTME: Finishes the otelecho server span with the pipeline's response outcome
// ABOUTME: Handled 503 refusals stay Unset so breaker pauses do not read as outages
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"story-pipeline/utils/logger"
)

const requestIDAttr = attribute.Key("pipeline.request_id")

// SpanStatus records the final status code, route and request id on the span opened by
// otelecho, so it must be registered after otelecho.Middleware.
//
// A 5xx marks the span as an error, except a 503 the handler answered itself: that is the
// trigger refusing work while the breaker is open or a dependency is not ready.
func SpanStatus() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			ctx := c.Request().Context()
			span := trace.SpanFromContext(ctx)
			if !span.SpanContext().IsValid() {
				return err
			}

			status := c.Response().Status
			if err != nil && !c.Response().Committed {
				status = errorStatus(err)
			}

			span.SetAttributes(
				semconv.HTTPResponseStatusCode(status),
				semconv.HTTPRoute(c.Path()),
			)
			if id := logger.RequestIDFromContext(ctx); id != "" {
				span.SetAttributes(requestIDAttr.String(id))
			}

			switch {
			case status == http.StatusServiceUnavailable && err == nil:
				span.AddEvent("request refused")
			case status >= 500:
				span.SetStatus(codes.Error, http.StatusText(status))
				if err != nil {
					span.RecordError(err)
				}
			}

			return err
		}
	}
}
