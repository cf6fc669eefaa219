package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	apperrors "story-pipeline/utils/errors"
)

// errorStatus is the status CustomHTTPErrorHandler will answer err with.
func errorStatus(err error) int {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return apperrors.FromDomain(err, "middleware", "status", "").HTTPStatusCode()
}
