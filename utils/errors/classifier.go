// ABOUTME: Retry and HTTP classification for errors crossing layer boundaries
// ABOUTME: Understands context, network, domain and AppContextError values
package errors

import (
	"context"
	"errors"
	"net"
	"syscall"

	"story-pipeline/domain"
)

// IsRetryable reports whether err describes a transient condition worth another attempt.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var rejection *domain.RejectionError
	if errors.As(err, &rejection) {
		return false
	}

	var fetchErr *domain.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Retryable
	}

	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Retryable
	}

	if errors.Is(err, domain.ErrCircuitOpen) {
		return true
	}

	var appErr *AppContextError
	if errors.As(err, &appErr) {
		return appErr.IsRetryable()
	}

	var opNetErr *net.OpError
	if errors.As(err, &opNetErr) {
		if errno, ok := opNetErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT:
				return true
			}
		}
		if opNetErr.Timeout() {
			return true
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

// IsRetryableHTTPStatus treats 5xx, 408 and 429 as transient.
func IsRetryableHTTPStatus(status int) bool {
	switch {
	case status >= 500 && status <= 599:
		return true
	case status == 408, status == 429:
		return true
	default:
		return false
	}
}

// FromDomain wraps err in an AppContextError whose code reflects the domain failure.
// Errors that already are AppContextErrors are returned unchanged.
func FromDomain(err error, layer, component, operation string) *AppContextError {
	var appErr *AppContextError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		return NewUnprocessableContextError(err.Error(), layer, component, operation, err, nil)
	case errors.Is(err, domain.ErrInvalidRequest):
		return NewAppContextError(CodeValidation, err.Error(), layer, component, operation, err, nil)
	case errors.Is(err, domain.ErrRawArticleNotFound), errors.Is(err, domain.ErrStoryNotFound), errors.Is(err, domain.ErrSourceNotFound):
		return NewAppContextError(CodeNotFound, err.Error(), layer, component, operation, err, nil)
	case errors.Is(err, domain.ErrCircuitOpen):
		return NewAppContextError(CodeCircuitOpen, err.Error(), layer, component, operation, err, nil)
	case errors.Is(err, domain.ErrServiceOverloaded):
		return NewRateLimitContextError(err.Error(), layer, component, operation, err, nil)
	case errors.Is(err, context.DeadlineExceeded):
		return NewTimeoutContextError(err.Error(), layer, component, operation, err, nil)
	case errors.Is(err, domain.ErrEnrichmentUnavailable), errors.Is(err, domain.ErrFetchFailed):
		return NewExternalAPIContextError(err.Error(), layer, component, operation, err, nil)
	default:
		return NewInternalContextError(err.Error(), layer, component, operation, err, nil)
	}
}
