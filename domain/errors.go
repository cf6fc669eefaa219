// ABOUTME: Domain-level sentinel and typed errors for the story pipeline
// ABOUTME: These errors are used with errors.Is() and errors.As() for classification
package domain

import (
	"errors"
	"fmt"
	"time"
)

// Content errors
var (
	// ErrContentTooShort indicates extracted text is below MinContentLength. Terminal.
	ErrContentTooShort = errors.New("content too short for enrichment")

	// ErrFetchFailed indicates the article page could not be retrieved
	ErrFetchFailed = errors.New("article fetch failed")

	// ErrInvalidURL indicates a URL failed format or network-safety validation
	ErrInvalidURL = errors.New("invalid article URL")
)

// Enrichment errors
var (
	// ErrInvalidAIResponse indicates the enrichment response failed schema validation
	ErrInvalidAIResponse = errors.New("invalid AI response")

	// ErrLowQuality indicates the AI quality score is below MinAIQualityScore. Terminal.
	ErrLowQuality = errors.New("AI quality score below threshold")

	// ErrEnrichmentUnavailable indicates the enrichment API could not be reached
	ErrEnrichmentUnavailable = errors.New("enrichment API unavailable")

	// ErrServiceOverloaded indicates the enrichment API returned 429
	ErrServiceOverloaded = errors.New("enrichment API overloaded")
)

// Persistence errors
var (
	// ErrRawArticleNotFound indicates the raw article row does not exist
	ErrRawArticleNotFound = errors.New("raw article not found")

	// ErrStoryNotFound indicates the story row does not exist
	ErrStoryNotFound = errors.New("story not found")

	// ErrStoryExists indicates a story for the same source and URL was inserted first
	ErrStoryExists = errors.New("story already exists")

	// ErrSourceNotFound indicates no source matched the lookup
	ErrSourceNotFound = errors.New("source not found")

	// ErrInvalidTransition indicates a disallowed raw article status change
	ErrInvalidTransition = errors.New("invalid raw article status transition")

	// ErrStaleStatus indicates the row was no longer in the expected status
	ErrStaleStatus = errors.New("raw article status changed concurrently")

	// ErrNoDefaultTopic indicates the default topic is missing from the topic table
	ErrNoDefaultTopic = errors.New("default topic not configured")
)

// Pipeline errors
var (
	// ErrCircuitOpen indicates the enrichment breaker is cooling down
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrInvalidRequest indicates the request format is invalid
	ErrInvalidRequest = errors.New("invalid request format")
)

// FetchError describes a failed page retrieval.
type FetchError struct {
	Cause      error
	URL        string
	StatusCode int
	Retryable  bool
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrFetchFailed}
	}
	return []error{ErrFetchFailed, e.Cause}
}

// UpstreamError is a transport or status failure from the enrichment API.
type UpstreamError struct {
	Cause      error
	Body       string
	StatusCode int
	Retryable  bool
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("enrichment API returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("enrichment API request failed: %v", e.Cause)
}

func (e *UpstreamError) Unwrap() []error {
	errs := []error{ErrEnrichmentUnavailable}
	if e.StatusCode == 429 {
		errs = append(errs, ErrServiceOverloaded)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// ResponseValidationError is a parse or schema failure of an AI response.
type ResponseValidationError struct {
	Cause  error
	Field  string
	Reason string
}

func (e *ResponseValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid AI response: field %q %s", e.Field, e.Reason)
	}
	if e.Cause != nil {
		return fmt.Sprintf("invalid AI response: %s: %v", e.Reason, e.Cause)
	}
	return "invalid AI response: " + e.Reason
}

func (e *ResponseValidationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidAIResponse}
	}
	return []error{ErrInvalidAIResponse, e.Cause}
}

// CircuitOpenError is returned when a batch is refused by the breaker.
type CircuitOpenError struct {
	CooldownUntil *time.Time
	FailureCount  int
}

func (e *CircuitOpenError) Error() string {
	if e.CooldownUntil != nil {
		return fmt.Sprintf("circuit breaker open until %s after %d failures",
			e.CooldownUntil.Format(time.RFC3339), e.FailureCount)
	}
	return fmt.Sprintf("circuit breaker open after %d failures", e.FailureCount)
}

func (e *CircuitOpenError) Unwrap() error {
	return ErrCircuitOpen
}

// RejectionError marks a terminal, non-retryable item outcome.
type RejectionError struct {
	Cause  error
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

func (e *RejectionError) Unwrap() error {
	return e.Cause
}

// Reject wraps cause as a terminal rejection with a human readable reason.
func Reject(cause error, format string, args ...any) *RejectionError {
	return &RejectionError{Cause: cause, Reason: fmt.Sprintf(format, args...)}
}
