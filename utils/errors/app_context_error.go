// ABOUTME: Structured error type carrying layer/component/operation context
// ABOUTME: Maps to HTTP status codes and renders client-safe responses
package errors

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
)

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnprocessable = "UNPROCESSABLE_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED_ERROR"
	CodeNotFound      = "NOT_FOUND_ERROR"
	CodeRateLimit     = "RATE_LIMIT_ERROR"
	CodeExternalAPI   = "EXTERNAL_API_ERROR"
	CodeCircuitOpen   = "CIRCUIT_OPEN_ERROR"
	CodeTimeout       = "TIMEOUT_ERROR"
	CodeDatabase      = "DATABASE_ERROR"
	CodeInternal      = "INTERNAL_ERROR"
)

// AppContextError is an error annotated with where it happened and what it should mean to a client.
type AppContextError struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Layer     string         `json:"layer,omitempty"`
	Component string         `json:"component,omitempty"`
	Operation string         `json:"operation,omitempty"`
	Cause     error          `json:"-"`
	Context   map[string]any `json:"context,omitempty"`
	ErrorID   string         `json:"-"`
}

func (e *AppContextError) Error() string {
	var prefix string
	if e.Layer != "" && e.Component != "" && e.Operation != "" {
		prefix = fmt.Sprintf("[%s:%s:%s] ", e.Layer, e.Component, e.Operation)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s%s: %s (caused by: %v)", prefix, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s%s: %s", prefix, e.Code, e.Message)
}

func (e *AppContextError) Unwrap() error {
	return e.Cause
}

func (e *AppContextError) HTTPStatusCode() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnprocessable:
		return http.StatusUnprocessableEntity
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRateLimit:
		return http.StatusTooManyRequests
	case CodeExternalAPI:
		return http.StatusBadGateway
	case CodeCircuitOpen:
		return http.StatusServiceUnavailable
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (e *AppContextError) IsRetryable() bool {
	switch e.Code {
	case CodeRateLimit, CodeTimeout, CodeExternalAPI, CodeCircuitOpen:
		return true
	default:
		return false
	}
}

var safeMessages = map[string]string{
	CodeDatabase:     "A temporary service error occurred. Please try again later.",
	CodeExternalAPI:  "Unable to connect to external service. Please try again.",
	CodeRateLimit:    "Too many requests. Please wait before trying again.",
	CodeCircuitOpen:  "Enrichment is temporarily paused. Please try again later.",
	CodeTimeout:      "The request took too long. Please try again.",
	CodeUnauthorized: "Unauthorized.",
	CodeInternal:     "An unexpected error occurred. Please try again later.",
}

// SafeMessage hides internal detail for server-side failures. Client errors keep their message.
func (e *AppContextError) SafeMessage() string {
	if msg, ok := safeMessages[e.Code]; ok {
		return msg
	}
	switch e.Code {
	case CodeValidation, CodeUnprocessable, CodeNotFound:
		return e.Message
	}
	return "An error occurred."
}

type SecureHTTPResponse struct {
	Error SecureErrorDetail `json:"error"`
}

type SecureErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ErrorID   string `json:"error_id,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

func (e *AppContextError) ToSecureHTTPResponse() SecureHTTPResponse {
	return SecureHTTPResponse{
		Error: SecureErrorDetail{
			Code:      e.Code,
			Message:   e.SafeMessage(),
			ErrorID:   e.ErrorID,
			Retryable: e.IsRetryable(),
		},
	}
}

func generateErrorID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(b)
}

func NewAppContextError(code, message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	if context == nil {
		context = make(map[string]any)
	}

	return &AppContextError{
		Code:      code,
		Message:   message,
		Layer:     layer,
		Component: component,
		Operation: operation,
		Cause:     cause,
		Context:   context,
		ErrorID:   generateErrorID(),
	}
}

func NewValidationContextError(message, layer, component, operation string, context map[string]any) *AppContextError {
	return NewAppContextError(CodeValidation, message, layer, component, operation, nil, context)
}

func NewUnprocessableContextError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	return NewAppContextError(CodeUnprocessable, message, layer, component, operation, cause, context)
}

func NewUnauthorizedContextError(message, layer, component, operation string) *AppContextError {
	return NewAppContextError(CodeUnauthorized, message, layer, component, operation, nil, nil)
}

func NewNotFoundContextError(message, layer, component, operation string, context map[string]any) *AppContextError {
	return NewAppContextError(CodeNotFound, message, layer, component, operation, nil, context)
}

func NewInternalContextError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	return NewAppContextError(CodeInternal, message, layer, component, operation, cause, context)
}

func NewDatabaseContextError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	return NewAppContextError(CodeDatabase, message, layer, component, operation, cause, context)
}

func NewExternalAPIContextError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	return NewAppContextError(CodeExternalAPI, message, layer, component, operation, cause, context)
}

func NewTimeoutContextError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	return NewAppContextError(CodeTimeout, message, layer, component, operation, cause, context)
}

func NewRateLimitContextError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	return NewAppContextError(CodeRateLimit, message, layer, component, operation, cause, context)
}
