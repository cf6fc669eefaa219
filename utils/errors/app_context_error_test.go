package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppContextError_Error(t *testing.T) {
	tests := map[string]struct {
		err  *AppContextError
		want string
	}{
		"full context with cause": {
			err:  NewDatabaseContextError("claim failed", "repository", "RawArticleRepository", "ClaimPending", errors.New("conn reset"), nil),
			want: "[repository:RawArticleRepository:ClaimPending] DATABASE_ERROR: claim failed (caused by: conn reset)",
		},
		"no location": {
			err:  &AppContextError{Code: CodeValidation, Message: "url is required"},
			want: "VALIDATION_ERROR: url is required",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestAppContextError_Unwrap(t *testing.T) {
	cause := errors.New("root")
	err := NewInternalContextError("wrap", "service", "c", "o", cause, nil)
	assert.ErrorIs(t, err, cause)
}

func TestAppContextError_HTTPStatusCode(t *testing.T) {
	for code, status := range map[string]int{
		CodeValidation:    http.StatusBadRequest,
		CodeUnprocessable: http.StatusUnprocessableEntity,
		CodeUnauthorized:  http.StatusUnauthorized,
		CodeNotFound:      http.StatusNotFound,
		CodeRateLimit:     http.StatusTooManyRequests,
		CodeExternalAPI:   http.StatusBadGateway,
		CodeCircuitOpen:   http.StatusServiceUnavailable,
		CodeTimeout:       http.StatusGatewayTimeout,
		CodeDatabase:      http.StatusInternalServerError,
		"SOMETHING_ELSE":  http.StatusInternalServerError,
	} {
		assert.Equal(t, status, (&AppContextError{Code: code}).HTTPStatusCode(), code)
	}
}

func TestAppContextError_SafeMessage(t *testing.T) {
	db := NewDatabaseContextError("pq: relation raw_articles does not exist", "repository", "r", "o", nil, nil)
	assert.NotContains(t, db.SafeMessage(), "raw_articles")

	v := NewValidationContextError("url must be http or https", "handler", "h", "o", nil)
	assert.Equal(t, "url must be http or https", v.SafeMessage())

	u := NewUnprocessableContextError("invalid url", "handler", "h", "o", nil, nil)
	assert.Equal(t, "invalid url", u.SafeMessage())

	assert.Equal(t, "An error occurred.", (&AppContextError{Code: "ODD"}).SafeMessage())
}

func TestAppContextError_ToSecureHTTPResponse(t *testing.T) {
	err := NewExternalAPIContextError("upstream 502 from ai", "driver", "EnrichmentAPI", "Complete", nil, nil)
	resp := err.ToSecureHTTPResponse()

	assert.Equal(t, CodeExternalAPI, resp.Error.Code)
	assert.True(t, resp.Error.Retryable)
	assert.Equal(t, err.ErrorID, resp.Error.ErrorID)
	assert.NotContains(t, resp.Error.Message, "502")
}

func TestGenerateErrorID(t *testing.T) {
	a, b := generateErrorID(), generateErrorID()
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}
