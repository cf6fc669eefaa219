package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"story-pipeline/domain"
	"story-pipeline/handler"
	"story-pipeline/test/mocks"
)

func TestHealthHandler_HandleLiveness(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := handler.NewHealthHandler(mocks.NewMockPinger(ctrl), mocks.NewMockBreakerReader(ctrl), testLogger())

	e := newEcho()
	e.GET("/api/v1/health", h.HandleLiveness)
	rec := doJSON(e, http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestHealthHandler_HandleReadiness(t *testing.T) {
	tests := map[string]struct {
		setupMock      func(db *mocks.MockPinger, breaker *mocks.MockBreakerReader)
		expectedCode   int
		expectedStatus string
		validateResp   func(t *testing.T, resp map[string]any)
	}{
		"ready": {
			setupMock: func(db *mocks.MockPinger, breaker *mocks.MockBreakerReader) {
				db.EXPECT().Ping(gomock.Any()).Return(nil)
				breaker.EXPECT().Load(gomock.Any()).Return(&domain.CircuitBreakerState{FailureCount: 1})
			},
			expectedCode:   http.StatusOK,
			expectedStatus: "ok",
			validateResp: func(t *testing.T, resp map[string]any) {
				cb := resp["circuit_breaker"].(map[string]any)
				assert.InDelta(t, 1, cb["failure_count"], 0)
				assert.Equal(t, false, cb["is_open"])
			},
		},
		"breaker open is degraded": {
			setupMock: func(db *mocks.MockPinger, breaker *mocks.MockBreakerReader) {
				db.EXPECT().Ping(gomock.Any()).Return(nil)
				breaker.EXPECT().Load(gomock.Any()).Return(&domain.CircuitBreakerState{FailureCount: 3, IsOpen: true})
			},
			expectedCode:   http.StatusOK,
			expectedStatus: "degraded",
		},
		"database unreachable": {
			setupMock: func(db *mocks.MockPinger, _ *mocks.MockBreakerReader) {
				db.EXPECT().Ping(gomock.Any()).Return(errors.New("dial tcp: connection refused"))
			},
			expectedCode:   http.StatusServiceUnavailable,
			expectedStatus: "unavailable",
			validateResp: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "unreachable", resp["database"])
				assert.NotContains(t, resp, "circuit_breaker")
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			db := mocks.NewMockPinger(ctrl)
			breaker := mocks.NewMockBreakerReader(ctrl)
			tc.setupMock(db, breaker)

			e := newEcho()
			h := handler.NewHealthHandler(db, breaker, testLogger())
			e.GET("/api/v1/health/ready", h.HandleReadiness)

			rec := doJSON(e, http.MethodGet, "/api/v1/health/ready", "")

			assert.Equal(t, tc.expectedCode, rec.Code)
			resp := decode(t, rec)
			assert.Equal(t, tc.expectedStatus, resp["status"])
			if tc.validateResp != nil {
				tc.validateResp(t, resp)
			}
		})
	}
}
