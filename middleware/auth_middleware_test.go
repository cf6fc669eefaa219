package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story-pipeline/config"
	apperrors "story-pipeline/utils/errors"
)

const (
	testSharedSecret = "shared-secret-value"
	testJWTSecret    = "platform-jwt-secret"
)

func signToken(t *testing.T, method jwt.SigningMethod, key any, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := ServiceClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func serveWithAuth(cfg config.AuthConfig, headers map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	e.HTTPErrorHandler = CustomHTTPErrorHandler(log)
	e.POST("/api/v1/pipeline/run", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, InvokerAuth(cfg, log))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pipeline/run", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestInvokerAuth(t *testing.T) {
	fullCfg := config.AuthConfig{
		SharedSecret:      testSharedSecret,
		PlatformJWTSecret: testJWTSecret,
		ServiceRole:       "service_role",
	}

	tests := map[string]struct {
		cfg        config.AuthConfig
		headers    func(t *testing.T) map[string]string
		wantStatus int
	}{
		"matching shared secret": {
			cfg: fullCfg,
			headers: func(*testing.T) map[string]string {
				return map[string]string{PipelineSecretHeader: testSharedSecret}
			},
			wantStatus: http.StatusOK,
		},
		"wrong shared secret": {
			cfg: config.AuthConfig{SharedSecret: testSharedSecret},
			headers: func(*testing.T) map[string]string {
				return map[string]string{PipelineSecretHeader: "nope"}
			},
			wantStatus: http.StatusUnauthorized,
		},
		"wrong secret falls through to valid token": {
			cfg: fullCfg,
			headers: func(t *testing.T) map[string]string {
				return map[string]string{
					PipelineSecretHeader:     "nope",
					echo.HeaderAuthorization: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testJWTSecret), "service_role", time.Hour),
				}
			},
			wantStatus: http.StatusOK,
		},
		"service role token": {
			cfg: fullCfg,
			headers: func(t *testing.T) map[string]string {
				return map[string]string{
					echo.HeaderAuthorization: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testJWTSecret), "service_role", time.Hour),
				}
			},
			wantStatus: http.StatusOK,
		},
		"lowercase bearer scheme": {
			cfg: fullCfg,
			headers: func(t *testing.T) map[string]string {
				return map[string]string{
					echo.HeaderAuthorization: "bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testJWTSecret), "service_role", time.Hour),
				}
			},
			wantStatus: http.StatusOK,
		},
		"token with other role": {
			cfg: fullCfg,
			headers: func(t *testing.T) map[string]string {
				return map[string]string{
					echo.HeaderAuthorization: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testJWTSecret), "authenticated", time.Hour),
				}
			},
			wantStatus: http.StatusUnauthorized,
		},
		"expired token": {
			cfg: fullCfg,
			headers: func(t *testing.T) map[string]string {
				return map[string]string{
					echo.HeaderAuthorization: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testJWTSecret), "service_role", -time.Minute),
				}
			},
			wantStatus: http.StatusUnauthorized,
		},
		"token signed with other key": {
			cfg: fullCfg,
			headers: func(t *testing.T) map[string]string {
				return map[string]string{
					echo.HeaderAuthorization: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other-secret"), "service_role", time.Hour),
				}
			},
			wantStatus: http.StatusUnauthorized,
		},
		"token with disallowed algorithm": {
			cfg: fullCfg,
			headers: func(t *testing.T) map[string]string {
				return map[string]string{
					echo.HeaderAuthorization: "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(testJWTSecret), "service_role", time.Hour),
				}
			},
			wantStatus: http.StatusUnauthorized,
		},
		"token without jwt secret configured": {
			cfg: config.AuthConfig{SharedSecret: testSharedSecret},
			headers: func(t *testing.T) map[string]string {
				return map[string]string{
					echo.HeaderAuthorization: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testJWTSecret), "service_role", time.Hour),
				}
			},
			wantStatus: http.StatusUnauthorized,
		},
		"no credentials": {
			cfg:        fullCfg,
			headers:    func(*testing.T) map[string]string { return nil },
			wantStatus: http.StatusUnauthorized,
		},
		"auth disabled": {
			cfg:        config.AuthConfig{},
			headers:    func(*testing.T) map[string]string { return nil },
			wantStatus: http.StatusOK,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := serveWithAuth(tt.cfg, tt.headers(t))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestInvokerAuth_UnauthorizedBody(t *testing.T) {
	rec := serveWithAuth(config.AuthConfig{SharedSecret: testSharedSecret}, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.CodeUnauthorized)
	assert.NotContains(t, rec.Body.String(), testSharedSecret)
}

func TestBearerToken(t *testing.T) {
	tests := map[string]struct {
		header string
		want   string
		ok     bool
	}{
		"bearer":       {header: "Bearer abc.def", want: "abc.def", ok: true},
		"mixed case":   {header: "BEARER abc", want: "abc", ok: true},
		"basic scheme": {header: "Basic dXNlcg==", ok: false},
		"no token":     {header: "Bearer ", ok: false},
		"empty":        {header: "", ok: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := bearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
