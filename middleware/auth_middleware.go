// ABOUTME: Invoker authentication for the pipeline trigger and extract endpoints
// ABOUTME: Accepts a shared secret header or a platform service-role JWT
package middleware

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"story-pipeline/config"
	apperrors "story-pipeline/utils/errors"
)

// PipelineSecretHeader carries the shared invoker secret.
const PipelineSecretHeader = "X-Pipeline-Secret"

var (
	errMissingCredentials = errors.New("missing invoker credentials")
	errInvalidSecret      = errors.New("invalid pipeline secret")
	errInvalidToken       = errors.New("invalid platform token")
	errInvalidRole        = errors.New("token role not permitted")
)

// ServiceClaims are the platform JWT claims checked for the invoker role.
type ServiceClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// InvokerAuth admits requests carrying the shared secret or, failing that, a HS256 bearer
// token whose role claim matches cfg.ServiceRole. With no credentials configured every
// request is admitted.
func InvokerAuth(cfg config.AuthConfig, logger *slog.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled() {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	role := cfg.ServiceRole
	if role == "" {
		role = "service_role"
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := authenticate(c, cfg, role, parser)
			if err == nil {
				return next(c)
			}

			logger.WarnContext(c.Request().Context(), "invoker authentication failed",
				"path", c.Path(),
				"ip_address", c.RealIP(),
				"reason", err)
			return apperrors.NewUnauthorizedContextError("invalid or missing invoker credentials",
				"middleware", "InvokerAuth", c.Path())
		}
	}
}

func authenticate(c echo.Context, cfg config.AuthConfig, role string, parser *jwt.Parser) error {
	header := c.Request().Header

	secret := header.Get(PipelineSecretHeader)
	if secret != "" && cfg.SharedSecret != "" {
		if subtle.ConstantTimeCompare([]byte(secret), []byte(cfg.SharedSecret)) == 1 {
			return nil
		}
		if cfg.PlatformJWTSecret == "" {
			return errInvalidSecret
		}
	}

	token, ok := bearerToken(header.Get(echo.HeaderAuthorization))
	if !ok || cfg.PlatformJWTSecret == "" {
		if secret != "" {
			return errInvalidSecret
		}
		return errMissingCredentials
	}
	return verifyServiceToken(parser, token, []byte(cfg.PlatformJWTSecret), role)
}

func bearerToken(authorization string) (string, bool) {
	scheme, token, found := strings.Cut(authorization, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func verifyServiceToken(parser *jwt.Parser, token string, secret []byte, role string) error {
	claims := &ServiceClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidToken, err)
	}
	if !parsed.Valid {
		return errInvalidToken
	}
	if claims.Role != role {
		return fmt.Errorf("%w: %q", errInvalidRole, claims.Role)
	}
	return nil
}
