// Package middleware holds the echo middleware of the Movieverse API.
package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/movieverse/api/internal/core/domain"
	"github.com/movieverse/api/internal/core/ports"
)

// Context keys set by Auth.
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
)

// Auth verifies the session token and injects the caller's identity into the
// context. The Authorization bearer header wins; the cookie named cookieName
// is the fallback. Failures short-circuit with an Unauthorized domain error.
func Auth(verifier ports.TokenVerifier, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := extractToken(c, cookieName)
			if err != nil {
				return err
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				return domain.ErrInvalidToken
			}

			c.Set(UserIDKey, claims.UserID)
			c.Set(UsernameKey, claims.Username)

			return next(c)
		}
	}
}

func extractToken(c echo.Context, cookieName string) (string, error) {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", domain.ErrInvalidToken
		}
		return strings.TrimSpace(parts[1]), nil
	}

	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
			return cookie.Value, nil
		}
	}

	return "", domain.ErrMissingToken
}
