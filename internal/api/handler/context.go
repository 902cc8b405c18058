package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/movieverse/api/internal/api/middleware"
	"github.com/movieverse/api/internal/core/domain"
)

// currentUserID returns the caller injected by the Auth middleware. A missing
// identity means the route was mounted without the middleware; treat it as
// unauthenticated rather than trusting anything else in the request.
func currentUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.UserIDKey).(string)
	if userID == "" {
		return "", domain.ErrMissingToken
	}
	return userID, nil
}
