package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Policy is a named request budget per client IP.
type Policy struct {
	Name   string
	Limit  int
	Window time.Duration
}

// Route budgets.
var (
	GlobalDailyPolicy  = Policy{Name: "global-day", Limit: 200, Window: 24 * time.Hour}
	GlobalHourlyPolicy = Policy{Name: "global-hour", Limit: 50, Window: time.Hour}
	RegisterPolicy     = Policy{Name: "register", Limit: 10, Window: time.Minute}
	LoginPolicy        = Policy{Name: "login", Limit: 10, Window: time.Minute}
	SearchPolicy       = Policy{Name: "search", Limit: 30, Window: time.Minute}
)

// StoreFactory builds the counter backing one policy.
type StoreFactory func(Policy) echomiddleware.RateLimiterStore

// MemoryStore is a per-process token bucket refilling Limit tokens per Window.
func MemoryStore(p Policy) echomiddleware.RateLimiterStore {
	return echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(p.Limit) / p.Window.Seconds()),
		Burst:     p.Limit,
		ExpiresIn: p.Window,
	})
}

var errRateLimited = echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")

// RateLimit enforces p per client IP using a store from newStore.
// A nil newStore disables limiting.
func RateLimit(p Policy, newStore StoreFactory) echo.MiddlewareFunc {
	if newStore == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Skipper: skipProbes,
		Store:   newStore(p),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			c.Response().Header().Set("Retry-After", retryAfter(p.Window))
			return errRateLimited
		},
	})
}

// retryAfter is an upper bound in seconds, capped at one hour.
func retryAfter(window time.Duration) string {
	if window > time.Hour {
		window = time.Hour
	}
	return strconv.Itoa(int(window.Seconds()))
}

// skipProbes keeps health checks and scrapes out of every budget.
func skipProbes(c echo.Context) bool {
	switch c.Path() {
	case "/health", "/health/ready", "/metrics":
		return true
	}
	return false
}
