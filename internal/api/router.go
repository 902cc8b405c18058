// Package api assembles the HTTP surface of the Movieverse API.
package api

import (
	"slices"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/movieverse/api/docs" // swagger docs
	"github.com/movieverse/api/internal/api/handler"
	"github.com/movieverse/api/internal/api/middleware"
	"github.com/movieverse/api/internal/core/ports"
)

// Deps is everything the router needs. It is built once at startup and
// shared read-only by all requests.
type Deps struct {
	Log       zerolog.Logger
	Auth      ports.AuthService
	Tokens    ports.TokenVerifier
	Favorites ports.FavoriteService
	Movies    ports.MovieService

	// Checks are pinged by GET /health/ready.
	Checks []handler.Check
	// Limiter builds rate-limit stores. Nil disables rate limiting.
	Limiter middleware.StoreFactory

	Cookie      handler.CookieConfig
	CORSOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Metrics())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(corsConfig(deps.CORSOrigins)))

	// Default budgets apply only to routes without a policy of their own.
	// The stores are shared by every route they guard.
	defaults := []echo.MiddlewareFunc{
		middleware.RateLimit(middleware.GlobalDailyPolicy, deps.Limiter),
		middleware.RateLimit(middleware.GlobalHourlyPolicy, deps.Limiter),
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookie)
	movieHandler := handler.NewMovieHandler(deps.Movies)
	favoriteHandler := handler.NewFavoriteHandler(deps.Favorites)
	healthHandler := handler.NewHealthHandler(deps.Checks...)

	e.GET("/", handler.Banner, defaults...)

	// --- Health probes, metrics, docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler, defaults...)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/register", authHandler.Register, middleware.RateLimit(middleware.RegisterPolicy, deps.Limiter))
	api.POST("/login", authHandler.Login, middleware.RateLimit(middleware.LoginPolicy, deps.Limiter))

	// --- Movie routes ---
	api.GET("/movies", movieHandler.Search, middleware.RateLimit(middleware.SearchPolicy, deps.Limiter))
	api.GET("/movies/:id", movieHandler.Details, defaults...)

	// --- Favorite routes (auth required) ---
	favorites := api.Group("/favorites", append(defaults, middleware.Auth(deps.Tokens, deps.Cookie.Name))...)
	favorites.GET("", favoriteHandler.List)
	favorites.POST("", favoriteHandler.Add)
	favorites.DELETE("/:id", favoriteHandler.Remove)

	return e
}

func corsConfig(origins []string) echomiddleware.CORSConfig {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
		// Credentialed requests need explicit origins.
		AllowCredentials: !slices.Contains(origins, "*"),
	}
}
