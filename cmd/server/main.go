// Command server runs the Movieverse API.
//
// @title                       Movieverse API
// @version                     1.0
// @description                 User accounts, favorite movies and an OMDb search proxy.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/movieverse/api/internal/api"
	"github.com/movieverse/api/internal/api/handler"
	"github.com/movieverse/api/internal/api/metrics"
	"github.com/movieverse/api/internal/api/middleware"
	"github.com/movieverse/api/internal/core/service"
	"github.com/movieverse/api/internal/infrastructure/config"
	"github.com/movieverse/api/internal/infrastructure/db"
	"github.com/movieverse/api/internal/infrastructure/db/redis"
	"github.com/movieverse/api/internal/infrastructure/omdb"
	"github.com/movieverse/api/pkg/logger"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "movieverse: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "movieverse-api",
	})

	store, err := db.Open(ctx, cfg.Database.URL, cfg.Database.MongoDB, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()
	log.Info().Str("backend", store.Backend).Msg("database ready")

	checks := []handler.Check{{Name: store.Backend, Ping: store.Ping}}

	var limiter middleware.StoreFactory
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.MemoryStore
		if cfg.Redis.Addr != "" {
			rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
			if err != nil {
				return err
			}
			defer rdb.Close()

			limiter = func(p middleware.Policy) echomiddleware.RateLimiterStore {
				return redis.NewWindowStore(rdb, p.Name, p.Limit, p.Window, log)
			}
			checks = append(checks, handler.Check{Name: "redis", Ping: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			}})
			log.Info().Str("addr", cfg.Redis.Addr).Msg("rate limits shared through redis")
		}
	}

	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTTL)
	catalog := metrics.InstrumentCatalog(omdb.NewClient(omdb.Config{
		BaseURL: cfg.OMDb.BaseURL,
		APIKey:  cfg.OMDb.APIKey,
		Timeout: cfg.OMDb.Timeout,
	}))

	e := api.NewRouter(api.Deps{
		Log:       log,
		Auth:      service.NewAuthService(store.Users, tokens, log),
		Tokens:    tokens,
		Favorites: service.NewFavoriteService(store.Favorites, log),
		Movies:    service.NewMovieService(catalog, log),
		Checks:    checks,
		Limiter:   limiter,
		Cookie: handler.CookieConfig{
			Name:   cfg.JWT.CookieName,
			Secure: cfg.JWT.CookieSecure,
		},
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", Version).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}

func printVersion() {
	fmt.Printf("Movieverse API\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
