// Package db selects and opens the storage backend named by DATABASE_URL.
package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/movieverse/api/internal/core/ports"
	"github.com/movieverse/api/internal/infrastructure/db/mongo"
	"github.com/movieverse/api/internal/infrastructure/db/sqlstore"
)

// Store bundles the repositories of one backend.
type Store struct {
	Backend   string
	Users     ports.UserRepository
	Favorites ports.FavoriteRepository

	ping  func(context.Context) error
	close func() error
}

func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

func (s *Store) Close() error { return s.close() }

// Open dispatches on the URL scheme:
//
//	mongodb://, mongodb+srv://   MongoDB (database name from mongoDB)
//	postgres://, postgresql://   PostgreSQL via pgx
//	sqlite://<path>              SQLite file, or sqlite://:memory:
func Open(ctx context.Context, databaseURL, mongoDB string, log zerolog.Logger) (*Store, error) {
	scheme, rest, ok := strings.Cut(databaseURL, "://")
	if !ok {
		return nil, fmt.Errorf("db: invalid database url %q", redact(databaseURL))
	}

	switch strings.ToLower(scheme) {
	case "mongodb", "mongodb+srv":
		ms, err := mongo.Open(ctx, mongo.Config{URI: databaseURL, Database: mongoDB})
		if err != nil {
			return nil, err
		}
		return &Store{
			Backend:   "mongodb",
			Users:     ms.Users(),
			Favorites: ms.Favorites(),
			ping:      ms.Ping,
			close:     ms.Close,
		}, nil

	case "postgres", "postgresql":
		return openSQL(ctx, sqlstore.Postgres, databaseURL, log)

	case "sqlite":
		if rest == "" {
			return nil, fmt.Errorf("db: sqlite url needs a path")
		}
		return openSQL(ctx, sqlstore.SQLite, rest, log)

	default:
		return nil, fmt.Errorf("db: unsupported database scheme %q", scheme)
	}
}

func openSQL(ctx context.Context, dialect sqlstore.Dialect, dsn string, log zerolog.Logger) (*Store, error) {
	s, err := sqlstore.New(ctx, dialect, dsn, log)
	if err != nil {
		return nil, err
	}
	return &Store{
		Backend:   string(dialect),
		Users:     s.Users(),
		Favorites: s.Favorites(),
		ping:      s.Ping,
		close:     s.Close,
	}, nil
}

// redact hides credentials before a URL ends up in an error message.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable>"
	}
	return u.Redacted()
}
