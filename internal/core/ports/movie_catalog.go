package ports

import (
	"context"

	"github.com/movieverse/api/internal/core/domain"
)

// MovieCatalog is the external movie database.
//
// A lookup the catalog answers with "no results" fails with an error of kind
// domain.ErrNotFound carrying the catalog's message. Transport failures and
// timeouts fail with kind domain.ErrUpstreamUnavailable.
type MovieCatalog interface {
	Search(ctx context.Context, query string) ([]domain.MovieSummary, error)
	Details(ctx context.Context, id string) (domain.MovieDetail, error)
}

// MovieService validates lookups before they reach the catalog.
type MovieService interface {
	Search(ctx context.Context, query string) ([]domain.MovieSummary, error)
	Details(ctx context.Context, id string) (domain.MovieDetail, error)
}
