package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/movieverse/api/internal/core/domain"
	"github.com/movieverse/api/internal/core/ports"
)

// MovieService forwards lookups to the catalog. It caches nothing and never
// retries.
type MovieService struct {
	catalog ports.MovieCatalog
	log     zerolog.Logger
}

func NewMovieService(catalog ports.MovieCatalog, log zerolog.Logger) *MovieService {
	return &MovieService{catalog: catalog, log: log}
}

func (s *MovieService) Search(ctx context.Context, query string) ([]domain.MovieSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrMissingQuery
	}

	results, err := s.catalog.Search(ctx, query)
	if err != nil {
		s.logFailure(err, "search", query)
		return nil, err
	}
	if results == nil {
		results = []domain.MovieSummary{}
	}
	return results, nil
}

func (s *MovieService) Details(ctx context.Context, id string) (domain.MovieDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrMissingMovieID
	}

	detail, err := s.catalog.Details(ctx, id)
	if err != nil {
		s.logFailure(err, "details", id)
		return nil, err
	}
	return detail, nil
}

func (s *MovieService) logFailure(err error, op, key string) {
	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		s.log.Error().Err(err).Str("op", op).Str("key", key).Msg("movie catalog connection error")
		return
	}
	s.log.Debug().Err(err).Str("op", op).Str("key", key).Msg("movie catalog lookup failed")
}
