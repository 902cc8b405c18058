package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/movieverse/api/internal/core/domain"
	"github.com/movieverse/api/internal/core/ports"
)

type FavoriteService struct {
	repo ports.FavoriteRepository
	log  zerolog.Logger
}

func NewFavoriteService(repo ports.FavoriteRepository, log zerolog.Logger) *FavoriteService {
	return &FavoriteService{repo: repo, log: log}
}

// List returns the user's favorites; an empty list is never nil.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	favs, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if favs == nil {
		favs = []domain.Favorite{}
	}
	return favs, nil
}

func (s *FavoriteService) Add(ctx context.Context, in ports.AddFavoriteInput) (*domain.Favorite, error) {
	movieID := strings.TrimSpace(in.MovieID)
	title := strings.TrimSpace(in.Title)
	if in.UserID == "" {
		return nil, domain.ErrMissingToken
	}
	if movieID == "" || title == "" {
		return nil, domain.ErrMissingFields
	}

	fav, err := s.repo.Create(ctx, &domain.Favorite{
		UserID:    in.UserID,
		MovieID:   movieID,
		Title:     title,
		PosterURL: strings.TrimSpace(in.PosterURL),
	})
	if err != nil {
		if errors.Is(err, domain.ErrFavoriteExists) {
			return nil, err
		}
		return nil, fmt.Errorf("add favorite: %w", err)
	}

	s.log.Info().Str("user_id", in.UserID).Str("movie_id", movieID).Str("favorite_id", fav.ID).Msg("favorite added")
	return fav, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, favoriteID string) error {
	if strings.TrimSpace(favoriteID) == "" {
		return domain.ErrFavoriteNotFound
	}

	if err := s.repo.Delete(ctx, userID, favoriteID); err != nil {
		if errors.Is(err, domain.ErrFavoriteNotFound) {
			return err
		}
		return fmt.Errorf("remove favorite: %w", err)
	}

	s.log.Info().Str("user_id", userID).Str("favorite_id", favoriteID).Msg("favorite removed")
	return nil
}
