package ports

import (
	"context"

	"github.com/movieverse/api/internal/core/domain"
)

// AddFavoriteInput is the DTO passed from the transport layer to FavoriteService.
type AddFavoriteInput struct {
	UserID    string
	MovieID   string
	Title     string
	PosterURL string // optional
}

type FavoriteService interface {
	List(ctx context.Context, userID string) ([]domain.Favorite, error)
	Add(ctx context.Context, in AddFavoriteInput) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, favoriteID string) error
}
