package ports

import (
	"context"

	"github.com/movieverse/api/internal/core/domain"
)

// FavoriteRepository persists favorites. Every operation is scoped to the
// owning user.
type FavoriteRepository interface {
	List(ctx context.Context, userID string) ([]domain.Favorite, error)
	// Create returns domain.ErrFavoriteExists when (UserID, MovieID) is taken.
	Create(ctx context.Context, fav *domain.Favorite) (*domain.Favorite, error)
	// Delete removes the favorite only if userID owns it; otherwise it
	// returns domain.ErrFavoriteNotFound.
	Delete(ctx context.Context, userID, favoriteID string) error
}
