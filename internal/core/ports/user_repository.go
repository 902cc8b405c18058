package ports

import (
	"context"

	"github.com/movieverse/api/internal/core/domain"
)

// UserRepository persists user accounts. Implementations enforce unique
// username and email at the storage layer.
type UserRepository interface {
	// Create stores user and returns it with ID and CreatedAt set.
	// Returns domain.ErrUserExists or domain.ErrEmailExists on a uniqueness violation.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsername returns domain.ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
