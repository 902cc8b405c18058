package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/movieverse/api/internal/core/domain"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	s *Storage
}

// Create inserts the user. Duplicate usernames and emails are rejected by the
// table's unique constraints, so concurrent registrations cannot both succeed.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := r.s.rebind(`
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)

	created := *user
	created.CreatedAt = time.Now().UTC()

	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		var id int64
		if err := tx.QueryRowContext(ctx, query,
			created.Username,
			created.Email,
			created.PasswordHash,
			created.CreatedAt,
		).Scan(&id); err != nil {
			return err
		}
		created.ID = formatID(id)
		return nil
	})
	if err != nil {
		if detail, ok := uniqueViolation(err); ok {
			if strings.Contains(detail, "email") {
				return nil, domain.ErrEmailExists
			}
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := r.s.rebind(`
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = ?
	`)

	var (
		id   int64
		user domain.User
	)
	err := r.s.db.QueryRowContext(ctx, query, username).Scan(
		&id,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	user.ID = formatID(id)
	return &user, nil
}
