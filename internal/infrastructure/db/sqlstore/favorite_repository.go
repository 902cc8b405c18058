package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/movieverse/api/internal/core/domain"
)

// FavoriteRepository implements ports.FavoriteRepository.
type FavoriteRepository struct {
	s *Storage
}

func (r *FavoriteRepository) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	uid, ok := parseID(userID)
	if !ok {
		return []domain.Favorite{}, nil
	}

	query := r.s.rebind(`
		SELECT id, user_id, movie_id, title, poster_url, created_at
		FROM favorites
		WHERE user_id = ?
		ORDER BY id
	`)

	rows, err := r.s.db.QueryContext(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	favs := []domain.Favorite{}
	for rows.Next() {
		var (
			id, owner int64
			poster    sql.NullString
			fav       domain.Favorite
		)
		if err := rows.Scan(&id, &owner, &fav.MovieID, &fav.Title, &poster, &fav.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		fav.ID = formatID(id)
		fav.UserID = formatID(owner)
		fav.PosterURL = poster.String
		favs = append(favs, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}

	return favs, nil
}

// Create inserts the favorite; the (user_id, movie_id) unique constraint
// turns a duplicate into domain.ErrFavoriteExists.
func (r *FavoriteRepository) Create(ctx context.Context, fav *domain.Favorite) (*domain.Favorite, error) {
	uid, ok := parseID(fav.UserID)
	if !ok {
		return nil, fmt.Errorf("insert favorite: invalid user id %q", fav.UserID)
	}

	query := r.s.rebind(`
		INSERT INTO favorites (user_id, movie_id, title, poster_url, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)

	created := *fav
	created.CreatedAt = time.Now().UTC()
	poster := sql.NullString{String: fav.PosterURL, Valid: fav.PosterURL != ""}

	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		var id int64
		if err := tx.QueryRowContext(ctx, query, uid, created.MovieID, created.Title, poster, created.CreatedAt).Scan(&id); err != nil {
			return err
		}
		created.ID = formatID(id)
		return nil
	})
	if err != nil {
		if _, dup := uniqueViolation(err); dup {
			return nil, domain.ErrFavoriteExists
		}
		return nil, fmt.Errorf("insert favorite: %w", err)
	}

	return &created, nil
}

// Delete removes the favorite only when userID owns it.
func (r *FavoriteRepository) Delete(ctx context.Context, userID, favoriteID string) error {
	uid, okUser := parseID(userID)
	fid, okFav := parseID(favoriteID)
	if !okUser || !okFav {
		return domain.ErrFavoriteNotFound
	}

	query := r.s.rebind(`DELETE FROM favorites WHERE id = ? AND user_id = ?`)

	var affected int64
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, fid, uid)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if affected == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}
