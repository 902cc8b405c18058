package domain

import "time"

// Favorite is a user-owned bookmark of a catalog movie. Title and poster are
// copied from the catalog when the favorite is added and never refreshed.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MovieID   string    `json:"movie_id"`
	Title     string    `json:"title"`
	PosterURL string    `json:"poster_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
