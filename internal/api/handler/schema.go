package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,max=80"`
	Email    string `json:"email"    validate:"required,email,max=120"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// --- Favorites ---

type addFavoriteRequest struct {
	MovieID   string `json:"movie_id"   validate:"required"`
	Title     string `json:"title"      validate:"required"`
	PosterURL string `json:"poster_url" validate:"omitempty,max=2048"`
}

type favoriteResponse struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movie_id"`
	Title     string    `json:"title"`
	PosterURL string    `json:"poster_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Status ---

type bannerResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
