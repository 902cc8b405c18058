package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/movieverse/api/internal/api/middleware"
	"github.com/movieverse/api/internal/core/domain"
	"github.com/movieverse/api/internal/core/ports"
)

type stubFavoriteService struct {
	listFn   func(ctx context.Context, userID string) ([]domain.Favorite, error)
	addFn    func(ctx context.Context, in ports.AddFavoriteInput) (*domain.Favorite, error)
	removeFn func(ctx context.Context, userID, favoriteID string) error
}

func (s *stubFavoriteService) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	return s.listFn(ctx, userID)
}

func (s *stubFavoriteService) Add(ctx context.Context, in ports.AddFavoriteInput) (*domain.Favorite, error) {
	return s.addFn(ctx, in)
}

func (s *stubFavoriteService) Remove(ctx context.Context, userID, favoriteID string) error {
	return s.removeFn(ctx, userID, favoriteID)
}

func TestFavoriteHandler_List(t *testing.T) {
	stub := &stubFavoriteService{
		listFn: func(ctx context.Context, userID string) ([]domain.Favorite, error) {
			if userID != "42" {
				t.Fatalf("unexpected user %q", userID)
			}
			return []domain.Favorite{{ID: "1", UserID: "42", MovieID: "tt0372784", Title: "Batman Begins"}}, nil
		},
	}

	c, rec := newTestContext(http.MethodGet, "/api/favorites", "")
	c.Set(middleware.UserIDKey, "42")

	if err := NewFavoriteHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var got []favoriteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 || got[0].MovieID != "tt0372784" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestFavoriteHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubFavoriteService{
		listFn: func(ctx context.Context, userID string) ([]domain.Favorite, error) {
			return nil, nil
		},
	}

	c, rec := newTestContext(http.MethodGet, "/api/favorites", "")
	c.Set(middleware.UserIDKey, "42")

	if err := NewFavoriteHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestFavoriteHandler_RequiresIdentity(t *testing.T) {
	h := NewFavoriteHandler(&stubFavoriteService{})

	c, _ := newTestContext(http.MethodGet, "/api/favorites", "")
	if err := h.List(c); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestFavoriteHandler_Add(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubFavoriteService{
		addFn: func(ctx context.Context, in ports.AddFavoriteInput) (*domain.Favorite, error) {
			if in.UserID != "42" || in.MovieID != "tt0372784" || in.Title != "Batman Begins" || in.PosterURL != "https://img/bb.jpg" {
				t.Fatalf("unexpected input %+v", in)
			}
			return &domain.Favorite{ID: "9", UserID: in.UserID, MovieID: in.MovieID, Title: in.Title, PosterURL: in.PosterURL, CreatedAt: created}, nil
		},
	}

	c, rec := newTestContext(http.MethodPost, "/api/favorites", `{"movie_id":"tt0372784","title":"Batman Begins","poster_url":"https://img/bb.jpg"}`)
	c.Set(middleware.UserIDKey, "42")

	if err := NewFavoriteHandler(stub).Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var got favoriteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.ID != "9" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestFavoriteHandler_Add_MissingTitle(t *testing.T) {
	stub := &stubFavoriteService{
		addFn: func(ctx context.Context, in ports.AddFavoriteInput) (*domain.Favorite, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}

	c, _ := newTestContext(http.MethodPost, "/api/favorites", `{"movie_id":"tt0372784"}`)
	c.Set(middleware.UserIDKey, "42")

	err := NewFavoriteHandler(stub).Add(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "title is required" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestFavoriteHandler_Add_Duplicate(t *testing.T) {
	stub := &stubFavoriteService{
		addFn: func(ctx context.Context, in ports.AddFavoriteInput) (*domain.Favorite, error) {
			return nil, domain.ErrFavoriteExists
		},
	}

	c, _ := newTestContext(http.MethodPost, "/api/favorites", `{"movie_id":"tt0372784","title":"Batman Begins"}`)
	c.Set(middleware.UserIDKey, "42")

	if err := NewFavoriteHandler(stub).Add(c); !errors.Is(err, domain.ErrFavoriteExists) {
		t.Fatalf("expected ErrFavoriteExists, got %v", err)
	}
}

func TestFavoriteHandler_Remove(t *testing.T) {
	stub := &stubFavoriteService{
		removeFn: func(ctx context.Context, userID, favoriteID string) error {
			if userID != "42" {
				t.Fatalf("unexpected user %q", userID)
			}
			if favoriteID != "9" {
				return domain.ErrFavoriteNotFound
			}
			return nil
		},
	}
	h := NewFavoriteHandler(stub)

	c, rec := newTestContext(http.MethodDelete, "/api/favorites/9", "")
	c.Set(middleware.UserIDKey, "42")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.Remove(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var got messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Message != "Favorite removed" {
		t.Fatalf("unexpected message %q", got.Message)
	}

	c, _ = newTestContext(http.MethodDelete, "/api/favorites/10", "")
	c.Set(middleware.UserIDKey, "42")
	c.SetParamNames("id")
	c.SetParamValues("10")

	if err := h.Remove(c); !errors.Is(err, domain.ErrFavoriteNotFound) {
		t.Fatalf("expected ErrFavoriteNotFound, got %v", err)
	}
}
