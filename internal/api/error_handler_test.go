package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/movieverse/api/internal/core/domain"
)

func TestHTTPErrorHandler_MapsKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", domain.ErrMissingQuery, http.StatusBadRequest, "missing search query"},
		{"unauthorized", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"conflict", domain.ErrUserExists, http.StatusConflict, "username already exists"},
		{"not found", domain.ErrFavoriteNotFound, http.StatusNotFound, "favorite not found"},
		{"catalog message", domain.NewError(domain.ErrNotFound, "Movie not found!"), http.StatusNotFound, "Movie not found!"},
		{"upstream with cause", domain.ErrCatalogDown.WithCause(errors.New("dial tcp: i/o timeout")), http.StatusBadGateway, "failed to connect to movie database"},
		{"echo error", echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"), http.StatusTooManyRequests, "rate limit exceeded"},
		{"wrapped internal", fmt.Errorf("register: %w", errors.New("disk full")), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrInvalidToken, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response must not be rewritten, got %d %q", rec.Code, rec.Body.String())
	}
}
