package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movieverse/api/internal/api/metrics"
	"github.com/movieverse/api/internal/core/domain"
	"github.com/movieverse/api/internal/core/ports"
)

// FavoriteHandler serves the caller's favorites. Every route needs the Auth
// middleware.
type FavoriteHandler struct {
	service ports.FavoriteService
}

func NewFavoriteHandler(service ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// List returns the caller's favorites.
//
// @Summary      List favorites
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   favoriteResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	favs, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	resp := make([]favoriteResponse, 0, len(favs))
	for i := range favs {
		resp = append(resp, toFavoriteResponse(&favs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Add saves a movie to the caller's favorites.
//
// @Summary      Add favorite
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addFavoriteRequest  true  "Movie to save"
// @Success      201   {object}  favoriteResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/favorites [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req addFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fav, err := h.service.Add(c.Request().Context(), ports.AddFavoriteInput{
		UserID:    userID,
		MovieID:   req.MovieID,
		Title:     req.Title,
		PosterURL: req.PosterURL,
	})
	if err != nil {
		return err
	}

	metrics.FavoritesTotal.WithLabelValues("added").Inc()
	return c.JSON(http.StatusCreated, toFavoriteResponse(fav))
}

// Remove deletes one of the caller's favorites.
//
// @Summary      Remove favorite
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Favorite id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/favorites/{id} [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}

	metrics.FavoritesTotal.WithLabelValues("removed").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Favorite removed"})
}

func toFavoriteResponse(f *domain.Favorite) favoriteResponse {
	return favoriteResponse{
		ID:        f.ID,
		MovieID:   f.MovieID,
		Title:     f.Title,
		PosterURL: f.PosterURL,
		CreatedAt: f.CreatedAt,
	}
}
