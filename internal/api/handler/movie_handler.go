package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movieverse/api/internal/core/ports"
)

// MovieHandler proxies catalog lookups.
type MovieHandler struct {
	service ports.MovieService
}

func NewMovieHandler(service ports.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

// Search looks movies up by title.
//
// @Summary      Search movies
// @Tags         movies
// @Produce      json
// @Param        query  query     string  true  "Title to search for"
// @Success      200    {array}   domain.MovieSummary
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Failure      429    {object}  errorResponse
// @Failure      502    {object}  errorResponse
// @Router       /api/movies [get]
func (h *MovieHandler) Search(c echo.Context) error {
	results, err := h.service.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

// Details returns the full catalog record of one movie.
//
// @Summary      Movie details
// @Tags         movies
// @Produce      json
// @Param        id   path      string  true  "Catalog id, e.g. tt0372784"
// @Success      200  {object}  domain.MovieDetail
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/movies/{id} [get]
func (h *MovieHandler) Details(c echo.Context) error {
	detail, err := h.service.Details(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}
