package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/movieverse/api/internal/core/domain"
	"github.com/movieverse/api/internal/core/ports"
)

// InstrumentCatalog records CatalogRequestsTotal and CatalogRequestDuration
// around every lookup made through next.
func InstrumentCatalog(next ports.MovieCatalog) ports.MovieCatalog {
	return &instrumentedCatalog{next: next}
}

type instrumentedCatalog struct {
	next ports.MovieCatalog
}

func (c *instrumentedCatalog) Search(ctx context.Context, query string) ([]domain.MovieSummary, error) {
	start := time.Now()
	results, err := c.next.Search(ctx, query)
	observeCatalog("search", start, err)
	return results, err
}

func (c *instrumentedCatalog) Details(ctx context.Context, id string) (domain.MovieDetail, error) {
	start := time.Now()
	detail, err := c.next.Details(ctx, id)
	observeCatalog("details", start, err)
	return detail, err
}

func observeCatalog(op string, start time.Time, err error) {
	CatalogRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	CatalogRequestsTotal.WithLabelValues(op, catalogResult(err)).Inc()
}

func catalogResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "unavailable"
	}
}
