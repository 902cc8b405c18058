// Package metrics defines and registers all custom Prometheus metrics for the
// Movieverse API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "movieverse"

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts served requests.
// Labels:
//   - method: HTTP method
//   - route: the matched route pattern (e.g. "/api/favorites/:id"), never the raw path
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures handler latency by route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogRequestsTotal counts lookups against the movie catalog.
// Labels:
//   - operation: "search" or "details"
//   - result: "ok", "not_found", or "unavailable"
var CatalogRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_requests_total",
		Help:      "Total number of movie catalog lookups, by operation and result.",
	},
	[]string{"operation", "result"},
)

// CatalogRequestDuration measures round trips to the catalog.
var CatalogRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_request_duration_seconds",
		Help:      "Duration of movie catalog lookups.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	},
	[]string{"operation"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts successful registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Favorites metrics ─────────────────────────────────────────────────────────

// FavoritesTotal counts favorite mutations.
// Label:
//   - action: "added" or "removed"
var FavoritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "favorites_total",
		Help:      "Total number of favorites added or removed.",
	},
	[]string{"action"},
)
