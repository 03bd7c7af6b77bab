package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "formats_http_requests_total",
		Help: "Total number of HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "formats_http_request_duration_seconds",
		Help:    "Duration of HTTP requests by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	searchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "formats_searches_total",
		Help: "Total number of format searches with a non-empty query",
	})

	zeroResultSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "formats_searches_zero_results_total",
		Help: "Total number of searches that matched no format",
	})

	favoriteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "formats_favorite_changes_total",
		Help: "Favorites added or removed",
	}, []string{"action"})

	scorecardsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "formats_scorecards_created_total",
		Help: "Total number of scorecards started",
	})
)

// MetricsMiddleware records request counts and latency per route pattern
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
