package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds the transport settings of NewRouter
type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter mounts every endpoint of h
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", SessionHeader},
		ExposedHeaders:   []string{SessionHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.SessionMiddleware)

		r.Get("/formats", h.ListFormats)
		r.Get("/formats/compare", h.CompareFormats)
		r.Get("/formats/{id}", h.GetFormat)
		r.Get("/formats/{id}/demo", h.GetDemo)
		r.Get("/suggestions", h.GetSuggestions)

		r.Route("/me", func(r chi.Router) {
			r.Get("/recent-searches", h.GetRecentSearches)
			r.Post("/recent-searches", h.AddRecentSearch)
			r.Delete("/recent-searches", h.ClearRecentSearches)

			r.Get("/favorites", h.GetFavorites)
			r.Put("/favorites/{id}", h.AddFavorite)
			r.Delete("/favorites/{id}", h.RemoveFavorite)
			r.Post("/favorites/{id}/toggle", h.ToggleFavorite)

			r.Get("/recently-viewed", h.GetRecentlyViewed)

			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.PutSettings)

			r.Get("/state", h.GetUIState)
			r.Put("/state", h.PutUIState)
			r.Post("/state/actions", h.ApplyUIAction)
		})

		r.Route("/scorecards", func(r chi.Router) {
			r.Post("/", h.CreateScorecard)
			r.Get("/{id}", h.GetScorecard)
			r.Delete("/{id}", h.DeleteScorecard)
			r.Post("/{id}/reset", h.ResetScorecard)
			r.Post("/{id}/players", h.AddScorecardPlayer)
			r.Patch("/{id}/players/{playerID}", h.UpdateScorecardPlayer)
			r.Delete("/{id}/players/{playerID}", h.RemoveScorecardPlayer)
			r.Put("/{id}/holes/{hole}/players/{playerID}", h.SetScorecardStrokes)
		})
	})

	return r
}
