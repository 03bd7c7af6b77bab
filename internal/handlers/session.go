package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fairwaylabs/formats-api/internal/models"
	"github.com/fairwaylabs/formats-api/internal/state"
)

// idList is the response shape of every list under /me
func idList(key string, items []string) map[string]interface{} {
	if items == nil {
		items = []string{}
	}
	return map[string]interface{}{key: items, "count": len(items)}
}

// GetRecentSearches returns the session's search history, most recent first
// @Summary Recent Searches
// @Tags Session
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /me/recent-searches [get]
func (h *Handler) GetRecentSearches(w http.ResponseWriter, r *http.Request) {
	history, err := h.sessions.RecentSearches(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		h.serviceError(w, err, "Failed to load recent searches")
		return
	}
	h.jsonResponse(w, http.StatusOK, idList("recent_searches", history))
}

// AddRecentSearch records a submitted search
// @Summary Add Recent Search
// @Tags Session
// @Accept json
// @Produce json
// @Param body body models.RecentSearchRequest true "Submitted query"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /me/recent-searches [post]
func (h *Handler) AddRecentSearch(w http.ResponseWriter, r *http.Request) {
	var req models.RecentSearchRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	history, err := h.sessions.AddRecentSearch(r.Context(), sessionIDFromContext(r.Context()), req.Query)
	if err != nil {
		h.serviceError(w, err, "Failed to save recent search")
		return
	}
	h.jsonResponse(w, http.StatusOK, idList("recent_searches", history))
}

// ClearRecentSearches forgets the search history
// @Summary Clear Recent Searches
// @Tags Session
// @Success 204
// @Router /me/recent-searches [delete]
func (h *Handler) ClearRecentSearches(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ClearRecentSearches(r.Context(), sessionIDFromContext(r.Context())); err != nil {
		h.serviceError(w, err, "Failed to clear recent searches")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetFavorites returns the favorite format ids
// @Summary Favorites
// @Tags Session
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /me/favorites [get]
func (h *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := h.sessions.Favorites(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		h.serviceError(w, err, "Failed to load favorites")
		return
	}
	h.jsonResponse(w, http.StatusOK, idList("favorites", favs))
}

// AddFavorite marks a format as favorite. Adding twice is a no-op.
// @Summary Add Favorite
// @Tags Session
// @Produce json
// @Param id path string true "Format ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /me/favorites/{id} [put]
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	favs, err := h.sessions.AddFavorite(r.Context(), sessionIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, err, "Failed to add favorite")
		return
	}
	favoriteToggles.WithLabelValues("add").Inc()
	h.jsonResponse(w, http.StatusOK, idList("favorites", favs))
}

// RemoveFavorite unmarks a format
// @Summary Remove Favorite
// @Tags Session
// @Produce json
// @Param id path string true "Format ID"
// @Success 200 {object} map[string]interface{}
// @Router /me/favorites/{id} [delete]
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	favs, err := h.sessions.RemoveFavorite(r.Context(), sessionIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, err, "Failed to remove favorite")
		return
	}
	favoriteToggles.WithLabelValues("remove").Inc()
	h.jsonResponse(w, http.StatusOK, idList("favorites", favs))
}

// ToggleFavorite flips the favorite mark of a format
// @Summary Toggle Favorite
// @Tags Session
// @Produce json
// @Param id path string true "Format ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /me/favorites/{id}/toggle [post]
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	favs, err := h.sessions.ToggleFavorite(r.Context(), sessionIDFromContext(r.Context()), id)
	if err != nil {
		h.serviceError(w, err, "Failed to toggle favorite")
		return
	}

	favorite := false
	for _, f := range favs {
		if f == id {
			favorite = true
			break
		}
	}
	if favorite {
		favoriteToggles.WithLabelValues("add").Inc()
	} else {
		favoriteToggles.WithLabelValues("remove").Inc()
	}

	resp := idList("favorites", favs)
	resp["favorite"] = favorite
	h.jsonResponse(w, http.StatusOK, resp)
}

// GetRecentlyViewed returns the formats opened most recently
// @Summary Recently Viewed
// @Tags Session
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /me/recently-viewed [get]
func (h *Handler) GetRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	viewed, err := h.sessions.RecentlyViewed(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		h.serviceError(w, err, "Failed to load recently viewed")
		return
	}
	h.jsonResponse(w, http.StatusOK, idList("recently_viewed", viewed))
}

// GetSettings returns the session's preferences
// @Summary Get Settings
// @Tags Session
// @Produce json
// @Success 200 {object} models.Settings
// @Router /me/settings [get]
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.sessions.Settings(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		h.serviceError(w, err, "Failed to load settings")
		return
	}
	h.jsonResponse(w, http.StatusOK, settings)
}

// PutSettings replaces the preferences. Numbers out of range are clamped.
// @Summary Save Settings
// @Tags Session
// @Accept json
// @Produce json
// @Param body body models.Settings true "Settings"
// @Success 200 {object} models.Settings
// @Failure 400 {object} map[string]string
// @Router /me/settings [put]
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	settings := models.DefaultSettings()
	if !h.decodeJSON(w, r, &settings) {
		return
	}

	saved, err := h.sessions.SaveSettings(r.Context(), sessionIDFromContext(r.Context()), settings)
	if err != nil {
		h.serviceError(w, err, "Failed to save settings")
		return
	}
	h.jsonResponse(w, http.StatusOK, saved)
}

// GetUIState returns the stored browse state
// @Summary Get Browse State
// @Tags Session
// @Produce json
// @Success 200 {object} models.UIState
// @Router /me/state [get]
func (h *Handler) GetUIState(w http.ResponseWriter, r *http.Request) {
	ui, err := h.sessions.UIState(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		h.serviceError(w, err, "Failed to load browse state")
		return
	}
	h.jsonResponse(w, http.StatusOK, ui)
}

// PutUIState replaces the browse state
// @Summary Save Browse State
// @Tags Session
// @Accept json
// @Produce json
// @Param body body models.UIState true "Browse state"
// @Success 200 {object} models.UIState
// @Failure 400 {object} map[string]string
// @Router /me/state [put]
func (h *Handler) PutUIState(w http.ResponseWriter, r *http.Request) {
	var ui models.UIState
	if !h.decodeJSON(w, r, &ui) {
		return
	}

	saved, err := h.sessions.SaveUIState(r.Context(), sessionIDFromContext(r.Context()), ui)
	if err != nil {
		h.serviceError(w, err, "Failed to save browse state")
		return
	}
	h.jsonResponse(w, http.StatusOK, saved)
}

// ApplyUIAction applies one browse interaction (toggle a filter, change sort, ...)
// @Summary Apply Browse Action
// @Tags Session
// @Accept json
// @Produce json
// @Param body body state.Action true "Action"
// @Success 200 {object} models.UIState
// @Failure 400 {object} map[string]string
// @Router /me/state/actions [post]
func (h *Handler) ApplyUIAction(w http.ResponseWriter, r *http.Request) {
	var action state.Action
	if !h.decodeJSON(w, r, &action) {
		return
	}

	ui, err := h.sessions.ApplyAction(r.Context(), sessionIDFromContext(r.Context()), action)
	if err != nil {
		h.serviceError(w, err, "Failed to apply browse action")
		return
	}
	h.jsonResponse(w, http.StatusOK, ui)
}
