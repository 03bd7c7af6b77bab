package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fairwaylabs/formats-api/internal/demo"
	"github.com/fairwaylabs/formats-api/internal/logic"
)

// demoResponse is a demo sequence with the step delay clients should play it at
type demoResponse struct {
	*demo.Sequence
	StepDelayMS int64 `json:"step_delay_ms"`
}

// ListFormats searches, filters and sorts the catalog
// @Summary List Formats
// @Description Returns the formats matching the query and filters, with faceted counts per filter option
// @Tags Formats
// @Produce json
// @Param q query string false "Search text"
// @Param category query string false "Comma separated categories"
// @Param skillLevel query string false "Comma separated skill levels"
// @Param type query string false "Comma separated competition types"
// @Param players query string false "Comma separated player buckets (solo, pair, small, large)"
// @Param difficulty query string false "Comma separated difficulty buckets (1-4)"
// @Param duration query string false "Comma separated duration buckets (quick, standard, long)"
// @Param sort query string false "name, popularity, difficulty, players-min or players-max"
// @Success 200 {object} models.FormatListResponse
// @Failure 500 {object} map[string]string
// @Router /formats [get]
func (h *Handler) ListFormats(w http.ResponseWriter, r *http.Request) {
	ui := logic.ParseBrowseQuery(r.URL.Query())

	resp, err := h.formats.List(r.Context(), ui)
	if err != nil {
		h.serviceError(w, err, "Failed to list formats")
		return
	}

	if ui.Query != "" {
		searchesTotal.Inc()
		if resp.Matched == 0 {
			zeroResultSearches.Inc()
		}
	}

	h.jsonResponse(w, http.StatusOK, resp)
}

// GetFormat returns one format and records it as recently viewed
// @Summary Get Format
// @Tags Formats
// @Produce json
// @Param id path string true "Format ID"
// @Success 200 {object} models.Format
// @Failure 404 {object} map[string]string
// @Router /formats/{id} [get]
func (h *Handler) GetFormat(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	format, err := h.formats.Get(r.Context(), id)
	if err != nil {
		h.serviceError(w, err, "Failed to get format")
		return
	}

	if _, err := h.sessions.RecordView(r.Context(), sessionIDFromContext(r.Context()), id); err != nil {
		h.logger.Warnw("Failed to record recently viewed format", "format", id, "error", err)
	}

	h.jsonResponse(w, http.StatusOK, format)
}

// CompareFormats places 2 to 4 formats side by side
// @Summary Compare Formats
// @Tags Formats
// @Produce json
// @Param ids query string true "Comma separated format IDs"
// @Success 200 {object} models.CompareResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /formats/compare [get]
func (h *Handler) CompareFormats(w http.ResponseWriter, r *http.Request) {
	var ids []string
	for _, raw := range r.URL.Query()["ids"] {
		ids = append(ids, strings.Split(raw, ",")...)
	}

	result, err := h.formats.Compare(r.Context(), ids)
	if err != nil {
		h.serviceError(w, err, "Failed to compare formats")
		return
	}
	h.jsonResponse(w, http.StatusOK, result)
}

// GetDemo returns the step by step explainer of a format
// @Summary Get Format Demo
// @Tags Formats
// @Produce json
// @Param id path string true "Format ID"
// @Success 200 {object} demoResponse
// @Failure 404 {object} map[string]string
// @Router /formats/{id}/demo [get]
func (h *Handler) GetDemo(w http.ResponseWriter, r *http.Request) {
	seq, err := h.formats.Demo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, err, "Failed to get demo")
		return
	}
	h.jsonResponse(w, http.StatusOK, demoResponse{Sequence: seq, StepDelayMS: h.demoStepDelay.Milliseconds()})
}

// GetSuggestions returns type-ahead suggestions. Clients debounce their calls.
// @Summary Search Suggestions
// @Tags Formats
// @Produce json
// @Param q query string true "Partial search text"
// @Success 200 {object} map[string]interface{}
// @Router /suggestions [get]
func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"query":       query,
		"suggestions": h.formats.Suggest(r.Context(), query),
		"debounce_ms": h.suggestDelay.Milliseconds(),
	})
}
