package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fairwaylabs/formats-api/internal/models"
	"github.com/fairwaylabs/formats-api/internal/scorecard"
)

func (h *Handler) scorecardResponse(w http.ResponseWriter, status int, card *scorecard.Card) {
	h.jsonResponse(w, status, card.Summarize())
}

// CreateScorecard starts an 18 hole card with two default players
// @Summary Create Scorecard
// @Tags Scorecards
// @Produce json
// @Param format query string false "Format ID to preselect"
// @Success 201 {object} scorecard.Summary
// @Router /scorecards [post]
func (h *Handler) CreateScorecard(w http.ResponseWriter, r *http.Request) {
	card, err := h.scorecards.Create(r.Context(), r.URL.Query().Get("format"))
	if err != nil {
		h.serviceError(w, err, "Failed to create scorecard")
		return
	}
	scorecardsCreated.Inc()
	h.scorecardResponse(w, http.StatusCreated, card)
}

// GetScorecard returns a card with totals
// @Summary Get Scorecard
// @Tags Scorecards
// @Produce json
// @Param id path string true "Scorecard ID"
// @Success 200 {object} scorecard.Summary
// @Failure 404 {object} map[string]string
// @Router /scorecards/{id} [get]
func (h *Handler) GetScorecard(w http.ResponseWriter, r *http.Request) {
	card, err := h.scorecards.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, err, "Failed to get scorecard")
		return
	}
	h.scorecardResponse(w, http.StatusOK, card)
}

// DeleteScorecard discards a card
// @Summary Delete Scorecard
// @Tags Scorecards
// @Param id path string true "Scorecard ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /scorecards/{id} [delete]
func (h *Handler) DeleteScorecard(w http.ResponseWriter, r *http.Request) {
	if err := h.scorecards.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.serviceError(w, err, "Failed to delete scorecard")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetScorecard zeroes every stroke and keeps the roster
// @Summary Reset Scorecard
// @Tags Scorecards
// @Produce json
// @Param id path string true "Scorecard ID"
// @Success 200 {object} scorecard.Summary
// @Failure 404 {object} map[string]string
// @Router /scorecards/{id}/reset [post]
func (h *Handler) ResetScorecard(w http.ResponseWriter, r *http.Request) {
	card, err := h.scorecards.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, err, "Failed to reset scorecard")
		return
	}
	h.scorecardResponse(w, http.StatusOK, card)
}

// AddScorecardPlayer adds a player to the roster
// @Summary Add Player
// @Tags Scorecards
// @Accept json
// @Produce json
// @Param id path string true "Scorecard ID"
// @Param body body models.AddPlayerRequest true "Player"
// @Success 200 {object} scorecard.Summary
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Roster full"
// @Router /scorecards/{id}/players [post]
func (h *Handler) AddScorecardPlayer(w http.ResponseWriter, r *http.Request) {
	var req models.AddPlayerRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	card, err := h.scorecards.AddPlayer(r.Context(), chi.URLParam(r, "id"), req.Name, req.Handicap)
	if err != nil {
		h.serviceError(w, err, "Failed to add player")
		return
	}
	h.scorecardResponse(w, http.StatusOK, card)
}

// UpdateScorecardPlayer renames a player or changes their handicap
// @Summary Update Player
// @Tags Scorecards
// @Accept json
// @Produce json
// @Param id path string true "Scorecard ID"
// @Param playerID path string true "Player ID"
// @Param body body models.UpdatePlayerRequest true "Changes"
// @Success 200 {object} scorecard.Summary
// @Failure 404 {object} map[string]string
// @Router /scorecards/{id}/players/{playerID} [patch]
func (h *Handler) UpdateScorecardPlayer(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePlayerRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	card, err := h.scorecards.UpdatePlayer(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "playerID"), req.Name, req.Handicap)
	if err != nil {
		h.serviceError(w, err, "Failed to update player")
		return
	}
	h.scorecardResponse(w, http.StatusOK, card)
}

// RemoveScorecardPlayer drops a player and their strokes
// @Summary Remove Player
// @Tags Scorecards
// @Produce json
// @Param id path string true "Scorecard ID"
// @Param playerID path string true "Player ID"
// @Success 200 {object} scorecard.Summary
// @Failure 409 {object} map[string]string "Roster at minimum"
// @Router /scorecards/{id}/players/{playerID} [delete]
func (h *Handler) RemoveScorecardPlayer(w http.ResponseWriter, r *http.Request) {
	card, err := h.scorecards.RemovePlayer(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "playerID"))
	if err != nil {
		h.serviceError(w, err, "Failed to remove player")
		return
	}
	h.scorecardResponse(w, http.StatusOK, card)
}

// SetScorecardStrokes records a player's strokes on one hole, clamped to 0-20
// @Summary Set Strokes
// @Tags Scorecards
// @Accept json
// @Produce json
// @Param id path string true "Scorecard ID"
// @Param hole path int true "Hole number (1-18)"
// @Param playerID path string true "Player ID"
// @Param body body models.SetStrokesRequest true "Strokes"
// @Success 200 {object} scorecard.Summary
// @Failure 400 {object} map[string]string
// @Router /scorecards/{id}/holes/{hole}/players/{playerID} [put]
func (h *Handler) SetScorecardStrokes(w http.ResponseWriter, r *http.Request) {
	hole, err := strconv.Atoi(chi.URLParam(r, "hole"))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid hole number")
		return
	}

	var req models.SetStrokesRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	card, err := h.scorecards.SetStrokes(r.Context(), chi.URLParam(r, "id"), hole, chi.URLParam(r, "playerID"), req.Strokes)
	if err != nil {
		h.serviceError(w, err, "Failed to set strokes")
		return
	}
	h.scorecardResponse(w, http.StatusOK, card)
}
