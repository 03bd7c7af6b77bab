package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fairwaylabs/formats-api/internal/models"
)

type contextKey string

const sessionIDKey contextKey = "session_id"

// SessionHeader carries the session id in both directions
const SessionHeader = "X-Session-ID"

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]bool{
		"store": h.store.Ping(ctx) == nil,
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	})
}

// SessionMiddleware reads the session id from the X-Session-ID header, issuing a new
// one when it is missing or not a uuid, and echoes it back on the response
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.New().String()
		}
		w.Header().Set(SessionHeader, sessionID)

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionIDFromContext returns the session id set by SessionMiddleware
func sessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}

// decodeJSON reads a size-limited JSON body into target and validates it.
// On failure it writes the error response and returns false.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validator.Struct(target); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

// serviceError maps domain errors to status codes. Anything unrecognised is logged
// and reported as a 500 with msg.
func (h *Handler) serviceError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, models.ErrFormatNotFound),
		errors.Is(err, models.ErrDemoNotFound),
		errors.Is(err, models.ErrScorecardNotFound),
		errors.Is(err, models.ErrPlayerNotFound):
		h.errorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrRosterFull), errors.Is(err, models.ErrRosterMinimum):
		h.errorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrInvalidHole), errors.Is(err, models.ErrCompareSize):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Errorw(msg, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, msg)
	}
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}
