package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/auth-gateway/internal/models"
)

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service errors to HTTP responses. Unrecognized
// errors are logged in full and answered with the generic fallback message so
// internal detail never reaches the client.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrMissingFields), errors.Is(err, models.ErrUserExists):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		h.writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrUserNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Errorf("%s: %v", fallback, err)
		h.writeError(w, http.StatusInternalServerError, fallback)
	}
}
