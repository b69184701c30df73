package http

import (
	"encoding/json"
	"net/http"

	"github.com/fjod/wavewonders/internal/logger"
)

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).WithError(err).Error("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, r, status, MessageResponse{Success: false, Message: message})
}

// decodeJSON decodes the request body into dst and validates its tags.
// A false return means the response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.FromContext(r.Context()).WithError(err).Debug("invalid request body")
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
