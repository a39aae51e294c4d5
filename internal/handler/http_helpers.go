package handler

import (
	"encoding/json"
	"net/http"

	apperrors "sebbi-server/pkg/errors"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error body with the message as user-visible detail.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"detail": message})
}

// writeServiceError maps a tagged service error to its HTTP status.
func writeServiceError(w http.ResponseWriter, err error) {
	writeError(w, apperrors.StatusCode(err), apperrors.Message(err))
}
