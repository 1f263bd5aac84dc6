package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mind-engage/howacademia/internal/datastore"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps datastore errors onto status codes.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, datastore.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, datastore.ErrInvalidArgument), errors.Is(err, datastore.ErrInvalidRole):
		status = http.StatusBadRequest
	case errors.Is(err, datastore.ErrCapacityReached), errors.Is(err, datastore.ErrDuplicateSubmission):
		status = http.StatusConflict
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	respondJSON(w, status, map[string]string{"error": msg})
}

func notFound(w http.ResponseWriter, what string) {
	respondJSON(w, http.StatusNotFound, map[string]string{"error": what + " not found"})
}
