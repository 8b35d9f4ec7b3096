// internal/handlers/response.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ammerola/parts-be/internal/core/domain"
)

const maxJSONBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func respondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"error": message})
}

// respondDetail writes the {"detail": ...} shape used by the upload and
// auth boundaries.
func respondDetail(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"detail": message})
}

// respondServiceError maps domain errors onto HTTP status codes.
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, action string) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(w, logger, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, domain.ErrValidation):
		respondError(w, logger, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrPartNotFound):
		respondError(w, logger, http.StatusNotFound, "Part not found")
	default:
		logger.ErrorContext(r.Context(), "failed to "+action,
			slog.String("error", err.Error()))
		respondError(w, logger, http.StatusInternalServerError, "Failed to "+action)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
