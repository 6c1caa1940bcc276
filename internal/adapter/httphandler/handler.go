package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/visionframe/internal/core/domain"
)

const (
	favoriteNotSavedWarning = "Favorite was changed but could not be saved"
	historyNotSavedWarning  = "Search history could not be saved"
)

func writeJSON(w http.ResponseWriter, status int, v any, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeError maps domain errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error, log *slog.Logger) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCartItemNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		log.Info("not found", "err", err)
	case errors.Is(err, domain.ErrEmptyQuery),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidColor):
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Info("bad request", "err", err)
	case errors.Is(err, domain.ErrUnavailable):
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		log.Warn("unavailable", "err", err)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
		log.Error("unexpected error", "err", err)
	}
}
