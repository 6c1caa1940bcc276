package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/niksmo/visionframe/internal/core/port"
)

// GET v1/favorites (200 OK)
// GET v1/favorites/{id} (200 OK)
// POST v1/favorites/{id}/toggle (200 OK, 404 Not found)

type FavoritesHandler struct {
	favorites port.FavoritesManager
}

func RegisterFavorites(mux *http.ServeMux, favorites port.FavoritesManager) {
	h := FavoritesHandler{favorites}
	mux.HandleFunc("GET /v1/favorites", h.GetFavorites)
	mux.HandleFunc("GET /v1/favorites/{id}", h.GetStatus)
	mux.HandleFunc("POST /v1/favorites/{id}/toggle", h.PostToggle)
}

func (h FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	const op = "FavoritesHandler.GetFavorites"
	log := slog.With("op", op)

	ps, loaded := h.favorites.FavoriteProducts()
	res := FavoriteList{
		Loaded:   loaded,
		Products: toProducts(ps),
		Empty:    loaded && len(ps) == 0,
	}
	writeJSON(w, http.StatusOK, res, log)
}

func (h FavoritesHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	const op = "FavoritesHandler.GetStatus"
	log := slog.With("op", op)

	id := r.PathValue("id")
	status := h.favorites.FavoriteStatus(id)
	res := FavoriteStatus{
		ProductID:  id,
		Status:     status.String(),
		IsFavorite: status == domain.FavoriteYes,
	}
	writeJSON(w, http.StatusOK, res, log)
}

// PostToggle flips the favorite. A failed write still answers 200
// with the new in-memory state and a warning.
func (h FavoritesHandler) PostToggle(w http.ResponseWriter, r *http.Request) {
	const op = "FavoritesHandler.PostToggle"
	log := slog.With("op", op)

	id := r.PathValue("id")
	isFavorite, err := h.favorites.ToggleFavorite(r.Context(), id)
	res := FavoriteToggle{ProductID: id, IsFavorite: isFavorite, Persisted: true}
	if err != nil {
		if !errors.Is(err, domain.ErrPersistenceWrite) {
			writeError(w, err, log)
			return
		}
		res.Persisted = false
		res.Warning = favoriteNotSavedWarning
		log.Warn("favorite is not persisted", "productID", id, "err", err)
	}
	writeJSON(w, http.StatusOK, res, log)
}
