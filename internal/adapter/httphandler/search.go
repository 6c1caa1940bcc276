package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/niksmo/visionframe/internal/core/port"
	"github.com/niksmo/visionframe/internal/core/query"
)

// GET v1/search?q= (200 OK)
// GET v1/search/history (200 OK)
// POST v1/search/history JSON {"query": string} (200 OK, 400 Bad request)
// DELETE v1/search/history (200 OK)

type SearchHandler struct {
	searcher port.ProductSearcher
}

func RegisterSearch(mux *http.ServeMux, searcher port.ProductSearcher) {
	h := SearchHandler{searcher}
	mux.HandleFunc("GET /v1/search", h.GetSearch)
	mux.HandleFunc("GET /v1/search/history", h.GetHistory)
	mux.HandleFunc("POST /v1/search/history", h.PostHistory)
	mux.HandleFunc("DELETE /v1/search/history", h.DeleteHistory)
}

// GetSearch returns the live results of q without recording it.
// An empty q returns the history instead of results.
func (h SearchHandler) GetSearch(w http.ResponseWriter, r *http.Request) {
	const op = "SearchHandler.GetSearch"
	log := slog.With("op", op)

	q := r.URL.Query().Get("q")
	res := SearchResult{Query: q, Products: []Product{}}

	if query.NormalizeQuery(q) == "" {
		res.ShowHistory = true
		res.History = h.searcher.SearchHistory()
		writeJSON(w, http.StatusOK, res, log)
		return
	}

	ps := h.searcher.Search(q)
	res.Products = toProducts(ps)
	res.Empty = len(ps) == 0
	if res.Empty {
		res.Message = query.NoSearchResultsMessage
	}
	writeJSON(w, http.StatusOK, res, log)
}

func (h SearchHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	const op = "SearchHandler.GetHistory"
	log := slog.With("op", op)

	res := SearchHistory{History: h.searcher.SearchHistory(), Persisted: true}
	writeJSON(w, http.StatusOK, res, log)
}

// PostHistory accepts a submitted query. A failed write still
// answers 200 with the in-memory history and a warning.
func (h SearchHandler) PostHistory(w http.ResponseWriter, r *http.Request) {
	const op = "SearchHandler.PostHistory"
	log := slog.With("op", op)

	var req SubmitSearch
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	history, err := h.searcher.SubmitSearch(r.Context(), req.Query)
	res := SearchHistory{History: history, Persisted: true}
	if err != nil {
		if !errors.Is(err, domain.ErrPersistenceWrite) {
			writeError(w, err, log)
			return
		}
		res.Persisted = false
		res.Warning = historyNotSavedWarning
		log.Warn("search history is not persisted", "err", err)
	}
	writeJSON(w, http.StatusOK, res, log)
}

func (h SearchHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	const op = "SearchHandler.DeleteHistory"
	log := slog.With("op", op)

	res := SearchHistory{History: []string{}, Persisted: true}
	if err := h.searcher.ClearSearchHistory(r.Context()); err != nil {
		if !errors.Is(err, domain.ErrPersistenceWrite) {
			writeError(w, err, log)
			return
		}
		res.Persisted = false
		res.Warning = historyNotSavedWarning
		log.Warn("search history is not persisted", "err", err)
	}
	writeJSON(w, http.StatusOK, res, log)
}
