package httphandler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/niksmo/visionframe/internal/core/port"
	"github.com/niksmo/visionframe/internal/core/query"
)

// GET v1/products?category=&type=&filter=&brand=&shape=&material=&price_range= (200 OK, 400 Bad request)
// GET v1/products/{id} (200 OK, 404 Not found)
// GET v1/products/{id}/popularity (200 OK, 404 Not found, 503 Service unavailable)

// legacyAllLabels are the "match all" labels older clients send.
var legacyAllLabels = map[string]struct{}{
	"All Brands":    {},
	"All Shapes":    {},
	"All Materials": {},
	"All Prices":    {},
}

type ProductsHandler struct {
	pReader port.ProductReader
}

func RegisterProducts(mux *http.ServeMux, pReader port.ProductReader) {
	h := ProductsHandler{pReader}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/products/{id}/popularity", h.GetPopularity)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	fs, err := parseFilterState(r.URL.Query())
	if err != nil {
		writeError(w, err, log)
		return
	}

	ps := h.pReader.Products(fs)
	res := ProductList{Products: toProducts(ps), Empty: len(ps) == 0}
	if res.Empty {
		res.Message = query.NoFilterResultsMessage
	}
	writeJSON(w, http.StatusOK, res, log)
}

// parseFilterState reads the filter state from query values.
//
// The type and filter deep-link parameters select the category
// when category itself is absent.
func parseFilterState(q url.Values) (domain.FilterState, error) {
	category := q.Get("category")
	if category == "" {
		switch {
		case q.Get("type") != "":
			category = q.Get("type")
		case q.Get("filter") != "":
			category = q.Get("filter")
		}
	}

	c, err := domain.ParseCategory(category)
	if err != nil {
		return domain.FilterState{}, err
	}

	fs := domain.NewFilterState()
	fs.Category = c
	fs.Brand = optional(q.Get("brand"))
	fs.FrameShape = optional(q.Get("shape"))
	fs.FrameMaterial = optional(q.Get("material"))
	fs.PriceRange = domain.PriceRange(optional(q.Get("price_range")))
	return fs, nil
}

func optional(v string) string {
	if _, ok := legacyAllLabels[v]; ok {
		return ""
	}
	return v
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op)

	p, err := h.pReader.Product(r.PathValue("id"))
	if err != nil {
		writeError(w, err, log)
		return
	}
	writeJSON(w, http.StatusOK, toProduct(p), log)
}

func (h ProductsHandler) GetPopularity(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetPopularity"
	log := slog.With("op", op)

	id := r.PathValue("id")
	n, err := h.pReader.Popularity(r.Context(), id)
	if err != nil {
		writeError(w, err, log)
		return
	}
	writeJSON(w, http.StatusOK, Popularity{ProductID: id, Favorites: n}, log)
}
