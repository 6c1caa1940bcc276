package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/visionframe/internal/core/port"
)

// GET v1/cart (200 OK)
// POST v1/cart/items JSON {"product_id", "color", "quantity"} (200 OK, 400 Bad request, 404 Not found)
// PATCH v1/cart/items/{id} JSON {"color", "delta"} (200 OK, 404 Not found)
// DELETE v1/cart/items/{id}?color= (200 OK, 404 Not found)

type CartHandler struct {
	cart port.CartManager
}

func RegisterCart(mux *http.ServeMux, cart port.CartManager) {
	h := CartHandler{cart}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items/{id}", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	writeJSON(w, http.StatusOK, toCart(h.cart.Cart()), log)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	req := AddCartItem{Quantity: 1}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	s, err := h.cart.AddToCart(req.ProductID, req.Color, req.Quantity)
	if err != nil {
		writeError(w, err, log)
		return
	}
	writeJSON(w, http.StatusOK, toCart(s), log)
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	var req UpdateCartItem
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	s, err := h.cart.UpdateCartQuantity(r.PathValue("id"), req.Color, req.Delta)
	if err != nil {
		writeError(w, err, log)
		return
	}
	writeJSON(w, http.StatusOK, toCart(s), log)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	color := r.URL.Query().Get("color")
	s, err := h.cart.RemoveFromCart(r.PathValue("id"), color)
	if err != nil {
		writeError(w, err, log)
		return
	}
	writeJSON(w, http.StatusOK, toCart(s), log)
}
