package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// POST /v1/cart/items JSON {"product_id" string, "qty" int} (204 No content, 404 Not found)
// PATCH /v1/cart/items/{id} JSON {"qty" int} (204 No content)
// DELETE /v1/cart/items/{id} (204 No content)
// DELETE /v1/cart (204 No content)
// POST /v1/checkout (204 No content, 409 Conflict on empty cart)

type CartHandler struct {
	cart    port.CartOperator
	catalog port.CatalogViewer
}

func RegisterCart(
	mux *http.ServeMux, cart port.CartOperator, catalog port.CatalogViewer,
) {
	h := CartHandler{cart, catalog}
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items/{id}", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var req CartAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	p, ok := h.catalog.FindProduct(req.ProductID)
	if !ok {
		http.Error(w, "unknown product", http.StatusNotFound)
		return
	}

	qty := req.Qty
	if qty < 1 {
		qty = 1
	}
	h.cart.Add(r.Context(), p, qty)
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	var req CartQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	// Missing keys are a silent no-op on the store side.
	h.cart.SetQuantity(r.Context(), r.PathValue("id"), req.Qty)
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	h.cart.Remove(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostCheckout"
	log := slog.With("op", op)

	if err := h.cart.Checkout(r.Context()); err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			http.Error(w, "cart is empty", http.StatusConflict)
			return
		}
		http.Error(w, "checkout failed", http.StatusInternalServerError)
		log.Error("checkout failed", "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
