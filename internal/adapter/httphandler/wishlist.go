package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/port"
)

// POST /v1/wishlist/items JSON {"product_id" string} toggles presence (204 No content, 404 Not found)
// DELETE /v1/wishlist/items/{id} (204 No content)
// POST /v1/wishlist/items/{id}/move (204 No content)

type WishlistHandler struct {
	wishlist port.WishlistOperator
	catalog  port.CatalogViewer
}

func RegisterWishlist(
	mux *http.ServeMux,
	wishlist port.WishlistOperator,
	catalog port.CatalogViewer,
) {
	h := WishlistHandler{wishlist, catalog}
	mux.HandleFunc("POST /v1/wishlist/items", h.PostToggle)
	mux.HandleFunc("DELETE /v1/wishlist/items/{id}", h.DeleteItem)
	mux.HandleFunc("POST /v1/wishlist/items/{id}/move", h.PostMove)
}

func (h WishlistHandler) PostToggle(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.PostToggle"
	log := slog.With("op", op)

	var req WishlistToggleRequest
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

	h.wishlist.Toggle(r.Context(), p)
	w.WriteHeader(http.StatusNoContent)
}

func (h WishlistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	h.wishlist.Remove(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h WishlistHandler) PostMove(w http.ResponseWriter, r *http.Request) {
	h.wishlist.MoveToCart(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}
