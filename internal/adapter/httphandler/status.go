package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/port"
)

// GET /v1/storefront/badges (200 OK, JSON {"cart" int, "wishlist" int})
// GET /v1/notices (200 OK, JSON array)

type StatusHandler struct {
	cart     port.CartOperator
	wishlist port.WishlistOperator
	notices  port.NoticeReader
}

func RegisterStatus(
	mux *http.ServeMux,
	cart port.CartOperator,
	wishlist port.WishlistOperator,
	notices port.NoticeReader,
) {
	h := StatusHandler{cart, wishlist, notices}
	mux.HandleFunc("GET /v1/storefront/badges", h.GetBadges)
	mux.HandleFunc("GET /v1/notices", h.GetNotices)
}

func (h StatusHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, Badges{Cart: h.cart.Count(), Wishlist: h.wishlist.Count()})
}

func (h StatusHandler) GetNotices(w http.ResponseWriter, r *http.Request) {
	ns := h.notices.Active()
	res := make([]Notice, 0, len(ns))
	for _, n := range ns {
		res = append(res, Notice{ID: n.ID, Kind: string(n.Kind), Text: n.Text})
	}
	writeJSON(w, res)
}

func writeJSON(w http.ResponseWriter, v any) {
	const op = "writeJSON"

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
