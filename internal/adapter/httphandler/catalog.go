package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// POST /v1/search JSON {"query" string, "immediate" bool} (202 Accepted, 200 OK when immediate)
// POST /v1/filter JSON {"category" string, "sort" string} (200 OK, 400 Bad request)
// POST /v1/catalog/reload (200 OK, 502 Bad gateway)

type CatalogHandler struct {
	catalog port.CatalogViewer
}

func RegisterCatalog(mux *http.ServeMux, catalog port.CatalogViewer) {
	h := CatalogHandler{catalog}
	mux.HandleFunc("POST /v1/search", h.PostSearch)
	mux.HandleFunc("POST /v1/filter", h.PostFilter)
	mux.HandleFunc("POST /v1/catalog/reload", h.PostReload)
}

// PostSearch updates the search text. The regular path is debounced:
// the recompute fires after a quiet period, so the response is 202.
func (h CatalogHandler) PostSearch(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PostSearch"
	log := slog.With("op", op)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if req.Immediate {
		h.catalog.SetQueryNow(req.Query)
		w.WriteHeader(http.StatusOK)
		return
	}
	h.catalog.SetQuery(req.Query)
	w.WriteHeader(http.StatusAccepted)
}

func (h CatalogHandler) PostFilter(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PostFilter"
	log := slog.With("op", op)

	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if req.Sort != nil {
		mode, err := domain.ParseSortMode(*req.Sort)
		if err != nil {
			http.Error(w, "invalid sort mode", http.StatusBadRequest)
			log.Warn("invalid sort mode", "sort", *req.Sort)
			return
		}
		h.catalog.SetSort(mode)
	}
	if req.Category != nil {
		h.catalog.SetCategory(*req.Category)
	}
	w.WriteHeader(http.StatusOK)
}

func (h CatalogHandler) PostReload(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PostReload"
	log := slog.With("op", op)

	if err := h.catalog.Load(r.Context()); err != nil {
		http.Error(w, "failed to load catalog", http.StatusBadGateway)
		log.Error("catalog load failed", "err", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
