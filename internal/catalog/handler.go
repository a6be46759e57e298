package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/minimartx/storefront/internal/domain"
	"github.com/minimartx/storefront/internal/session"
	"github.com/minimartx/storefront/internal/storage"
)

const defaultListLimit = 100

type Handler struct {
	client *Client
	store  storage.Store
	logger *slog.Logger
}

func NewHandler(client *Client, store storage.Store, logger *slog.Logger) *Handler {
	return &Handler{
		client: client,
		store:  store,
		logger: logger,
	}
}

type listProductsResponse struct {
	Products   []domain.ProductSnapshot `json:"products"`
	Categories []string                 `json:"categories"`
	Category   string                   `json:"category"`
	Sort       string                   `json:"sort"`
}

// HandleList serves the browse view: fetch, filter, sort. A catalog fetch
// failure is logged and answered with an empty list; the client sees the
// same loading/empty state the next manual reload would clear.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	category := h.preference(r, storage.KeyActiveCategory, "category", CategoryAll)
	sortOption := h.preference(r, storage.KeySortOption, "sort", SortDefault)
	search := r.URL.Query().Get("search")

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	products, err := h.client.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to fetch products", "error", err, "session_id", sid)
		h.writeJSON(w, http.StatusOK, listProductsResponse{
			Products:   []domain.ProductSnapshot{},
			Categories: []string{CategoryAll},
			Category:   category,
			Sort:       sortOption,
		})
		return
	}

	filtered := Sort(Filter(products, search, category), sortOption)

	h.logger.Info("products listed", "count", len(filtered), "category", category, "sort", sortOption)
	h.writeJSON(w, http.StatusOK, listProductsResponse{
		Products:   filtered,
		Categories: Categories(products),
		Category:   category,
		Sort:       sortOption,
	})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.client.Get(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to fetch product", "error", err, "product_id", id)
		h.writeError(w, http.StatusBadGateway, "catalog unavailable")
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

// preference resolves a browse preference: an explicit query parameter wins
// and is persisted for the session; otherwise the stored value applies.
func (h *Handler) preference(r *http.Request, storageKey, param, fallback string) string {
	sid := session.FromContext(r.Context())
	key := storage.SessionKey(sid, storageKey)

	if value := r.URL.Query().Get(param); value != "" {
		if err := h.store.Put(r.Context(), key, []byte(value)); err != nil {
			h.logger.Error("failed to persist preference", "error", err, "key", storageKey)
		}
		return value
	}

	return h.storedPreference(r.Context(), key, fallback)
}

func (h *Handler) storedPreference(ctx context.Context, key, fallback string) string {
	value, err := h.store.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return fallback
	}
	if err != nil {
		h.logger.Error("failed to load preference", "error", err, "key", key)
		return fallback
	}
	return string(value)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
