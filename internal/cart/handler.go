package cart

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/minimartx/storefront/internal/domain"
	"github.com/minimartx/storefront/internal/session"
)

type Handler struct {
	carts  *Store
	logger *slog.Logger
}

func NewHandler(carts *Store, logger *slog.Logger) *Handler {
	return &Handler{
		carts:  carts,
		logger: logger,
	}
}

type cartResponse struct {
	Items domain.Cart `json:"items"`
	Total float64     `json:"total"`
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	cart, err := h.carts.Get(r.Context(), sid)
	if err != nil {
		h.logger.Error("failed to load cart", "error", err, "session_id", sid)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, cartResponse{Items: cart, Total: cart.Total()})
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	var product domain.ProductSnapshot
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if product.ID <= 0 {
		h.writeError(w, http.StatusBadRequest, "product id must be positive")
		return
	}

	cart, err := h.carts.Add(r.Context(), sid, product)
	if err != nil {
		h.logger.Error("failed to add to cart", "error", err, "session_id", sid, "product_id", product.ID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("product added to cart", "session_id", sid, "product_id", product.ID)
	h.writeJSON(w, http.StatusCreated, cartResponse{Items: cart, Total: cart.Total()})
}

func (h *Handler) HandleDecrease(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	productID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	cart, err := h.carts.Decrease(r.Context(), sid, productID)
	if err != nil {
		h.logger.Error("failed to decrease quantity", "error", err, "session_id", sid, "product_id", productID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, cartResponse{Items: cart, Total: cart.Total()})
}

func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	productID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	cart, err := h.carts.Remove(r.Context(), sid, productID)
	if err != nil {
		h.logger.Error("failed to remove from cart", "error", err, "session_id", sid, "product_id", productID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, cartResponse{Items: cart, Total: cart.Total()})
}

func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	if err := h.carts.Clear(r.Context(), sid); err != nil {
		h.logger.Error("failed to clear cart", "error", err, "session_id", sid)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("cart cleared", "session_id", sid)
	h.writeJSON(w, http.StatusOK, cartResponse{Items: domain.Cart{}, Total: 0})
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
