package checkout

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/minimartx/storefront/internal/domain"
	"github.com/minimartx/storefront/internal/session"
)

type Handler struct {
	manager *Manager
	logger  *slog.Logger
}

func NewHandler(manager *Manager, logger *slog.Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

type stateResponse struct {
	State State `json:"state"`
}

func (h *Handler) HandleBegin(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	state := h.manager.Begin(r.Context(), sid)

	h.logger.Info("checkout started", "session_id", sid)
	h.writeJSON(w, http.StatusCreated, stateResponse{State: state})
}

func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())
	h.writeJSON(w, http.StatusOK, stateResponse{State: h.manager.State(r.Context(), sid)})
}

func (h *Handler) HandleConfirmAddress(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	state, err := h.manager.ConfirmAddress(r.Context(), sid)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to confirm address", "error", err, "session_id", sid)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, stateResponse{State: state})
}

func (h *Handler) HandleSubmitPayment(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	var payment domain.PaymentDetails
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.manager.SubmitPayment(r.Context(), sid, payment)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to place order", "error", err, "session_id", sid)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, order)
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
