package address

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/minimartx/storefront/internal/domain"
	"github.com/minimartx/storefront/internal/session"
)

type Handler struct {
	book   *Book
	logger *slog.Logger
}

func NewHandler(book *Book, logger *slog.Logger) *Handler {
	return &Handler{
		book:   book,
		logger: logger,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	state, err := h.book.Get(r.Context(), sid)
	if err != nil {
		h.logger.Error("failed to load addresses", "error", err, "session_id", sid)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, state)
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	var addr domain.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.book.Add(r.Context(), sid, addr)
	if err != nil {
		h.respondDomainError(w, err, sid)
		return
	}

	h.logger.Info("address saved", "session_id", sid, "count", len(state.Addresses))
	h.writeJSON(w, http.StatusCreated, state)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid address index")
		return
	}

	state, err := h.book.Delete(r.Context(), sid, index)
	if err != nil {
		h.respondDomainError(w, err, sid)
		return
	}

	h.logger.Info("address deleted", "session_id", sid, "index", index)
	h.writeJSON(w, http.StatusOK, state)
}

func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid address index")
		return
	}

	state, err := h.book.Select(r.Context(), sid, index)
	if err != nil {
		h.respondDomainError(w, err, sid)
		return
	}

	h.writeJSON(w, http.StatusOK, state)
}

func (h *Handler) respondDomainError(w http.ResponseWriter, err error, sid string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		h.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("address operation failed", "error", err, "session_id", sid)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
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
