package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/minimartx/storefront/internal/domain"
	"github.com/minimartx/storefront/internal/session"
)

type Handler struct {
	sessions *Sessions
	logger   *slog.Logger
}

func NewHandler(sessions *Sessions, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	var profile domain.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.sessions.Signup(r.Context(), sid, profile); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("signup failed", "error", err, "session_id", sid)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("user registered", "session_id", sid)
	h.writeJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

type loginRequest struct {
	Email string `json:"email"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.sessions.Login(r.Context(), sid, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrMismatch):
			h.writeError(w, http.StatusUnauthorized, err.Error())
		default:
			h.logger.Error("login failed", "error", err, "session_id", sid)
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.logger.Info("user logged in", "session_id", sid)
	h.writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	if err := h.sessions.Logout(r.Context(), sid); err != nil {
		h.logger.Error("logout failed", "error", err, "session_id", sid)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())

	profile, err := h.sessions.Current(r.Context(), sid)
	if err != nil {
		h.logger.Error("failed to load session", "error", err, "session_id", sid)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if profile == nil {
		h.writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	h.writeJSON(w, http.StatusOK, profile)
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
