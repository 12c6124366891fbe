package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ZerubabelSemu/dotdesign/internal/messages"
	"github.com/go-chi/chi/v5"
)

type ContactHandler struct {
	repo *messages.Repository
}

func NewContactHandler(repo *messages.Repository) *ContactHandler {
	return &ContactHandler{repo: repo}
}

type ContactRequestDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

// Submit accepts the public contact form; no authentication required.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	msg := &messages.Message{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := h.repo.Create(r.Context(), msg); err != nil {
		if errors.Is(err, messages.ErrInvalidMessage) {
			respondError(w, http.StatusBadRequest, "invalid_message", "name, email and message are required")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to store message")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.repo.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load messages")
		return
	}
	respondJSON(w, http.StatusOK, msgs)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "message_id")); err != nil {
		if errors.Is(err, messages.ErrMessageNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "message not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete message")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
