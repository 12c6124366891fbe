package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ZerubabelSemu/dotdesign/internal/subscribers"
	"github.com/ZerubabelSemu/dotdesign/internal/wishlist"
	"github.com/go-chi/chi/v5"
)

type WishlistHandler struct {
	repo *wishlist.Repository
}

func NewWishlistHandler(repo *wishlist.Repository) *WishlistHandler {
	return &WishlistHandler{repo: repo}
}

type WishlistRequestDTO struct {
	ProductID string `json:"product_id"`
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	items, err := h.repo.List(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load wishlist")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req WishlistRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	if err := h.repo.Add(r.Context(), userID, req.ProductID); err != nil {
		if errors.Is(err, wishlist.ErrAlreadyInWishlist) {
			respondError(w, http.StatusConflict, "already_exists", "product already in wishlist")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to add to wishlist")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	if err := h.repo.Remove(r.Context(), userID, chi.URLParam(r, "product_id")); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to remove from wishlist")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type NewsletterHandler struct {
	repo *subscribers.Repository
}

func NewNewsletterHandler(repo *subscribers.Repository) *NewsletterHandler {
	return &NewsletterHandler{repo: repo}
}

type SubscribeRequestDTO struct {
	Email string `json:"email"`
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	err := h.repo.Subscribe(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, subscribers.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, "invalid_email", "email address is invalid")
		case errors.Is(err, subscribers.ErrAlreadySubscribed):
			respondError(w, http.StatusConflict, "already_exists", "email already subscribed")
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to subscribe")
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.repo.Unsubscribe(r.Context(), req.Email); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to unsubscribe")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
