package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ZerubabelSemu/dotdesign/internal/cart"
	"github.com/ZerubabelSemu/dotdesign/internal/orders"
	"github.com/go-chi/chi/v5"
)

type CheckoutHandler struct {
	orders *orders.Service
	carts  *cart.Manager
}

func NewCheckoutHandler(svc *orders.Service, carts *cart.Manager) *CheckoutHandler {
	return &CheckoutHandler{orders: svc, carts: carts}
}

type AttachReceiptRequestDTO struct {
	ReceiptURL string `json:"receipt_url"`
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), userID, h.carts.Get(userID))
	if err != nil {
		if errors.Is(err, orders.ErrEmptyCart) {
			respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to place order")
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	history, err := h.orders.History(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load orders")
		return
	}
	respondJSON(w, http.StatusOK, history)
}

func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	order, err := h.orders.Get(r.Context(), userID, chi.URLParam(r, "order_id"))
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// AttachReceipt records a manually uploaded payment receipt against a
// pending order; the shop verifies it out of band before marking paid.
func (h *CheckoutHandler) AttachReceipt(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AttachReceiptRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ReceiptURL == "" {
		respondError(w, http.StatusBadRequest, "invalid_receipt", "receipt_url is required")
		return
	}

	err := h.orders.AttachReceipt(r.Context(), userID, chi.URLParam(r, "order_id"), req.ReceiptURL)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "no pending order with that id")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to attach receipt")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
