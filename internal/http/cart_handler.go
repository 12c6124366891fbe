package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ZerubabelSemu/dotdesign/internal/cart"
	"github.com/ZerubabelSemu/dotdesign/internal/domain"
	"github.com/go-chi/chi/v5"
)

const refreshTimeout = 10 * time.Second

type CartHandler struct {
	carts *cart.Manager
}

func NewCartHandler(carts *cart.Manager) *CartHandler {
	return &CartHandler{carts: carts}
}

type AddItemRequestDTO struct {
	ProductID string  `json:"product_id"`
	VariantID string  `json:"variant_id,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url"`
	Size      string  `json:"size,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items      []domain.CartLineItem `json:"items"`
	TotalItems int                   `json:"total_items"`
	TotalPrice float64               `json:"total_price"`
}

func cartResponse(s *cart.Store) CartResponseDTO {
	return CartResponseDTO{
		Items:      s.Items(),
		TotalItems: s.TotalItems(),
		TotalPrice: s.TotalPrice(),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(h.carts.Get(userID)))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return
	}

	store := h.carts.Get(userID)
	store.AddItem(domain.CartLineItem{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		ImageURL:  req.ImageURL,
		Size:      req.Size,
	})

	respondJSON(w, http.StatusCreated, cartResponse(store))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must not exceed 99")
		return
	}

	// Zero or negative removes the line, same contract as the store itself.
	store := h.carts.Get(userID)
	store.UpdateQuantity(itemID, req.Quantity)

	respondJSON(w, http.StatusOK, cartResponse(store))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id is required")
		return
	}

	store := h.carts.Get(userID)
	store.RemoveItem(itemID)

	respondJSON(w, http.StatusOK, cartResponse(store))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	store := h.carts.Get(userID)
	store.Clear()

	respondJSON(w, http.StatusOK, cartResponse(store))
}

// RefreshPrices re-syncs cart prices against the catalog. By default the
// refresh runs in the background and the call returns immediately; pass
// ?wait=true to get the refreshed cart back.
func (h *CartHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	store := h.carts.Get(userID)

	if r.URL.Query().Get("wait") == "true" {
		ctx, cancel := context.WithTimeout(r.Context(), refreshTimeout)
		defer cancel()
		store.RefreshPrices(ctx)
		respondJSON(w, http.StatusOK, cartResponse(store))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		store.RefreshPrices(ctx)
	}()
	w.WriteHeader(http.StatusAccepted)
}
