package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ZerubabelSemu/dotdesign/internal/payments"
	"github.com/go-chi/chi/v5"
)

type PaymentMethodHandler struct {
	repo *payments.Repository
}

func NewPaymentMethodHandler(repo *payments.Repository) *PaymentMethodHandler {
	return &PaymentMethodHandler{repo: repo}
}

type PaymentMethodRequestDTO struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	PhoneNumber   string `json:"phone_number"`
	Instructions  string `json:"instructions"`
	IsActive      bool   `json:"is_active"`
	DisplayOrder  int    `json:"display_order"`
}

func (dto *PaymentMethodRequestDTO) toMethod() *payments.Method {
	return &payments.Method{
		Name:          dto.Name,
		Type:          dto.Type,
		AccountNumber: dto.AccountNumber,
		AccountName:   dto.AccountName,
		PhoneNumber:   dto.PhoneNumber,
		Instructions:  dto.Instructions,
		IsActive:      dto.IsActive,
		DisplayOrder:  dto.DisplayOrder,
	}
}

// ListActive is the public view backing the payment instructions shown after
// checkout.
func (h *PaymentMethodHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	methods, err := h.repo.ListActive(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load payment methods")
		return
	}
	respondJSON(w, http.StatusOK, methods)
}

func (h *PaymentMethodHandler) List(w http.ResponseWriter, r *http.Request) {
	methods, err := h.repo.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load payment methods")
		return
	}
	respondJSON(w, http.StatusOK, methods)
}

func (h *PaymentMethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PaymentMethodRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" || req.Type == "" {
		respondError(w, http.StatusBadRequest, "invalid_method", "name and type are required")
		return
	}

	method := req.toMethod()
	if err := h.repo.Create(r.Context(), method); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create payment method")
		return
	}
	respondJSON(w, http.StatusCreated, method)
}

func (h *PaymentMethodHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req PaymentMethodRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" || req.Type == "" {
		respondError(w, http.StatusBadRequest, "invalid_method", "name and type are required")
		return
	}

	method := req.toMethod()
	method.ID = chi.URLParam(r, "method_id")
	if err := h.repo.Update(r.Context(), method); err != nil {
		if errors.Is(err, payments.ErrMethodNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "payment method not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update payment method")
		return
	}
	respondJSON(w, http.StatusOK, method)
}

func (h *PaymentMethodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "method_id")); err != nil {
		if errors.Is(err, payments.ErrMethodNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "payment method not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete payment method")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
