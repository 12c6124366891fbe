package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ZerubabelSemu/dotdesign/internal/admin"
	"github.com/ZerubabelSemu/dotdesign/internal/catalog"
	"github.com/ZerubabelSemu/dotdesign/internal/domain"
	"github.com/ZerubabelSemu/dotdesign/internal/orders"
	"github.com/ZerubabelSemu/dotdesign/internal/subscribers"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	roles   *admin.Roles
	catalog catalog.RepoInterface
	orders  *orders.Service
	subs    *subscribers.Repository
}

func NewAdminHandler(roles *admin.Roles, cat catalog.RepoInterface, svc *orders.Service, subs *subscribers.Repository) *AdminHandler {
	return &AdminHandler{
		roles:   roles,
		catalog: cat,
		orders:  svc,
		subs:    subs,
	}
}

// RequireAdmin gates the admin routes on the caller's role.
func (h *AdminHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := getUserIDFromContext(r.Context())
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
			return
		}

		ok, err := h.roles.IsAdmin(r.Context(), userID)
		if err != nil {
			log.Printf("request %s: admin role check failed for %s: %v", getRequestID(r.Context()), userID, err)
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to check role")
			return
		}
		if !ok {
			respondError(w, http.StatusForbidden, "permission_denied", "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ProductRequestDTO struct {
	Name             string                  `json:"name"`
	Description      string                  `json:"description"`
	Price            float64                 `json:"price"`
	Stock            int                     `json:"stock"`
	Featured         bool                    `json:"featured"`
	Published        bool                    `json:"published"`
	CategoryID       string                  `json:"category_id"`
	Material         string                  `json:"material"`
	CareInstructions string                  `json:"care_instructions"`
	Variants         []domain.ProductVariant `json:"variants,omitempty"`
	Images           []domain.ProductImage   `json:"images,omitempty"`
}

func (dto *ProductRequestDTO) toDomain() *domain.Product {
	return &domain.Product{
		Name:             dto.Name,
		Description:      dto.Description,
		Price:            dto.Price,
		Stock:            dto.Stock,
		Featured:         dto.Featured,
		Published:        dto.Published,
		CategoryID:       dto.CategoryID,
		Material:         dto.Material,
		CareInstructions: dto.CareInstructions,
		Variants:         dto.Variants,
		Images:           dto.Images,
	}
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" || req.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_product", "name is required and price must not be negative")
		return
	}

	product := req.toDomain()
	if err := h.catalog.CreateProduct(r.Context(), product); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create product")
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" || req.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_product", "name is required and price must not be negative")
		return
	}

	product := req.toDomain()
	product.ID = chi.URLParam(r, "product_id")
	if err := h.catalog.UpdateProduct(r.Context(), product); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), chi.URLParam(r, "product_id")); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type CategoryRequestDTO struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" || req.Slug == "" {
		respondError(w, http.StatusBadRequest, "invalid_category", "name and slug are required")
		return
	}

	category := &domain.Category{Name: req.Name, Slug: req.Slug}
	if err := h.catalog.CreateCategory(r.Context(), category); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create category")
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteCategory(r.Context(), chi.URLParam(r, "category_id")); err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "category not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type OrderStatusRequestDTO struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req OrderStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	switch req.Status {
	case domain.OrderPending, domain.OrderPaid, domain.OrderShipped, domain.OrderCancelled:
	default:
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
		return
	}

	if err := h.orders.SetStatus(r.Context(), chi.URLParam(r, "order_id"), req.Status); err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update order status")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subs.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load subscribers")
		return
	}
	respondJSON(w, http.StatusOK, subs)
}

type PromoteRequestDTO struct {
	UserID string `json:"user_id"`
}

func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load admins")
		return
	}
	respondJSON(w, http.StatusOK, roles)
}

func (h *AdminHandler) PromoteAdmin(w http.ResponseWriter, r *http.Request) {
	var req PromoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "user_id is required")
		return
	}

	promoter := getUserIDFromContext(r.Context())
	if err := h.roles.Promote(r.Context(), req.UserID, promoter); err != nil {
		if errors.Is(err, admin.ErrAlreadyAdmin) {
			respondError(w, http.StatusConflict, "already_exists", "user is already an admin")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to promote")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// DemoteAdmin removes the admin role from a user and from every admin they
// promoted, directly or transitively.
func (h *AdminHandler) DemoteAdmin(w http.ResponseWriter, r *http.Request) {
	if err := h.roles.Demote(r.Context(), chi.URLParam(r, "user_id")); err != nil {
		if errors.Is(err, admin.ErrNotAdmin) {
			respondError(w, http.StatusNotFound, "not_found", "user is not an admin")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to demote")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
