package http

import (
	"errors"
	"net/http"

	"github.com/ZerubabelSemu/dotdesign/internal/catalog"
	"github.com/go-chi/chi/v5"
)

const featuredLimit = 3

type ProductHandler struct {
	repo catalog.RepoInterface
}

func NewProductHandler(repo catalog.RepoInterface) *ProductHandler {
	return &ProductHandler{repo: repo}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetFeaturedProducts(r.Context(), featuredLimit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load featured products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "product_id")

	product, err := h.repo.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}
