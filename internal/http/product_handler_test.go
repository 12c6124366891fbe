package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZerubabelSemu/dotdesign/internal/catalog"
	"github.com/ZerubabelSemu/dotdesign/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	catalog.RepoInterface
	products []*domain.Product
	product  *domain.Product
	err      error
}

func (s *stubCatalog) GetProducts(_ context.Context, _ string) ([]*domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) GetFeaturedProducts(_ context.Context, _ int) ([]*domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) GetProduct(_ context.Context, _ string) (*domain.Product, error) {
	if s.product == nil {
		return nil, catalog.ErrProductNotFound
	}
	return s.product, s.err
}

func TestListProducts(t *testing.T) {
	handler := NewProductHandler(&stubCatalog{products: []*domain.Product{
		{ID: "p1", Name: "Linen Wrap Dress", Price: 1200},
	}})

	recorder := httptest.NewRecorder()
	handler.ListProducts(recorder, httptest.NewRequest("GET", "/products", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	var got []*domain.Product
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "Linen Wrap Dress", got[0].Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	handler := NewProductHandler(&stubCatalog{})

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("GET", "/products/ghost", nil), "product_id", "ghost")

	handler.GetProduct(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetProduct_Found(t *testing.T) {
	handler := NewProductHandler(&stubCatalog{product: &domain.Product{ID: "p1", Name: "Wool Overcoat"}})

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("GET", "/products/p1", nil), "product_id", "p1")

	handler.GetProduct(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var got domain.Product
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
	assert.Equal(t, "Wool Overcoat", got.Name)
}
