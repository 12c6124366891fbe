package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/ZerubabelSemu/dotdesign/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartWith(items ...domain.CartLineItem) *mockCart {
	return &mockCart{items: items}
}

func TestPlaceOrder_SnapshotsCartAndClears(t *testing.T) {
	repo := &MockRepository{}
	sut := NewService(repo, "USD")
	cart := cartWith(
		domain.CartLineItem{ID: "l1", ProductID: "p1", VariantID: "v1", Name: "Linen Wrap Dress", Size: "M", Price: 1200, Quantity: 2, ImageURL: "/x.jpg"},
		domain.CartLineItem{ID: "l2", ProductID: "p2", Name: "Canvas Tote", Price: 450, Quantity: 1},
	)

	order, err := sut.PlaceOrder(context.Background(), "u1", cart)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, "USD", order.Currency)
	assert.Equal(t, 2850.0, order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, domain.OrderItem{
		ProductID:   "p1",
		VariantID:   "v1",
		ProductName: "Linen Wrap Dress",
		Size:        "M",
		UnitPrice:   1200,
		Quantity:    2,
	}, order.Items[0])

	assert.True(t, cart.cleared, "cart must be cleared after a successful order")
	assert.Equal(t, order, repo.CreatedOrder)
}

func TestPlaceOrder_TotalMatchesSnapshotDespiteConcurrentMutation(t *testing.T) {
	repo := &MockRepository{}
	sut := NewService(repo, "USD")
	cart := cartWith(domain.CartLineItem{ID: "l1", ProductID: "p1", Price: 300, Quantity: 2})
	cart.onItems = func() { cart.items = nil } // cart emptied right after the snapshot

	order, err := sut.PlaceOrder(context.Background(), "u1", cart)
	require.NoError(t, err)

	assert.Equal(t, 600.0, order.TotalAmount, "total must be derived from the ordered items")
	require.Len(t, order.Items, 1)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	sut := NewService(&MockRepository{}, "USD")

	_, err := sut.PlaceOrder(context.Background(), "u1", cartWith())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_RepoFailureKeepsCart(t *testing.T) {
	repo := &MockRepository{CreateErr: errors.New("db down")}
	sut := NewService(repo, "USD")
	cart := cartWith(domain.CartLineItem{ID: "l1", ProductID: "p1", Price: 100, Quantity: 1})

	_, err := sut.PlaceOrder(context.Background(), "u1", cart)

	require.Error(t, err)
	assert.False(t, cart.cleared, "cart must survive a failed order")
}

func TestAttachReceipt_Forwards(t *testing.T) {
	repo := &MockRepository{}
	sut := NewService(repo, "USD")

	require.NoError(t, sut.AttachReceipt(context.Background(), "u1", "o1", "/receipts/abc.jpg"))
	assert.Equal(t, "/receipts/abc.jpg", repo.ReceiptURL)
}

func TestSetStatus_Forwards(t *testing.T) {
	repo := &MockRepository{}
	sut := NewService(repo, "USD")

	require.NoError(t, sut.SetStatus(context.Background(), "o1", domain.OrderPaid))
	assert.Equal(t, domain.OrderPaid, repo.Status)
}

func TestGet_NotFound(t *testing.T) {
	sut := NewService(&MockRepository{}, "USD")

	_, err := sut.Get(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
