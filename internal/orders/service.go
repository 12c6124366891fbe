package orders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ZerubabelSemu/dotdesign/internal/domain"
	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart is empty")

// CartReader is the slice of the cart store the order flow needs: read the
// lines, clear on success. The total is derived from the snapshot here, not
// read separately, so it always agrees with the items ordered.
type CartReader interface {
	Items() []domain.CartLineItem
	Clear()
}

type Service struct {
	repo     OrderRepository
	currency string
}

func NewService(repo OrderRepository, currency string) *Service {
	return &Service{
		repo:     repo,
		currency: currency,
	}
}

// PlaceOrder snapshots the cart into an order and clears the cart once the
// order is durably stored. The cart may mutate while the insert is in
// flight; the snapshot taken here is what gets ordered.
func (s *Service) PlaceOrder(ctx context.Context, userID string, cart CartReader) (*domain.Order, error) {
	items := cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	order := &domain.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		TotalAmount: total,
		Currency:    s.currency,
		Status:      domain.OrderPending,
		Items:       make([]domain.OrderItem, len(items)),
	}
	for i, item := range items {
		order.Items[i] = domain.OrderItem{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.Name,
			Size:        item.Size,
			UnitPrice:   item.Price,
			Quantity:    item.Quantity,
		}
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	cart.Clear()
	log.Printf("order %s placed for user %s (%d lines)", order.ID, userID, len(order.Items))
	return order, nil
}

// History returns the user's orders, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.GetOrdersByUser(ctx, userID)
}

// Get returns one of the user's orders.
func (s *Service) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, orderID, userID)
}

// AttachReceipt records the payment receipt a customer uploaded for a
// pending order of theirs.
func (s *Service) AttachReceipt(ctx context.Context, userID, orderID, receiptURL string) error {
	return s.repo.AttachReceipt(ctx, orderID, userID, receiptURL)
}

// SetStatus is the admin-side status transition (mark paid, shipped, ...).
func (s *Service) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	return s.repo.UpdateStatus(ctx, orderID, status)
}
