package orders

import (
	"context"
	"sync"

	"github.com/ZerubabelSemu/dotdesign/internal/domain"
	"github.com/segmentio/kafka-go"
)

// MockRepository implements OrderRepository for testing
type MockRepository struct {
	m            sync.Mutex
	CreatedOrder *domain.Order
	CreateErr    error
	Orders       []*domain.Order
	GetErr       error
	ReceiptURL   string
	ReceiptErr   error
	Status       domain.OrderStatus
	StatusErr    error
	Events       []*OutboxEvent
	EventsErr    error
	PublishedIDs []int64
	MarkErr      error
}

func (m *MockRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.CreatedOrder = order
	return nil
}

func (m *MockRepository) GetOrdersByUser(context.Context, string) ([]*domain.Order, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Orders, nil
}

func (m *MockRepository) GetOrder(_ context.Context, orderID, _ string) (*domain.Order, error) {
	for _, o := range m.Orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (m *MockRepository) AttachReceipt(_ context.Context, _, _, receiptURL string) error {
	if m.ReceiptErr != nil {
		return m.ReceiptErr
	}
	m.ReceiptURL = receiptURL
	return nil
}

func (m *MockRepository) UpdateStatus(_ context.Context, _ string, status domain.OrderStatus) error {
	if m.StatusErr != nil {
		return m.StatusErr
	}
	m.Status = status
	return nil
}

func (m *MockRepository) GetUnpublishedEvents(context.Context, int) ([]*OutboxEvent, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.EventsErr != nil {
		return nil, m.EventsErr
	}
	events := m.Events
	m.Events = nil
	return events, nil
}

func (m *MockRepository) MarkEventPublished(_ context.Context, id int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.MarkErr != nil {
		return m.MarkErr
	}
	m.PublishedIDs = append(m.PublishedIDs, id)
	return nil
}

// mockCart implements CartReader. onItems fires after the snapshot is taken,
// standing in for a mutation racing the order flow.
type mockCart struct {
	items   []domain.CartLineItem
	onItems func()
	cleared bool
}

func (m *mockCart) Items() []domain.CartLineItem {
	items := m.items
	if m.onItems != nil {
		m.onItems()
	}
	return items
}

func (m *mockCart) Clear() { m.cleared = true }

// mockWriter implements EventWriter
type mockWriter struct {
	m        sync.Mutex
	messages []kafka.Message
	err      error
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}
