package cart

import (
	"sync"

	"github.com/ZerubabelSemu/dotdesign/internal/cart/storage"
)

// Manager hands out the cart store for a session. Each store is constructed
// once (hydrating from storage) and lives for the rest of the process, so
// every collaborator for a session sees the same instance.
type Manager struct {
	mu      sync.Mutex
	stores  map[string]*Store
	storage storage.Storage
	prices  PriceSource
}

func NewManager(st storage.Storage, prices PriceSource) *Manager {
	return &Manager{
		stores:  make(map[string]*Store),
		storage: st,
		prices:  prices,
	}
}

// Get returns the store for the given session key, creating it on first use.
func (m *Manager) Get(key string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[key]; ok {
		return s
	}
	s := NewStore(key, m.storage, m.prices)
	m.stores[key] = s
	return s
}
