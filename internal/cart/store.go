package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/ZerubabelSemu/dotdesign/internal/cart/storage"
	"github.com/ZerubabelSemu/dotdesign/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// PriceSource is the batched catalog lookup used by RefreshPrices.
// Products that no longer exist are simply absent from the returned map.
// Consumers define this interface, not the catalog implementation.
type PriceSource interface {
	GetPrices(ctx context.Context, productIDs []string) (map[string]domain.ProductPricing, error)
}

// Store owns the cart of a single session: an ordered list of line items,
// written through to persistent storage on every mutation. All mutations are
// serialized; RefreshPrices does not hold the lock across its network fetch,
// so mutations may interleave with an in-flight refresh (results for items
// removed meanwhile are dropped).
type Store struct {
	mu      sync.Mutex
	items   []domain.CartLineItem
	key     string
	storage storage.Storage
	prices  PriceSource
	sfg     singleflight.Group // collapses concurrent identical refreshes
}

// NewStore hydrates the cart for key from storage. Absent or corrupt data
// yields an empty cart, never an error.
func NewStore(key string, st storage.Storage, prices PriceSource) *Store {
	s := &Store{
		key:     key,
		storage: st,
		prices:  prices,
	}

	data, err := st.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("cart %s: load failed, starting empty: %v", key, err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		log.Printf("cart %s: corrupt stored cart, starting empty: %v", key, err)
		s.items = nil
	}
	return s
}

// AddItem merges into an existing line item with the same
// (productId, variantId) pair by summing quantities; no other field of the
// existing item is touched. Otherwise it appends a new line item with a fresh
// id. A quantity below 1 is ignored.
func (s *Store) AddItem(item domain.CartLineItem) {
	if item.Quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == item.ProductID && s.items[i].VariantID == item.VariantID {
			s.items[i].Quantity += item.Quantity
			s.persist()
			return
		}
	}

	item.ID = uuid.New().String()
	s.items = append(s.items, item)
	s.persist()
}

// RemoveItem deletes the line item with the given id; missing ids are a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

// UpdateQuantity sets the quantity of the line item with the given id.
// A quantity of zero or below removes the item. Missing ids are a no-op.
func (s *Store) UpdateQuantity(id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(id)
		return
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			s.persist()
			return
		}
	}
}

// Clear empties the cart unconditionally. The order flow calls this after a
// successful order creation.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist()
}

// Items returns a copy of the current line items.
func (s *Store) Items() []domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the sum of quantities over all line items.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price*quantity over all line items.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// RefreshPrices re-fetches authoritative prices for every product currently
// in the cart and overwrites stale snapshots in place: base price plus the
// variant adjustment when the item references a known variant, floored at
// zero so an oversized negative adjustment cannot produce a negative price.
// Products
// absent from the result keep their last-known price. A failed fetch is
// logged and swallowed without touching any item; the caller may run this in
// a goroutine and never await it.
func (s *Store) RefreshPrices(ctx context.Context) {
	ids := s.distinctProductIDs()
	if len(ids) == 0 {
		return
	}

	v, err, _ := s.sfg.Do(strings.Join(ids, ","), func() (interface{}, error) {
		return s.prices.GetPrices(ctx, ids)
	})
	if err != nil {
		log.Printf("cart %s: price refresh failed, keeping last-known prices: %v", s.key, err)
		return
	}
	pricing := v.(map[string]domain.ProductPricing)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		p, ok := pricing[s.items[i].ProductID]
		if !ok {
			continue // product gone upstream, keep the stale snapshot
		}
		adj := 0.0
		if s.items[i].VariantID != "" {
			adj = p.Adjustments[s.items[i].VariantID]
		}
		price := p.BasePrice + adj
		if price < 0 {
			price = 0
		}
		s.items[i].Price = price
	}
	s.persist()
}

func (s *Store) distinctProductIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.items))
	ids := make([]string, 0, len(s.items))
	for _, item := range s.items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) removeLocked(id string) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist()
			return
		}
	}
}

// persist writes the full item list through to storage. Callers hold s.mu.
// Persistence failures are logged, not surfaced: the in-memory cart stays
// authoritative for the session.
func (s *Store) persist() {
	data, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("cart %s: marshal failed: %v", s.key, err)
		return
	}
	if err := s.storage.Set(s.key, data); err != nil {
		log.Printf("cart %s: persist failed: %v", s.key, err)
	}
}
