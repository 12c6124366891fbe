package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SameSessionSameStore(t *testing.T) {
	m := NewManager(newMockStorage(), &mockPriceSource{})

	a := m.Get("u1")
	b := m.Get("u1")

	assert.Same(t, a, b)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := NewManager(newMockStorage(), &mockPriceSource{})

	m.Get("u1").AddItem(lineItem("p1", "", 100, 1))

	assert.Empty(t, m.Get("u2").Items())
	assert.Len(t, m.Get("u1").Items(), 1)
}

func TestManager_HydratesFromStorage(t *testing.T) {
	st := newMockStorage()
	NewStore("u1", st, &mockPriceSource{}).AddItem(lineItem("p1", "", 100, 2))

	m := NewManager(st, &mockPriceSource{})

	items := m.Get("u1").Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}
