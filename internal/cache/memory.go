package cache

import (
	"context"
	"sync"

	"github.com/yungbote/petshop-storefront/internal/types"
)

// memoryStore backs tests and cache-less runs. Same full-overwrite
// contract as the persistent backends.
type memoryStore struct {
	mu    sync.Mutex
	items []types.CartItem
}

func NewMemory() Store {
	return &memoryStore{items: []types.CartItem{}}
}

func (m *memoryStore) Load(ctx context.Context) ([]types.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.CartItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memoryStore) Save(ctx context.Context, items []types.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make([]types.CartItem, len(items))
	copy(m.items, items)
	return nil
}

func (m *memoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = []types.CartItem{}
	return nil
}
