package cart

import (
	"context"
	"sync"

	"github.com/fjod/wavewonders/internal/domain"
)

// MemoryStore implements Store with in-process storage.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]domain.Product
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]domain.Product)}
}

func (s *MemoryStore) Items(_ context.Context, cartID string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.carts[cartID]
	out := make([]domain.Product, len(items))
	copy(out, items)
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, cartID string, p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cartID] = append(s.carts[cartID], p)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartID)
	return nil
}
