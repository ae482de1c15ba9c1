package memory

import (
	"context"
	"errors"
	"sync"

	domain "github.com/yavorskyi/shopcore/internal/domain/cart"
)

var ErrCartNotFound = errors.New("cart store: cart not found")

// CartStore tracks live carts by id for the duration of a shopping session.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]*domain.Cart)}
}

func (s *CartStore) Put(ctx context.Context, id string, cart *domain.Cart) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[id] = cart
}

func (s *CartStore) Get(ctx context.Context, id string) (*domain.Cart, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	return cart, nil
}
