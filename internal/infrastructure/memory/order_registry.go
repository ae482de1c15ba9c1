package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/yavorskyi/shopcore/internal/domain/order"
)

// OrderRegistry is the append-only order collection. Orders are stored as
// the live instances; their status keeps changing after registration.
type OrderRegistry struct {
	mu     sync.RWMutex
	orders []*domain.Order
	byID   map[string]*domain.Order
}

func NewOrderRegistry() *OrderRegistry {
	return &OrderRegistry{
		byID: make(map[string]*domain.Order),
	}
}

func (r *OrderRegistry) Append(ctx context.Context, order *domain.Order) error {
	_ = ctx
	if order == nil || order.ID == "" {
		return fmt.Errorf("order registry: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[order.ID]; exists {
		return fmt.Errorf("order registry: duplicate id %s", order.ID)
	}

	r.orders = append(r.orders, order)
	r.byID[order.ID] = order
	return nil
}

func (r *OrderRegistry) Get(ctx context.Context, id string) (*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (r *OrderRegistry) List(ctx context.Context) ([]*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*domain.Order(nil), r.orders...), nil
}
