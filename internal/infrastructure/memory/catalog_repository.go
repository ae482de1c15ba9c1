package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/yavorskyi/shopcore/internal/domain/catalog"
)

// CatalogRepository keeps the authoritative product list in insertion order.
// Products are handed out as the shared instances on purpose: cart lines and
// orders hold the same pointers, so stock depletion is visible everywhere.
type CatalogRepository struct {
	mu       sync.RWMutex
	products []*domain.Product
}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

func (r *CatalogRepository) Add(ctx context.Context, product *domain.Product) error {
	_ = ctx
	if product == nil || product.ID == "" {
		return fmt.Errorf("catalog repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = append(r.products, product)
	return nil
}

func (r *CatalogRepository) Remove(ctx context.Context, id string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *CatalogRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *CatalogRepository) List(ctx context.Context) ([]*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*domain.Product(nil), r.products...), nil
}
