package catalog

import "context"

// Repository holds the authoritative product list. Products returned must be
// the shared instances, not copies: stock depletion by an order has to be
// visible to everyone holding the same product.
type Repository interface {
	Add(ctx context.Context, product *Product) error
	Remove(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
}
