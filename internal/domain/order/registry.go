package order

import "context"

// Registry is the append-only collection of orders. Enumeration preserves
// insertion order; there is no deletion.
type Registry interface {
	Append(ctx context.Context, order *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
}
