package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = errors.New("catalog: product not found")
	ErrTitleRequired    = errors.New("catalog: title must not be empty")
	ErrBrandRequired    = errors.New("catalog: brand must not be empty")
	ErrCategoryRequired = errors.New("catalog: category must not be empty")
	ErrNegativePrice    = errors.New("catalog: price must be zero or greater")
	ErrNegativeStock    = errors.New("catalog: stock must be zero or greater")
)

// Product is a sellable catalog entry. Instances are shared by pointer
// between the catalog, cart lines, and orders; the only mutable attribute
// is Stock, and only through SetStock/Deduct.
type Product struct {
	ID          string
	Title       string
	Price       decimal.Decimal
	Description string
	Brand       string
	Category    string
	Stock       int
	Image       string
}

// Option sets one of the defaultable product attributes.
type Option func(*Product)

func WithDescription(description string) Option {
	return func(p *Product) { p.Description = description }
}

func WithImage(image string) Option {
	return func(p *Product) { p.Image = image }
}

// New validates the required attributes and assembles a product.
func New(id, title string, price decimal.Decimal, brand, category string, stock int, opts ...Option) (*Product, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}
	if brand == "" {
		return nil, ErrBrandRequired
	}
	if category == "" {
		return nil, ErrCategoryRequired
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}

	p := &Product{
		ID:       id,
		Title:    title,
		Price:    price,
		Brand:    brand,
		Category: category,
		Stock:    stock,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// SetStock replaces the stock count. This is the only admin-facing stock
// mutation; order depletion goes through Deduct.
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	p.Stock = stock
	return nil
}

// Deduct lowers the stock count without a floor check. Order depletion is
// irreversible and happens after the cart already validated quantities.
func (p *Product) Deduct(quantity int) {
	p.Stock -= quantity
}

// Info returns the full product dump used by listings.
func (p *Product) Info() string {
	return fmt.Sprintf("Product{title=%q, price=%s, description=%q, image=%q, brand=%q, category=%q, stock=%d}",
		p.Title, p.Price, p.Description, p.Image, p.Brand, p.Category, p.Stock)
}

func (p *Product) String() string {
	return fmt.Sprintf("Product{title=%q, price=%s, stock=%d}", p.Title, p.Price, p.Stock)
}
