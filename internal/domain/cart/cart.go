package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yavorskyi/shopcore/internal/domain/catalog"
)

var (
	ErrQuantityExceeded = errors.New("cart: quantity exceeds stock")
	ErrInvalidQuantity  = errors.New("cart: incorrect quantity value")
	ErrEmpty            = errors.New("cart: the cart is empty")
)

// Line pairs one product with a positive quantity. A cart holds at most one
// line per distinct product; merging happens on add.
type Line struct {
	Product  *catalog.Product
	Quantity int
}

// Equal treats two lines as the same when they reference the same product
// instance with the same quantity. This is the match rule used by remove and
// change-quantity, which operate on line handles, not product ids.
func (l *Line) Equal(other *Line) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.Product == other.Product && l.Quantity == other.Quantity
}

func (l *Line) String() string {
	return fmt.Sprintf("product title: %s, quantity: %d", l.Product.Title, l.Quantity)
}

// Cart accumulates lines under stock constraints and keeps the derived total
// price in sync with them after every mutation.
type Cart struct {
	lines []*Line
	total decimal.Decimal
}

func New() *Cart {
	return &Cart{total: decimal.Zero}
}

// TotalPrice is always Σ(line quantity × product price) over current lines.
func (c *Cart) TotalPrice() decimal.Decimal { return c.total }

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Lines exposes the live line handles in insertion order. Callers pass these
// handles back to RemoveLine/ChangeQuantity.
func (c *Cart) Lines() []*Line {
	return append([]*Line(nil), c.lines...)
}

// AddProduct merges quantity into an existing line for the product or appends
// a new one. The merged quantity must not exceed the product's current stock;
// on failure the cart, including its total, is left untouched.
func (c *Cart) AddProduct(product *catalog.Product, quantity int) error {
	if quantity > product.Stock {
		return exceededErr(product.Stock)
	}

	for _, line := range c.lines {
		if line.Product == product {
			if line.Quantity+quantity > product.Stock {
				return exceededErr(product.Stock)
			}
			line.Quantity += quantity
			c.recalculateTotal()
			return nil
		}
	}

	c.lines = append(c.lines, &Line{Product: product, Quantity: quantity})
	c.recalculateTotal()
	return nil
}

// RemoveLine drops every line equal to the given one and recomputes the
// total. A non-present line is a no-op.
func (c *Cart) RemoveLine(line *Line) {
	kept := c.lines[:0]
	for _, existing := range c.lines {
		if !existing.Equal(line) {
			kept = append(kept, existing)
		}
	}
	c.lines = kept
	c.recalculateTotal()
}

// ChangeQuantity updates each line equal to the given one: a positive
// quantity within stock replaces the line's quantity, zero removes the line,
// anything else fails with ErrInvalidQuantity. The total is recomputed
// unconditionally afterward, even when nothing matched.
func (c *Cart) ChangeQuantity(line *Line, newQuantity int) error {
	for _, existing := range c.lines {
		if !existing.Equal(line) {
			continue
		}
		switch {
		case newQuantity > 0 && newQuantity <= existing.Product.Stock:
			existing.Quantity = newQuantity
		case newQuantity == 0:
			c.RemoveLine(existing)
		default:
			return ErrInvalidQuantity
		}
		break
	}

	c.recalculateTotal()
	return nil
}

// Report returns the cart content as display lines plus the total. An empty
// cart is a contract violation other flows rely on, hence the error.
func (c *Cart) Report() ([]string, error) {
	if c.IsEmpty() {
		return nil, ErrEmpty
	}

	out := make([]string, 0, len(c.lines)+1)
	for _, line := range c.lines {
		out = append(out, line.String())
	}
	out = append(out, fmt.Sprintf("total price: %s", c.total))
	return out, nil
}

// DepleteStock reduces every referenced product's stock by the line quantity.
// Called exactly once, by order construction; there is no rollback.
func (c *Cart) DepleteStock() {
	for _, line := range c.lines {
		line.Product.Deduct(line.Quantity)
	}
}

func (c *Cart) String() string {
	out := "Cart{lines=["
	for i, line := range c.lines {
		if i > 0 {
			out += ", "
		}
		out += line.String()
	}
	return fmt.Sprintf("%s], totalPrice=%s}", out, c.total)
}

func (c *Cart) recalculateTotal() {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	c.total = total
}

func exceededErr(stock int) error {
	return fmt.Errorf("%w: you can't add more than %d items", ErrQuantityExceeded, stock)
}
