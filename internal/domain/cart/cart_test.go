package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yavorskyi/shopcore/internal/domain/catalog"
)

func newProduct(t *testing.T, id, title string, price float64, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.New(id, title, decimal.NewFromFloat(price), "some brand", "some category", stock)
	require.NoError(t, err)
	return p
}

func TestAddProduct(t *testing.T) {
	c := New()
	p := newProduct(t, "1", "Sample Product", 20, 10)

	require.NoError(t, c.AddProduct(p, 2))

	require.Len(t, c.Lines(), 1)
	assert.False(t, c.IsEmpty())
	assert.Equal(t, 2, c.Lines()[0].Quantity)
	assert.Same(t, p, c.Lines()[0].Product)
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(40)), "total = %s", c.TotalPrice())
}

func TestAddProductOverStock(t *testing.T) {
	c := New()
	p := newProduct(t, "1", "Sample Product", 20, 10)

	err := c.AddProduct(p, 11)
	require.ErrorIs(t, err, ErrQuantityExceeded)
	assert.Contains(t, err.Error(), "you can't add more than 10 items")
	assert.True(t, c.IsEmpty())
	assert.True(t, c.TotalPrice().IsZero())
}

func TestAddProductMergesExistingLine(t *testing.T) {
	c := New()
	p := newProduct(t, "1", "Sample Product", 20, 10)

	require.NoError(t, c.AddProduct(p, 1))
	require.NoError(t, c.AddProduct(p, 2))

	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 3, c.Lines()[0].Quantity)
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(60)))
}

func TestAddProductMergeOverStock(t *testing.T) {
	c := New()
	p := newProduct(t, "1", "Sample Product", 20, 10)

	require.NoError(t, c.AddProduct(p, 5))
	err := c.AddProduct(p, 6)

	require.ErrorIs(t, err, ErrQuantityExceeded)
	// Failed add leaves the line and the total untouched.
	assert.Equal(t, 5, c.Lines()[0].Quantity)
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(100)))
}

func twoLineCart(t *testing.T) (*Cart, *catalog.Product, *catalog.Product) {
	t.Helper()
	c := New()
	p1 := newProduct(t, "1", "Sample Product 1", 10, 10)
	p2 := newProduct(t, "2", "Sample Product 2", 20, 5)
	require.NoError(t, c.AddProduct(p1, 3))
	require.NoError(t, c.AddProduct(p2, 2))
	return c, p1, p2
}

func TestRemoveLine(t *testing.T) {
	c, _, p2 := twoLineCart(t)

	c.RemoveLine(c.Lines()[0])

	require.Len(t, c.Lines(), 1)
	assert.Same(t, p2, c.Lines()[0].Product)
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(40)))
	assert.False(t, c.IsEmpty())
}

func TestRemoveLastLineEmptiesCart(t *testing.T) {
	c, _, _ := twoLineCart(t)

	c.RemoveLine(c.Lines()[0])
	c.RemoveLine(c.Lines()[0])

	assert.True(t, c.IsEmpty())
	assert.True(t, c.TotalPrice().IsZero())
}

func TestRemoveLineNotPresent(t *testing.T) {
	c, _, _ := twoLineCart(t)
	stray := &Line{Product: newProduct(t, "3", "Other", 5, 5), Quantity: 1}

	c.RemoveLine(stray)

	assert.Len(t, c.Lines(), 2)
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(70)))
}

func TestChangeQuantity(t *testing.T) {
	c, _, _ := twoLineCart(t)
	line := c.Lines()[0]

	require.NoError(t, c.ChangeQuantity(line, 5))

	assert.Equal(t, 5, line.Quantity)
	assert.Len(t, c.Lines(), 2)
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(90)))
}

func TestChangeQuantityToZeroRemovesLine(t *testing.T) {
	c, _, _ := twoLineCart(t)
	line := c.Lines()[0]

	require.NoError(t, c.ChangeQuantity(line, 0))

	assert.Len(t, c.Lines(), 1)
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(40)))
}

func TestChangeQuantityOverStock(t *testing.T) {
	c, _, _ := twoLineCart(t)
	line := c.Lines()[0]

	err := c.ChangeQuantity(line, 11)

	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 3, line.Quantity)
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(70)))
}

func TestChangeQuantityNegative(t *testing.T) {
	c, _, _ := twoLineCart(t)
	line := c.Lines()[0]

	err := c.ChangeQuantity(line, -1)

	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 3, line.Quantity)
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(70)))
}

func TestReportEmptyCart(t *testing.T) {
	c := New()

	_, err := c.Report()

	require.ErrorIs(t, err, ErrEmpty)
	assert.Contains(t, err.Error(), "the cart is empty")
}

func TestReportListsLinesAndTotal(t *testing.T) {
	c, _, _ := twoLineCart(t)

	lines, err := c.Report()

	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Sample Product 1")
	assert.Contains(t, lines[1], "Sample Product 2")
	assert.Contains(t, lines[2], "total price: 70")
}

func TestDepleteStock(t *testing.T) {
	c, p1, p2 := twoLineCart(t)

	c.DepleteStock()

	assert.Equal(t, 7, p1.Stock)
	assert.Equal(t, 3, p2.Stock)
	// Depletion touches products only; the cart's own lines stay as they were.
	assert.Equal(t, 3, c.Lines()[0].Quantity)
	assert.Equal(t, 2, c.Lines()[1].Quantity)
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(70)))
}

// Full pass through a cart's life: add, overflow, drop to zero, report on empty.
func TestCartLifecycle(t *testing.T) {
	c := New()
	a := newProduct(t, "a", "A", 20, 10)

	require.NoError(t, c.AddProduct(a, 2))
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(40)))

	err := c.AddProduct(a, 9)
	require.ErrorIs(t, err, ErrQuantityExceeded)
	assert.Contains(t, err.Error(), "you can't add more than 10 items")
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(40)))

	require.NoError(t, c.ChangeQuantity(c.Lines()[0], 0))
	assert.True(t, c.IsEmpty())
	assert.True(t, c.TotalPrice().IsZero())

	_, err = c.Report()
	require.ErrorIs(t, err, ErrEmpty)
}
