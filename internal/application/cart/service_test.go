package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/yavorskyi/shopcore/internal/domain/cart"
	domaincatalog "github.com/yavorskyi/shopcore/internal/domain/catalog"
	"github.com/yavorskyi/shopcore/internal/infrastructure/memory"
)

type seqIDGenerator struct{ n int }

func (g *seqIDGenerator) NewID() string {
	g.n++
	return fmt.Sprintf("cart-%d", g.n)
}

func newFixture(t *testing.T) (*Service, *domaincatalog.Product) {
	t.Helper()
	catalogRepo := memory.NewCatalogRepository()
	p, err := domaincatalog.New("p1", "Sample", decimal.NewFromInt(20), "brand", "category", 10)
	require.NoError(t, err)
	require.NoError(t, catalogRepo.Add(context.Background(), p))

	return NewService(memory.NewCartStore(), catalogRepo, &seqIDGenerator{}), p
}

func TestCreateAndAdd(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	cartID := svc.Create(ctx)
	require.Equal(t, "cart-1", cartID)

	require.NoError(t, svc.AddProduct(ctx, cartID, "p1", 2))

	c, err := svc.Get(ctx, cartID)
	require.NoError(t, err)
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(40)))
}

func TestAddProductUnknownCartOrProduct(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.AddProduct(ctx, "missing", "p1", 1), memory.ErrCartNotFound)

	cartID := svc.Create(ctx)
	assert.ErrorIs(t, svc.AddProduct(ctx, cartID, "missing", 1), domaincatalog.ErrNotFound)
}

func TestAddProductStockCheckSurfaces(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()
	cartID := svc.Create(ctx)

	err := svc.AddProduct(ctx, cartID, "p1", 11)

	assert.ErrorIs(t, err, domain.ErrQuantityExceeded)
}

func TestChangeQuantityAndRemove(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()
	cartID := svc.Create(ctx)
	require.NoError(t, svc.AddProduct(ctx, cartID, "p1", 2))

	require.NoError(t, svc.ChangeQuantity(ctx, cartID, "p1", 5))
	c, err := svc.Get(ctx, cartID)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Lines()[0].Quantity)

	require.NoError(t, svc.RemoveProduct(ctx, cartID, "p1"))
	c, err = svc.Get(ctx, cartID)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestChangeQuantityUnknownLine(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()
	cartID := svc.Create(ctx)

	err := svc.ChangeQuantity(ctx, cartID, "p1", 2)

	assert.ErrorIs(t, err, domaincatalog.ErrNotFound)
}

func TestReport(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()
	cartID := svc.Create(ctx)

	_, err := svc.Report(ctx, cartID)
	assert.ErrorIs(t, err, domain.ErrEmpty)

	require.NoError(t, svc.AddProduct(ctx, cartID, "p1", 1))
	lines, err := svc.Report(ctx, cartID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}
