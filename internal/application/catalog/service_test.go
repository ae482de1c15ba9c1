package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/yavorskyi/shopcore/internal/domain/catalog"
	"github.com/yavorskyi/shopcore/internal/infrastructure/memory"
)

type seqIDGenerator struct{ n int }

func (g *seqIDGenerator) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func seedService(t *testing.T, filter *domain.FilterCriteria, sort domain.SortStrategy) *Service {
	t.Helper()
	svc := NewService(memory.NewCatalogRepository(), filter, sort, &seqIDGenerator{})

	ctx := context.Background()
	seeds := []AddProductInput{
		{Title: "Phone Alpha", Price: decimal.NewFromInt(500), Brand: "B1", Category: "phones", Stock: 10},
		{Title: "Charger", Price: decimal.NewFromInt(20), Brand: "B3", Category: "accessories", Stock: 50},
		{Title: "Phone Beta", Price: decimal.NewFromInt(300), Brand: "B2", Category: "phones", Stock: 5},
	}
	for _, seed := range seeds {
		_, err := svc.AddProduct(ctx, seed)
		require.NoError(t, err)
	}
	return svc
}

func titles(products []*domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}

func TestAddProductGeneratesID(t *testing.T) {
	svc := NewService(memory.NewCatalogRepository(), nil, nil, &seqIDGenerator{})

	p, err := svc.AddProduct(context.Background(), AddProductInput{
		Title: "Phone", Price: decimal.NewFromInt(100), Brand: "B", Category: "phones", Stock: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, "id-1", p.ID)
}

func TestAddProductValidationErrors(t *testing.T) {
	svc := NewService(memory.NewCatalogRepository(), nil, nil, &seqIDGenerator{})

	_, err := svc.AddProduct(context.Background(), AddProductInput{
		Price: decimal.NewFromInt(100), Brand: "B", Category: "phones",
	})

	assert.ErrorIs(t, err, domain.ErrTitleRequired)
}

func TestProductsWithoutStagesPreservesOrder(t *testing.T) {
	svc := seedService(t, nil, nil)

	got, err := svc.Products(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, []string{"Phone Alpha", "Charger", "Phone Beta"}, titles(got))
}

func TestProductsFilterThenSort(t *testing.T) {
	filter := domain.NewFilterCriteria()
	filter.AddCategory("phones")
	svc := seedService(t, filter, domain.SortByPrice())

	got, err := svc.Products(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, []string{"Phone Beta", "Phone Alpha"}, titles(got))
}

func TestProductsSubstringWithoutSort(t *testing.T) {
	svc := seedService(t, domain.NewFilterCriteria(), nil)

	got, err := svc.Products(context.Background(), "Phone")

	require.NoError(t, err)
	assert.Equal(t, []string{"Phone Alpha", "Phone Beta"}, titles(got))
}

func TestSortStrategySwap(t *testing.T) {
	svc := seedService(t, nil, domain.SortByPrice())

	got, err := svc.Products(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Charger", "Phone Beta", "Phone Alpha"}, titles(got))

	svc.SetSortStrategy(domain.SortByTitle())
	assert.Equal(t, "title", svc.SortStrategy().Name())

	got, err = svc.Products(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Charger", "Phone Alpha", "Phone Beta"}, titles(got))

	svc.SetSortStrategy(nil)
	got, err = svc.Products(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Phone Alpha", "Charger", "Phone Beta"}, titles(got))
}

func TestRemoveProduct(t *testing.T) {
	svc := seedService(t, nil, nil)

	require.NoError(t, svc.RemoveProduct(context.Background(), "id-2"))

	got, err := svc.Products(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Phone Alpha", "Phone Beta"}, titles(got))

	assert.ErrorIs(t, svc.RemoveProduct(context.Background(), "id-2"), domain.ErrNotFound)
}

func TestSetStock(t *testing.T) {
	svc := seedService(t, nil, nil)

	require.NoError(t, svc.SetStock(context.Background(), "id-1", 2))

	p, err := svc.Get(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)
}
