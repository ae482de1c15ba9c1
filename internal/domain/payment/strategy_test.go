package payment

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yavorskyi/shopcore/internal/domain/cart"
	"github.com/yavorskyi/shopcore/internal/domain/catalog"
	"github.com/yavorskyi/shopcore/internal/domain/order"
)

type noopDelivery struct{}

func (noopDelivery) CollectAddress(ctx context.Context) (string, error) { return "", nil }
func (noopDelivery) Name() string                                      { return "noop" }

func testOrder(t *testing.T, strategy order.PaymentStrategy) *order.Order {
	t.Helper()
	p, err := catalog.New("p1", "Sample", decimal.NewFromInt(15), "brand", "category", 5)
	require.NoError(t, err)
	c := cart.New()
	require.NoError(t, c.AddProduct(p, 1))
	return order.New("o1", c, "shopper@example.com", strategy, noopDelivery{})
}

func TestResolve(t *testing.T) {
	byCard, err := Resolve(MethodCard, StaticCardSource("4111"))
	require.NoError(t, err)
	assert.Equal(t, "card", byCard.Name())

	cod, err := Resolve(MethodCashOnDelivery, nil)
	require.NoError(t, err)
	assert.Equal(t, "cash_on_delivery", cod.Name())

	_, err = Resolve(Method("wire"), nil)
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestByCardMarksOrderPaid(t *testing.T) {
	strategy, err := Resolve(MethodCard, StaticCardSource("4111 1111 1111 1111"))
	require.NoError(t, err)
	o := testOrder(t, strategy)

	require.NoError(t, o.StartPayment(context.Background()))

	assert.Equal(t, order.StatusPaid, o.Status())
}

func TestCashOnDeliveryLeavesStatusAlone(t *testing.T) {
	strategy, err := Resolve(MethodCashOnDelivery, nil)
	require.NoError(t, err)
	o := testOrder(t, strategy)

	require.NoError(t, o.StartPayment(context.Background()))

	assert.Equal(t, order.StatusCreated, o.Status())
}
