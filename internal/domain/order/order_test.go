package order

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yavorskyi/shopcore/internal/domain/cart"
	"github.com/yavorskyi/shopcore/internal/domain/catalog"
)

type stubPayment struct{ started bool }

func (s *stubPayment) StartPayment(ctx context.Context, o *Order) error {
	s.started = true
	return o.SetStatus(StatusPaid)
}

func (s *stubPayment) Name() string { return "stub_payment" }

type stubDelivery struct{ address string }

func (s *stubDelivery) CollectAddress(ctx context.Context) (string, error) {
	return s.address, nil
}

func (s *stubDelivery) Name() string { return "stub_delivery" }

type recordingObserver struct {
	id      string
	updates *[]string
	fail    error
}

func (r *recordingObserver) Update(status, email string) error {
	*r.updates = append(*r.updates, fmt.Sprintf("%s:%s:%s", r.id, status, email))
	return r.fail
}

func newTestOrder(t *testing.T) (*Order, *catalog.Product) {
	t.Helper()
	p, err := catalog.New("p1", "Sample", decimal.NewFromInt(20), "brand", "category", 10)
	require.NoError(t, err)

	c := cart.New()
	require.NoError(t, c.AddProduct(p, 4))

	o := New("o1", c, "shopper@example.com", &stubPayment{}, &stubDelivery{address: "po-7"})
	return o, p
}

func TestNewDepletesStock(t *testing.T) {
	o, p := newTestOrder(t)

	assert.Equal(t, 6, p.Stock)
	assert.Equal(t, 4, o.Cart().Lines()[0].Quantity)
	assert.Equal(t, StatusCreated, o.Status())
	assert.True(t, o.TotalPrice().Equal(decimal.NewFromInt(80)))
}

func TestSetStatusNotifiesInRegistrationOrder(t *testing.T) {
	o, _ := newTestOrder(t)
	var updates []string
	o.RegisterObserver(&recordingObserver{id: "first", updates: &updates})
	o.RegisterObserver(&recordingObserver{id: "second", updates: &updates})

	require.NoError(t, o.SetStatus("shipped"))

	assert.Equal(t, []string{
		"first:shipped:shopper@example.com",
		"second:shipped:shopper@example.com",
	}, updates)
	assert.Equal(t, "shipped", o.Status())
}

func TestRemovedObserverIsNotNotified(t *testing.T) {
	o, _ := newTestOrder(t)
	var updates []string
	first := &recordingObserver{id: "first", updates: &updates}
	second := &recordingObserver{id: "second", updates: &updates}
	o.RegisterObserver(first)
	o.RegisterObserver(second)

	o.RemoveObserver(first)
	require.NoError(t, o.SetStatus("paid"))

	assert.Equal(t, []string{"second:paid:shopper@example.com"}, updates)
}

func TestRemoveUnknownObserverIsNoop(t *testing.T) {
	o, _ := newTestOrder(t)
	var updates []string
	o.RegisterObserver(&recordingObserver{id: "kept", updates: &updates})

	o.RemoveObserver(&recordingObserver{id: "stranger", updates: &updates})
	require.NoError(t, o.SetStatus("paid"))

	assert.Len(t, updates, 1)
}

func TestObserverFailurePropagates(t *testing.T) {
	o, _ := newTestOrder(t)
	var updates []string
	boom := errors.New("smtp down")
	o.RegisterObserver(&recordingObserver{id: "first", updates: &updates, fail: boom})
	o.RegisterObserver(&recordingObserver{id: "second", updates: &updates})

	err := o.SetStatus("paid")

	require.ErrorIs(t, err, boom)
	// The status is already overwritten and fan-out stopped at the failure.
	assert.Equal(t, "paid", o.Status())
	assert.Len(t, updates, 1)
}

func TestStatusIsFreeForm(t *testing.T) {
	o, _ := newTestOrder(t)

	require.NoError(t, o.SetStatus("anything goes"))

	assert.Equal(t, "anything goes", o.Status())
}

func TestStartPaymentDelegates(t *testing.T) {
	p, err := catalog.New("p1", "Sample", decimal.NewFromInt(20), "brand", "category", 10)
	require.NoError(t, err)
	c := cart.New()
	require.NoError(t, c.AddProduct(p, 1))

	pay := &stubPayment{}
	o := New("o1", c, "shopper@example.com", pay, &stubDelivery{})

	require.NoError(t, o.StartPayment(context.Background()))

	assert.True(t, pay.started)
	assert.Equal(t, StatusPaid, o.Status())
}

func TestCollectAddressRetainsDestination(t *testing.T) {
	o, _ := newTestOrder(t)

	require.NoError(t, o.CollectAddress(context.Background()))

	assert.Equal(t, "po-7", o.Address())
	assert.Contains(t, o.Info(), `address="po-7"`)
	assert.Contains(t, o.Info(), "status=created")
}
