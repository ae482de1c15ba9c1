package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/yavorskyi/shopcore/internal/domain/order"
)

var ErrUnknownMethod = errors.New("payment: unknown payment method")

// Method enumerates the selectable payment strategies.
type Method string

const (
	MethodCard           Method = "card"
	MethodCashOnDelivery Method = "cash_on_delivery"
)

// CardSource supplies the shopper's card number. The interactive prompt that
// collects it lives outside the core; callers hand in an already validated
// value source.
type CardSource interface {
	CardNumber(ctx context.Context) (string, error)
}

// StaticCardSource is a CardSource over an already collected card number.
type StaticCardSource string

func (s StaticCardSource) CardNumber(ctx context.Context) (string, error) {
	return string(s), nil
}

// Resolve maps a method to its strategy. The choice is made once per order
// and fixed for the order's lifetime.
func Resolve(method Method, cards CardSource) (order.PaymentStrategy, error) {
	switch method {
	case MethodCard:
		return &ByCard{cards: cards}, nil
	case MethodCashOnDelivery:
		return CashOnDelivery{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

// ByCard collects card credentials and, on success, marks the order paid,
// which triggers the order's observer notification.
type ByCard struct {
	cards CardSource
	card  string
}

func (p *ByCard) StartPayment(ctx context.Context, o *order.Order) error {
	card, err := p.cards.CardNumber(ctx)
	if err != nil {
		return fmt.Errorf("payment: collect card number: %w", err)
	}
	p.card = card

	return o.SetStatus(order.StatusPaid)
}

func (p *ByCard) Name() string { return string(MethodCard) }

// CashOnDelivery is purely informational: payment happens at handover, so no
// status mutation takes place here.
type CashOnDelivery struct{}

func (CashOnDelivery) StartPayment(ctx context.Context, o *order.Order) error {
	return nil
}

func (CashOnDelivery) Name() string { return string(MethodCashOnDelivery) }
