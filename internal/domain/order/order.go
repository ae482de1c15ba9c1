package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yavorskyi/shopcore/internal/domain/cart"
)

var (
	ErrNotFound  = errors.New("order: not found")
	ErrEmptyCart = errors.New("order: your cart is empty")
)

// Common status values. Status itself is free-form: SetStatus accepts any
// string and there is no transition table.
const (
	StatusCreated = "created"
	StatusPaid    = "paid"
)

// StatusObserver is notified synchronously on every status change.
type StatusObserver interface {
	Update(status, email string) error
}

// PaymentStrategy runs the payment step for an order. A strategy that
// confirms payment is expected to set the order's status itself.
type PaymentStrategy interface {
	StartPayment(ctx context.Context, o *Order) error
	Name() string
}

// DeliveryStrategy collects the destination reference for an order.
type DeliveryStrategy interface {
	CollectAddress(ctx context.Context) (string, error)
	Name() string
}

// Order snapshots a cart together with a contact email and the strategies
// selected at creation time. Constructing an order irreversibly depletes
// catalog stock for every captured line; payment confirmation plays no part
// in that.
type Order struct {
	ID        string
	Email     string
	CreatedAt time.Time

	cart      *cart.Cart
	payment   PaymentStrategy
	delivery  DeliveryStrategy
	status    string
	observers []StatusObserver
	address   string
}

// New captures the cart by reference and depletes stock immediately.
func New(id string, c *cart.Cart, email string, payment PaymentStrategy, delivery DeliveryStrategy) *Order {
	o := &Order{
		ID:        id,
		Email:     email,
		CreatedAt: time.Now().UTC(),
		cart:      c,
		payment:   payment,
		delivery:  delivery,
		status:    StatusCreated,
	}
	o.cart.DepleteStock()
	return o
}

func (o *Order) Cart() *cart.Cart { return o.cart }

func (o *Order) TotalPrice() decimal.Decimal { return o.cart.TotalPrice() }

func (o *Order) Status() string { return o.status }

// Address returns the delivery destination collected by CollectAddress.
func (o *Order) Address() string { return o.address }

// SetStatus overwrites the status and notifies every registered observer in
// registration order with the new status and the order's email. Notification
// is synchronous and unisolated: an observer failure aborts the fan-out and
// propagates to the caller.
func (o *Order) SetStatus(status string) error {
	o.status = status
	for _, observer := range o.observers {
		if err := observer.Update(o.status, o.Email); err != nil {
			return fmt.Errorf("order: notify observer: %w", err)
		}
	}
	return nil
}

// RegisterObserver appends an observer to the notification list.
func (o *Order) RegisterObserver(observer StatusObserver) {
	o.observers = append(o.observers, observer)
}

// RemoveObserver drops a registered observer; removing an unknown observer
// is a no-op.
func (o *Order) RemoveObserver(observer StatusObserver) {
	for i, existing := range o.observers {
		if existing == observer {
			o.observers = append(o.observers[:i], o.observers[i+1:]...)
			return
		}
	}
}

// StartPayment runs the payment strategy bound at creation time.
func (o *Order) StartPayment(ctx context.Context) error {
	return o.payment.StartPayment(ctx, o)
}

// CollectAddress runs the delivery strategy and retains the destination for
// display.
func (o *Order) CollectAddress(ctx context.Context) error {
	address, err := o.delivery.CollectAddress(ctx)
	if err != nil {
		return fmt.Errorf("order: collect delivery address: %w", err)
	}
	o.address = address
	return nil
}

func (o *Order) PaymentMethod() string  { return o.payment.Name() }
func (o *Order) DeliveryMethod() string { return o.delivery.Name() }

// Info dumps the order including its current status.
func (o *Order) Info() string {
	return fmt.Sprintf("Order{id=%s, cart=%s, email=%q, payment=%s, delivery=%s, address=%q, status=%s}",
		o.ID, o.cart, o.Email, o.payment.Name(), o.delivery.Name(), o.address, o.status)
}
