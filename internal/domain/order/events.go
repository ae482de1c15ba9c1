package order

import "time"

// OrderCreatedEvent is emitted after an order has been registered. It feeds
// the audit trail, not the observer fan-out, which stays synchronous on the
// order itself.
type OrderCreatedEvent struct {
	OrderID    string
	Email      string
	Total      string
	Payment    string
	Delivery   string
	OccurredAt time.Time
}

func (OrderCreatedEvent) EventName() string { return "order.created" }

func NewOrderCreatedEvent(o *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:    o.ID,
		Email:      o.Email,
		Total:      o.TotalPrice().String(),
		Payment:    o.PaymentMethod(),
		Delivery:   o.DeliveryMethod(),
		OccurredAt: time.Now().UTC(),
	}
}

// OrderStatusChangedEvent is emitted after a status change completed,
// including its observer notifications.
type OrderStatusChangedEvent struct {
	OrderID    string
	Status     string
	OccurredAt time.Time
}

func (OrderStatusChangedEvent) EventName() string { return "order.status_changed" }

func NewOrderStatusChangedEvent(o *Order) OrderStatusChangedEvent {
	return OrderStatusChangedEvent{
		OrderID:    o.ID,
		Status:     o.Status(),
		OccurredAt: time.Now().UTC(),
	}
}
