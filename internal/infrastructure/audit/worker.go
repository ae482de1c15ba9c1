package audit

import (
	"context"

	domevent "github.com/yavorskyi/shopcore/internal/domain/event"
	domorder "github.com/yavorskyi/shopcore/internal/domain/order"
	"github.com/yavorskyi/shopcore/internal/observability"
	"github.com/yavorskyi/shopcore/internal/observability/logctx"
)

// Worker keeps an audit trail of order lifecycle events: every published
// event becomes a structured log line and a counter increment.
type Worker struct {
	subscriber domevent.Subscriber

	log          observability.Logger
	eventCounter observability.Counter
}

func New(subscriber domevent.Subscriber, tel observability.Observability) *Worker {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Worker{
		subscriber:   subscriber,
		log:          tel.Logger().With(observability.F("component", "audit_worker")),
		eventCounter: tel.Metrics().Counter(observability.MOrderEvents),
	}
}

func (w *Worker) Start() {
	if w.subscriber == nil {
		return
	}
	w.subscriber.Subscribe(domorder.OrderCreatedEvent{}.EventName(), w.handleOrderCreated)
	w.subscriber.Subscribe(domorder.OrderStatusChangedEvent{}.EventName(), w.handleStatusChanged)
}

func (w *Worker) handleOrderCreated(ctx context.Context, e domevent.Event) error {
	evt, ok := e.(domorder.OrderCreatedEvent)
	if !ok {
		return nil
	}

	w.eventCounter.Add(1, observability.L("event", evt.EventName()))
	logctx.FromOr(ctx, w.log).Info("order_created_audit",
		observability.F("order_id", evt.OrderID),
		observability.F("total", evt.Total),
		observability.F("payment", evt.Payment),
		observability.F("delivery", evt.Delivery),
	)
	return nil
}

func (w *Worker) handleStatusChanged(ctx context.Context, e domevent.Event) error {
	evt, ok := e.(domorder.OrderStatusChangedEvent)
	if !ok {
		return nil
	}

	w.eventCounter.Add(1, observability.L("event", evt.EventName()))
	logctx.FromOr(ctx, w.log).Info("order_status_audit",
		observability.F("order_id", evt.OrderID),
		observability.F("status", evt.Status),
	)
	return nil
}
