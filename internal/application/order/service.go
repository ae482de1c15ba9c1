package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	domaincart "github.com/yavorskyi/shopcore/internal/domain/cart"
	"github.com/yavorskyi/shopcore/internal/domain/delivery"
	domevent "github.com/yavorskyi/shopcore/internal/domain/event"
	domain "github.com/yavorskyi/shopcore/internal/domain/order"
	"github.com/yavorskyi/shopcore/internal/domain/payment"
	"github.com/yavorskyi/shopcore/internal/observability"
	"github.com/yavorskyi/shopcore/internal/observability/logctx"
)

// ErrEmailRequired rejects order creation without a notification address.
var ErrEmailRequired = errors.New("order: email is required")

const (
	useCaseOrderCreate = "order.create"
	useCaseOrderPay    = "order.pay"
	spanPrefix         = "UC."
	publishTimeout     = 300 * time.Millisecond
)

// Service creates orders from carts and drives their payment and status
// flows. Strategy selection happens once per order, at creation time.
type Service struct {
	registry    domain.Registry
	idGenerator IDGenerator
	publisher   domevent.Publisher
	observer    domain.StatusObserver
	tel         observability.Observability

	log          observability.Logger
	reqCounter   observability.Counter
	durHistogram observability.Histogram
}

// NewService wires the order service. The observer, when non-nil, is
// registered on every created order before any status change can happen.
func NewService(
	registry domain.Registry,
	idGen IDGenerator,
	publisher domevent.Publisher,
	observer domain.StatusObserver,
	tel observability.Observability,
) *Service {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Service{
		registry:     registry,
		idGenerator:  idGen,
		publisher:    publisher,
		observer:     observer,
		tel:          tel,
		log:          tel.Logger().With(observability.F("component", "order_service")),
		reqCounter:   tel.Metrics().Counter(observability.MUsecaseRequests),
		durHistogram: tel.Metrics().Histogram(observability.MUsecaseDuration),
	}
}

type CreateOrderInput struct {
	Cart           *domaincart.Cart
	Email          string
	PaymentMethod  payment.Method
	DeliveryMethod delivery.Method
	CardNumber     string
	Address        string
}

// CreateOrder validates the cart, resolves the payment and delivery
// strategies, constructs the order (which depletes catalog stock), registers
// it, and collects the delivery address.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (_ *domain.Order, err error) {
	logger := logctx.FromOr(ctx, s.log).With(observability.F("use_case", useCaseOrderCreate))

	ctx, span := s.tel.Tracer().Start(ctx, spanPrefix+"CreateOrder",
		attribute.String("use_case", useCaseOrderCreate),
	)
	start := time.Now()
	outcome := "success"

	defer func() {
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "OK")
		}
		span.End()

		s.reqCounter.Add(1,
			observability.L("use_case", useCaseOrderCreate),
			observability.L("outcome", outcome),
		)
		s.durHistogram.Observe(time.Since(start).Seconds(),
			observability.L("use_case", useCaseOrderCreate),
		)
	}()

	if input.Cart == nil || input.Cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	if input.Email == "" {
		return nil, ErrEmailRequired
	}

	paymentStrategy, err := payment.Resolve(input.PaymentMethod, payment.StaticCardSource(input.CardNumber))
	if err != nil {
		return nil, err
	}
	deliveryStrategy, err := delivery.Resolve(input.DeliveryMethod, delivery.StaticAddressSource(input.Address))
	if err != nil {
		return nil, err
	}

	entity := domain.New(s.idGenerator.NewID(), input.Cart, input.Email, paymentStrategy, deliveryStrategy)
	if s.observer != nil {
		entity.RegisterObserver(s.observer)
	}

	if err := s.registry.Append(ctx, entity); err != nil {
		logger.Error("order_append_failed", observability.F("order_id", entity.ID), observability.F("error", err))
		return nil, fmt.Errorf("order: register: %w", err)
	}

	if err := entity.CollectAddress(ctx); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.NewOrderCreatedEvent(entity))

	span.SetAttributes(attribute.String("order.id", entity.ID))
	logger.Info("order_created",
		observability.F("order_id", entity.ID),
		observability.F("total", entity.TotalPrice().String()),
		observability.F("payment", entity.PaymentMethod()),
		observability.F("delivery", entity.DeliveryMethod()),
	)

	return entity, nil
}

// StartPayment runs the order's payment strategy. A strategy that confirms
// payment flips the status (and thereby notifies observers) itself.
func (s *Service) StartPayment(ctx context.Context, orderID string) (err error) {
	logger := logctx.FromOr(ctx, s.log).With(observability.F("use_case", useCaseOrderPay))

	ctx, span := s.tel.Tracer().Start(ctx, spanPrefix+"StartPayment",
		attribute.String("use_case", useCaseOrderPay),
		attribute.String("order.id", orderID),
	)
	start := time.Now()
	outcome := "success"

	defer func() {
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "OK")
		}
		span.End()

		s.reqCounter.Add(1,
			observability.L("use_case", useCaseOrderPay),
			observability.L("outcome", outcome),
		)
		s.durHistogram.Observe(time.Since(start).Seconds(),
			observability.L("use_case", useCaseOrderPay),
		)
	}()

	entity, err := s.registry.Get(ctx, orderID)
	if err != nil {
		return err
	}

	before := entity.Status()
	if err := entity.StartPayment(ctx); err != nil {
		logger.Error("payment_failed", observability.F("order_id", orderID), observability.F("error", err))
		return err
	}

	if entity.Status() != before {
		s.publish(ctx, domain.NewOrderStatusChangedEvent(entity))
	}

	logger.Info("payment_started",
		observability.F("order_id", orderID),
		observability.F("status", entity.Status()),
	)
	return nil
}

// SetStatus overwrites an order's status, fanning out to its observers.
func (s *Service) SetStatus(ctx context.Context, orderID, status string) error {
	entity, err := s.registry.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err := entity.SetStatus(status); err != nil {
		return err
	}

	s.publish(ctx, domain.NewOrderStatusChangedEvent(entity))
	return nil
}

func (s *Service) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, errors.New("order: id is required")
	}
	return s.registry.Get(ctx, orderID)
}

func (s *Service) Orders(ctx context.Context) ([]*domain.Order, error) {
	return s.registry.List(ctx)
}

func (s *Service) publish(ctx context.Context, e domevent.Event) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, e); err != nil {
		logctx.FromOr(ctx, s.log).Warn("event_publish_failed",
			observability.F("event", e.EventName()),
			observability.F("error", err),
		)
	}
}
