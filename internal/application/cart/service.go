package cart

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/yavorskyi/shopcore/internal/domain/cart"
	domaincatalog "github.com/yavorskyi/shopcore/internal/domain/catalog"
	"github.com/yavorskyi/shopcore/internal/pkg/logging"
)

// IDGenerator issues identifiers for new carts.
type IDGenerator interface {
	NewID() string
}

// Store tracks live carts by id.
type Store interface {
	Put(ctx context.Context, id string, cart *domain.Cart)
	Get(ctx context.Context, id string) (*domain.Cart, error)
}

// Service exposes cart operations keyed by cart id. The quantity/stock rules
// live entirely in the cart domain type; this layer resolves ids to the
// shared instances.
type Service struct {
	store       Store
	catalog     domaincatalog.Repository
	idGenerator IDGenerator
}

func NewService(store Store, catalog domaincatalog.Repository, idGen IDGenerator) *Service {
	return &Service{
		store:       store,
		catalog:     catalog,
		idGenerator: idGen,
	}
}

// Create opens an empty cart and returns its id.
func (s *Service) Create(ctx context.Context) string {
	id := s.idGenerator.NewID()
	s.store.Put(ctx, id, domain.New())

	logging.FromContext(ctx).With(zap.String("component", "cart_service")).Info("cart_created", zap.String("cart_id", id))
	return id
}

func (s *Service) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.store.Get(ctx, cartID)
}

// AddProduct resolves the product and delegates to the cart's stock-checked
// add.
func (s *Service) AddProduct(ctx context.Context, cartID, productID string, quantity int) error {
	c, err := s.store.Get(ctx, cartID)
	if err != nil {
		return err
	}
	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return err
	}

	if err := c.AddProduct(product, quantity); err != nil {
		return err
	}

	logging.FromContext(ctx).With(zap.String("component", "cart_service")).Info("cart_product_added",
		zap.String("cart_id", cartID), zap.String("product_id", productID), zap.Int("quantity", quantity))
	return nil
}

// ChangeQuantity adjusts the line holding the product; zero removes it.
func (s *Service) ChangeQuantity(ctx context.Context, cartID, productID string, newQuantity int) error {
	c, line, err := s.line(ctx, cartID, productID)
	if err != nil {
		return err
	}
	return c.ChangeQuantity(line, newQuantity)
}

// RemoveProduct drops the line holding the product.
func (s *Service) RemoveProduct(ctx context.Context, cartID, productID string) error {
	c, line, err := s.line(ctx, cartID, productID)
	if err != nil {
		return err
	}
	c.RemoveLine(line)
	return nil
}

// Report returns the cart's display lines; empty carts report an error.
func (s *Service) Report(ctx context.Context, cartID string) ([]string, error) {
	c, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return c.Report()
}

func (s *Service) line(ctx context.Context, cartID, productID string) (*domain.Cart, *domain.Line, error) {
	c, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, nil, err
	}
	for _, line := range c.Lines() {
		if line.Product.ID == productID {
			return c, line, nil
		}
	}
	return nil, nil, fmt.Errorf("cart: no line for product %s: %w", productID, domaincatalog.ErrNotFound)
}
