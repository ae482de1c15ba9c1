package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domain "github.com/yavorskyi/shopcore/internal/domain/catalog"
	"github.com/yavorskyi/shopcore/internal/pkg/logging"
)

// IDGenerator issues identifiers for new catalog entries.
type IDGenerator interface {
	NewID() string
}

// Service owns the catalog: the product list plus the filter criteria and
// the swappable sort strategy that together form the browse pipeline.
type Service struct {
	repo        domain.Repository
	filter      *domain.FilterCriteria
	sort        domain.SortStrategy
	idGenerator IDGenerator
}

// NewService wires the catalog service. The filter may be nil (no filtering
// stage) and the initial sort strategy may be nil (no sorting stage).
func NewService(repo domain.Repository, filter *domain.FilterCriteria, initialSort domain.SortStrategy, idGen IDGenerator) *Service {
	return &Service{
		repo:        repo,
		filter:      filter,
		sort:        initialSort,
		idGenerator: idGen,
	}
}

type AddProductInput struct {
	Title       string
	Price       decimal.Decimal
	Description string
	Brand       string
	Category    string
	Stock       int
	Image       string
}

// AddProduct validates the attributes through the domain constructor and
// stores the product under a generated identifier.
func (s *Service) AddProduct(ctx context.Context, input AddProductInput) (*domain.Product, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "catalog_service"))

	product, err := domain.New(
		s.idGenerator.NewID(),
		input.Title,
		input.Price,
		input.Brand,
		input.Category,
		input.Stock,
		domain.WithDescription(input.Description),
		domain.WithImage(input.Image),
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Add(ctx, product); err != nil {
		logger.Error("product_add_failed", zap.String("product_id", product.ID), zap.Error(err))
		return nil, fmt.Errorf("catalog: add: %w", err)
	}

	logger.Info("product_added", zap.String("product_id", product.ID), zap.String("title", product.Title))
	return product, nil
}

// RemoveProduct drops a catalog entry. No stock or cart consistency checks
// happen here; carts holding the product keep their reference.
func (s *Service) RemoveProduct(ctx context.Context, id string) error {
	logger := logging.FromContext(ctx).With(zap.String("component", "catalog_service"))

	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}

	logger.Info("product_removed", zap.String("product_id", id))
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.Get(ctx, id)
}

// SetStock is the admin-facing stock edit, the only stock mutation outside
// order depletion.
func (s *Service) SetStock(ctx context.Context, id string, stock int) error {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	return product.SetStock(stock)
}

// Products runs the browse pipeline: filtering first (when a filter is
// configured), then sorting (when a strategy is set). Each stage is
// independently optional.
func (s *Service) Products(ctx context.Context, nameSubstring string) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}

	if s.filter != nil {
		products = s.filter.Apply(products, nameSubstring)
	}

	if s.sort != nil {
		products = s.sort.Sort(products)
	}

	return products, nil
}

// Filter exposes the criteria set for mutation by the caller; nil when the
// service was built without a filtering stage.
func (s *Service) Filter() *domain.FilterCriteria { return s.filter }

func (s *Service) SortStrategy() domain.SortStrategy { return s.sort }

// SetSortStrategy swaps the ordering at runtime; nil disables sorting.
func (s *Service) SetSortStrategy(strategy domain.SortStrategy) { s.sort = strategy }
