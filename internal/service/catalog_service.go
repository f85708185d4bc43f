package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rnzluv/ecom/internal/domain"
)

type CatalogService struct {
	products ProductStore
	logger   *zap.Logger
}

func NewCatalogService(products ProductStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		logger:   logger,
	}
}

// List filters by exact category and case-insensitive name substring.
func (s *CatalogService) List(ctx context.Context, category, search string) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, req domain.ProductRequest) (*domain.Product, error) {
	now := time.Now()
	product := &domain.Product{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Price:     req.Price,
		Stock:     req.Stock,
		Category:  req.Category,
		Image:     req.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.products.Put(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name))
	return product, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, req domain.ProductRequest) (*domain.Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Stock = req.Stock
	product.Category = req.Category
	product.Image = req.Image
	product.UpdatedAt = time.Now()

	if err := s.products.Put(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}
