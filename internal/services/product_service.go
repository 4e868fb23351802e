package services

import (
	"context"
	"errors"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/logx"
)

// Client-facing product messages.
const (
	MsgProductRequired  = "Product Name and Price are required!"
	MsgProductNotFound  = "Product not found"
	MsgProductFetchErr  = "Database fetch error"
	MsgProductInsertErr = "Database insert error"
	MsgProductUpdateErr = "Database update error"
	MsgProductDeleteErr = "Database delete error"
)

// ProductCache is an optional read-through cache for the product list.
type ProductCache interface {
	Get(ctx context.Context) ([]models.Product, bool, error)
	Set(ctx context.Context, products []models.Product) error
	Invalidate(ctx context.Context) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo  repositories.ProductRepository
	cache ProductCache
}

// NewProductService creates a new ProductService. cache may be nil.
func NewProductService(repo repositories.ProductRepository, cache ProductCache) *ProductService {
	return &ProductService{
		repo:  repo,
		cache: cache,
	}
}

// GetAllProducts returns every product, from the cache when possible.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		products, ok, err := s.cache.Get(ctx)
		if err != nil {
			logx.Warn().Err(err).Msg("product cache read failed")
		} else if ok {
			return products, nil
		}
	}

	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Internal(MsgProductFetchErr, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, products); err != nil {
			logx.Warn().Err(err).Msg("product cache write failed")
		}
	}
	return products, nil
}

// CreateProduct inserts a product. Name and a non-zero price are required.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Name == nil || *product.Name == "" ||
		product.Price == nil || product.Price.IsZero() {
		return apperr.Invalid(MsgProductRequired)
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return apperr.Internal(MsgProductInsertErr, err)
	}
	s.invalidate(ctx)
	return nil
}

// UpdateProduct overwrites all fields of the product with the given id.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, product *models.Product) error {
	if err := s.repo.Update(ctx, id, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.NotFound(MsgProductNotFound)
		}
		return apperr.Internal(MsgProductUpdateErr, err)
	}
	s.invalidate(ctx)
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.NotFound(MsgProductNotFound)
		}
		return apperr.Internal(MsgProductDeleteErr, err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logx.Warn().Err(err).Msg("product cache invalidation failed")
	}
}
