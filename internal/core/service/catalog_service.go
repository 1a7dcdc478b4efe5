package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/qvo1811/restaurant-backend/internal/core/domain"
	"github.com/qvo1811/restaurant-backend/internal/port"
)

// CatalogService manages the product catalog. Admin gating happens in the
// access policy at the boundary.
type CatalogService struct {
	products port.CatalogRepository
	images   port.ImageStore
	clock    func() time.Time
}

func NewCatalogService(products port.CatalogRepository, images port.ImageStore) *CatalogService {
	return &CatalogService{
		products: products,
		images:   images,
		clock:    time.Now,
	}
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	IsActive    bool
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	IsActive    *bool
}

// List returns the full catalog for admins, only active products otherwise.
func (s *CatalogService) List(ctx context.Context, isAdmin bool) ([]domain.Product, error) {
	if isAdmin {
		return s.products.GetAll(ctx)
	}
	return s.products.GetActive(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	if in.Name == "" {
		return domain.Product{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if in.Price.IsNegative() {
		return domain.Product{}, fmt.Errorf("%w: price must be greater than or equal to 0", domain.ErrValidation)
	}
	if in.Stock < 0 {
		return domain.Product{}, fmt.Errorf("%w: stock must be greater than or equal to 0", domain.ErrValidation)
	}

	product := domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		IsActive:    in.IsActive,
		CreatedAt:   s.clock().UTC(),
	}
	return s.products.Create(ctx, product)
}

// Update applies only the provided fields.
func (s *CatalogService) Update(ctx context.Context, id int64, in UpdateProductInput) (domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return domain.Product{}, fmt.Errorf("%w: price must be greater than or equal to 0", domain.ErrValidation)
		}
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return domain.Product{}, fmt.Errorf("%w: stock must be greater than or equal to 0", domain.ErrValidation)
		}
		product.Stock = *in.Stock
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	return s.products.Update(ctx, product)
}

// SetImage records a newly stored image and removes the previous one.
func (s *CatalogService) SetImage(ctx context.Context, id int64, url, key string) (domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if product.ImageKey != "" {
		if err := s.images.Delete(ctx, product.ImageKey); err != nil {
			return domain.Product{}, fmt.Errorf("delete old image: %w", err)
		}
	}

	product.ImageURL = url
	product.ImageKey = key
	return s.products.Update(ctx, product)
}

// Delete removes a product that no order references; referenced products
// must stay for the frozen order lines to resolve.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	referenced, err := s.products.HasOrders(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: cannot delete product with existing orders", domain.ErrConflict)
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product.ImageKey != "" {
		if err := s.images.Delete(ctx, product.ImageKey); err != nil {
			return fmt.Errorf("delete image: %w", err)
		}
	}

	return s.products.Delete(ctx, id)
}
