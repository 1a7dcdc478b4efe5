package port

import (
	"context"

	"github.com/qvo1811/restaurant-backend/internal/core/domain"
)

type CatalogRepository interface {
	// GetByID retrieves one product; price and active flag reflect the row
	// as of call time.
	GetByID(ctx context.Context, id int64) (domain.Product, error)

	GetAll(ctx context.Context) ([]domain.Product, error)

	// GetActive returns only products available for ordering.
	GetActive(ctx context.Context) ([]domain.Product, error)

	Create(ctx context.Context, product domain.Product) (domain.Product, error)

	Update(ctx context.Context, product domain.Product) (domain.Product, error)

	Delete(ctx context.Context, id int64) error

	// HasOrders reports whether any order line references the product.
	HasOrders(ctx context.Context, id int64) (bool, error)
}
