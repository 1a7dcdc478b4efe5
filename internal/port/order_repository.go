package port

import (
	"context"

	"github.com/qvo1811/restaurant-backend/internal/core/domain"
)

type OrderRepository interface {
	// Create persists the order and its lines in a single transaction and
	// returns the order with ids assigned.
	Create(ctx context.Context, order domain.Order) (domain.Order, error)

	// GetByID retrieves the order row without its lines.
	GetByID(ctx context.Context, id int64) (domain.Order, error)

	// GetByIDWithLines retrieves the order with lines and resolved
	// product and user names.
	GetByIDWithLines(ctx context.Context, id int64) (domain.Order, error)

	// GetAll returns every order, newest first, with lines.
	GetAll(ctx context.Context) ([]domain.Order, error)

	// GetByOwner returns the orders owned by userID, newest first, with lines.
	GetByOwner(ctx context.Context, userID int64) ([]domain.Order, error)

	// UpdateStatus persists a new status and returns the updated order row.
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error)
}
