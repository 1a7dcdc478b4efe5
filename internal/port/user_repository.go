package port

import (
	"context"

	"github.com/qvo1811/restaurant-backend/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)

	GetByID(ctx context.Context, id int64) (domain.User, error)

	GetByEmail(ctx context.Context, email string) (domain.User, error)

	GetAll(ctx context.Context) ([]domain.User, error)

	Update(ctx context.Context, user domain.User) (domain.User, error)

	Delete(ctx context.Context, id int64) error

	EmailExists(ctx context.Context, email string) (bool, error)
}
