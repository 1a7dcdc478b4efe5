package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int // informational, not decremented by order creation
	IsActive    bool
	ImageURL    string
	ImageKey    string
	CreatedAt   time.Time
}
