package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/qvo1811/restaurant-backend/internal/core/domain"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (user_id, status, total, created_at)
		VALUES (?, ?, ?, ?)`,
		order.UserID, order.Status, order.Total.String(), order.CreatedAt,
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		return domain.Order{}, fmt.Errorf("order id: %w", err)
	}
	order.ID = orderID

	for i, line := range order.Lines {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES (?, ?, ?, ?)`,
			orderID, line.ProductID, line.Quantity, line.UnitPrice.String(),
		)
		if err != nil {
			return domain.Order{}, fmt.Errorf("insert order item: %w", err)
		}
		lineID, err := result.LastInsertId()
		if err != nil {
			return domain.Order{}, fmt.Errorf("order item id: %w", err)
		}
		order.Lines[i].ID = lineID
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit: %w", err)
	}
	return order, nil
}

func (r *MySQLOrderRepository) GetByID(ctx context.Context, id int64) (domain.Order, error) {
	var (
		order domain.Order
		total string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, status, total, created_at
		FROM orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.UserID, &order.Status, &total, &order.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("query order: %w", err)
	}

	order.Total, err = decimal.NewFromString(total)
	if err != nil {
		return domain.Order{}, fmt.Errorf("parse total: %w", err)
	}
	return order, nil
}

func (r *MySQLOrderRepository) GetByIDWithLines(ctx context.Context, id int64) (domain.Order, error) {
	var (
		order domain.Order
		total string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT o.id, o.user_id, u.name, o.status, o.total, o.created_at
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = ?`, id,
	).Scan(&order.ID, &order.UserID, &order.UserName, &order.Status, &total, &order.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("query order: %w", err)
	}

	order.Total, err = decimal.NewFromString(total)
	if err != nil {
		return domain.Order{}, fmt.Errorf("parse total: %w", err)
	}

	order.Lines, err = r.loadLines(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (r *MySQLOrderRepository) GetAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `
		SELECT o.id, o.user_id, u.name, o.status, o.total, o.created_at
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC, o.id DESC`)
}

func (r *MySQLOrderRepository) GetByOwner(ctx context.Context, userID int64) ([]domain.Order, error) {
	return r.list(ctx, `
		SELECT o.id, o.user_id, u.name, o.status, o.total, o.created_at
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.user_id = ?
		ORDER BY o.created_at DESC, o.id DESC`, userID)
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	// RowsAffected is zero both for a missing row and for a same-status
	// update, so existence is checked by the read-back instead.
	if _, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = ? WHERE id = ?`, status, id,
	); err != nil {
		return domain.Order{}, fmt.Errorf("update order status: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *MySQLOrderRepository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var (
			order domain.Order
			total string
		)
		if err := rows.Scan(&order.ID, &order.UserID, &order.UserName, &order.Status, &total, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		order.Total, err = decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("parse total: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	for i := range orders {
		orders[i].Lines, err = r.loadLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *MySQLOrderRepository) loadLines(ctx context.Context, orderID int64) ([]domain.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.product_id, p.name, oi.quantity, oi.unit_price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var (
			line  domain.OrderLine
			price string
		)
		if err := rows.Scan(&line.ID, &line.ProductID, &line.ProductName, &line.Quantity, &price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		line.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse unit price: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}
	return lines, nil
}
