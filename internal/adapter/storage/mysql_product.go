package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/qvo1811/restaurant-backend/internal/core/domain"
)

type MySQLProductRepository struct {
	db *sql.DB
}

func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

const productColumns = "id, name, description, price, stock, is_active, image_url, image_key, created_at"

func (r *MySQLProductRepository) GetByID(ctx context.Context, id int64) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = ?`, id)

	product, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("query product: %w", err)
	}
	return product, nil
}

func (r *MySQLProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

func (r *MySQLProductRepository) GetActive(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE is_active ORDER BY id`)
}

func (r *MySQLProductRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO products (name, description, price, stock, is_active, image_url, image_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		product.Name, product.Description, product.Price.String(), product.Stock,
		product.IsActive, product.ImageURL, product.ImageKey, product.CreatedAt,
	)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	product.ID, err = result.LastInsertId()
	if err != nil {
		return domain.Product{}, fmt.Errorf("product id: %w", err)
	}
	return product, nil
}

func (r *MySQLProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, description = ?, price = ?, stock = ?, is_active = ?, image_url = ?, image_key = ?
		WHERE id = ?`,
		product.Name, product.Description, product.Price.String(), product.Stock,
		product.IsActive, product.ImageURL, product.ImageKey, product.ID,
	)
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		// Same-value updates also report zero rows; confirm existence.
		if _, err := r.GetByID(ctx, product.ID); err != nil {
			return domain.Product{}, err
		}
	}
	return product, nil
}

func (r *MySQLProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *MySQLProductRepository) HasOrders(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM order_items WHERE product_id = ?)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query product orders: %w", err)
	}
	return exists, nil
}

func (r *MySQLProductRepository) list(ctx context.Context, query string) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func scanProduct(scan func(...any) error) (domain.Product, error) {
	var (
		product domain.Product
		price   string
	)
	err := scan(&product.ID, &product.Name, &product.Description, &price,
		&product.Stock, &product.IsActive, &product.ImageURL, &product.ImageKey, &product.CreatedAt)
	if err != nil {
		return domain.Product{}, err
	}

	product.Price, err = decimal.NewFromString(price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("parse price: %w", err)
	}
	return product, nil
}
