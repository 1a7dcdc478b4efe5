package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/qvo1811/restaurant-backend/internal/core/domain"
)

// Mock CatalogRepository with full write support
type mockProductStore struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]domain.Product
	ordered  map[int64]bool // product id -> referenced by an order line
}

func newMockProductStore() *mockProductStore {
	return &mockProductStore{
		products: make(map[int64]domain.Product),
		ordered:  make(map[int64]bool),
	}
}

func (m *mockProductStore) GetByID(ctx context.Context, id int64) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (m *mockProductStore) GetAll(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Product
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductStore) GetActive(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Product
	for _, p := range m.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductStore) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	p.ID = m.nextID
	m.products[p.ID] = p
	return p, nil
}

func (m *mockProductStore) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", p.ID, domain.ErrNotFound)
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *mockProductStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

func (m *mockProductStore) HasOrders(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ordered[id], nil
}

// Mock ImageStore
type mockImageStore struct {
	mu      sync.Mutex
	deleted []string
}

func (m *mockImageStore) Save(ctx context.Context, filename string, r io.Reader) (string, string, error) {
	return "/images/" + filename, filename, nil
}

func (m *mockImageStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, key)
	return nil
}

func TestCreateProduct_Success(t *testing.T) {
	store := newMockProductStore()
	svc := NewCatalogService(store, &mockImageStore{})

	product, err := svc.Create(context.Background(), CreateProductInput{
		Name:     "margherita",
		Price:    decimal.RequireFromString("9.50"),
		Stock:    10,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.ID == 0 {
		t.Error("expected assigned id")
	}
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	svc := NewCatalogService(newMockProductStore(), &mockImageStore{})

	_, err := svc.Create(context.Background(), CreateProductInput{
		Name:  "margherita",
		Price: decimal.RequireFromString("-1"),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got: %v", err)
	}
}

func TestCreateProduct_NegativeStock(t *testing.T) {
	svc := NewCatalogService(newMockProductStore(), &mockImageStore{})

	_, err := svc.Create(context.Background(), CreateProductInput{
		Name:  "margherita",
		Price: decimal.RequireFromString("9.50"),
		Stock: -1,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got: %v", err)
	}
}

func TestListProducts_RoleAware(t *testing.T) {
	store := newMockProductStore()
	svc := NewCatalogService(store, &mockImageStore{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateProductInput{Name: "visible", Price: decimal.Zero, IsActive: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, CreateProductInput{Name: "hidden", Price: decimal.Zero, IsActive: false}); err != nil {
		t.Fatal(err)
	}

	all, err := svc.List(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("admin should see 2 products, got %d", len(all))
	}

	active, err := svc.List(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].Name != "visible" {
		t.Errorf("user should see only active products, got %v", active)
	}
}

func TestUpdateProduct_PartialFields(t *testing.T) {
	store := newMockProductStore()
	svc := NewCatalogService(store, &mockImageStore{})
	ctx := context.Background()

	product, err := svc.Create(ctx, CreateProductInput{Name: "margherita", Price: decimal.RequireFromString("9.50"), Stock: 5, IsActive: true})
	if err != nil {
		t.Fatal(err)
	}

	newPrice := decimal.RequireFromString("10.00")
	updated, err := svc.Update(ctx, product.ID, UpdateProductInput{Price: &newPrice})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.Price.Equal(newPrice) {
		t.Errorf("expected price 10.00, got %s", updated.Price)
	}
	if updated.Name != "margherita" || updated.Stock != 5 || !updated.IsActive {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateProduct_NegativePriceRejected(t *testing.T) {
	store := newMockProductStore()
	svc := NewCatalogService(store, &mockImageStore{})
	ctx := context.Background()

	product, err := svc.Create(ctx, CreateProductInput{Name: "margherita", Price: decimal.RequireFromString("9.50")})
	if err != nil {
		t.Fatal(err)
	}

	bad := decimal.RequireFromString("-0.01")
	if _, err := svc.Update(ctx, product.ID, UpdateProductInput{Price: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got: %v", err)
	}
}

func TestSetImage_ReplacesPrevious(t *testing.T) {
	store := newMockProductStore()
	images := &mockImageStore{}
	svc := NewCatalogService(store, images)
	ctx := context.Background()

	product, err := svc.Create(ctx, CreateProductInput{Name: "margherita", Price: decimal.Zero})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.SetImage(ctx, product.ID, "/images/a.jpg", "a.jpg"); err != nil {
		t.Fatalf("set image failed: %v", err)
	}
	updated, err := svc.SetImage(ctx, product.ID, "/images/b.jpg", "b.jpg")
	if err != nil {
		t.Fatalf("set image failed: %v", err)
	}

	if updated.ImageURL != "/images/b.jpg" || updated.ImageKey != "b.jpg" {
		t.Errorf("unexpected image fields: %+v", updated)
	}
	if len(images.deleted) != 1 || images.deleted[0] != "a.jpg" {
		t.Errorf("expected old image deleted, got %v", images.deleted)
	}
}

func TestDeleteProduct_RefusedWhenOrdered(t *testing.T) {
	store := newMockProductStore()
	svc := NewCatalogService(store, &mockImageStore{})
	ctx := context.Background()

	product, err := svc.Create(ctx, CreateProductInput{Name: "margherita", Price: decimal.Zero})
	if err != nil {
		t.Fatal(err)
	}
	store.ordered[product.ID] = true

	if err := svc.Delete(ctx, product.ID); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got: %v", err)
	}
}

func TestDeleteProduct_RemovesImage(t *testing.T) {
	store := newMockProductStore()
	images := &mockImageStore{}
	svc := NewCatalogService(store, images)
	ctx := context.Background()

	product, err := svc.Create(ctx, CreateProductInput{Name: "margherita", Price: decimal.Zero})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetImage(ctx, product.ID, "/images/a.jpg", "a.jpg"); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(images.deleted) != 1 || images.deleted[0] != "a.jpg" {
		t.Errorf("expected image removed on delete, got %v", images.deleted)
	}
}
