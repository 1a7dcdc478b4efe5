package service

import (
	"context"
	"fmt"
	"time"

	"github.com/qvo1811/restaurant-backend/internal/core/access"
	"github.com/qvo1811/restaurant-backend/internal/core/domain"
	"github.com/qvo1811/restaurant-backend/internal/core/notify"
	"github.com/qvo1811/restaurant-backend/internal/port"
)

const notifyTimeout = 5 * time.Second

// OrderService owns the order lifecycle: it validates creation against live
// catalog state, freezes prices into lines, computes totals, and enforces
// transition rules. Repositories persist, they never apply domain rules.
type OrderService struct {
	orders   port.OrderRepository
	catalog  port.CatalogRepository
	notifier port.Notifier
	clock    func() time.Time
}

func NewOrderService(orders port.OrderRepository, catalog port.CatalogRepository, notifier port.Notifier) *OrderService {
	return &OrderService{
		orders:   orders,
		catalog:  catalog,
		notifier: notifier,
		clock:    time.Now,
	}
}

type OrderLineInput struct {
	ProductID int64
	Quantity  int
}

// CreateOrder validates the requested lines against the catalog, snapshots
// the current unit price into each line, and persists the order as PENDING.
// Prices are never re-read after this point.
func (s *OrderService) CreateOrder(ctx context.Context, ownerID int64, inputs []OrderLineInput) (domain.Order, error) {
	if len(inputs) == 0 {
		return domain.Order{}, fmt.Errorf("%w: order must have at least one item", domain.ErrValidation)
	}

	order := domain.Order{
		UserID:    ownerID,
		Status:    domain.OrderStatusPending,
		CreatedAt: s.clock().UTC(),
	}

	for _, in := range inputs {
		if in.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: quantity must be greater than 0", domain.ErrValidation)
		}

		product, err := s.catalog.GetByID(ctx, in.ProductID)
		if err != nil {
			return domain.Order{}, err
		}
		if !product.IsActive {
			return domain.Order{}, fmt.Errorf("%w: product %q is not available", domain.ErrConflict, product.Name)
		}

		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			UnitPrice:   product.Price,
		})
	}

	order.Total = order.ComputeTotal()

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	hydrated, err := s.orders.GetByIDWithLines(ctx, created.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("reload order %d: %w", created.ID, err)
	}

	s.publish(notify.GroupAdmins, notify.Event{
		Name: notify.EventNewOrderReceived,
		Data: notify.NewOrderData{OrderID: created.ID},
	})

	return hydrated, nil
}

// GetOrder retrieves one order for a caller that is either an admin or the
// order's owner.
func (s *OrderService) GetOrder(ctx context.Context, caller access.Identity, id int64) (domain.Order, error) {
	order, err := s.orders.GetByIDWithLines(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if !access.Allowed(caller, access.OpReadOrder, order.UserID) {
		return domain.Order{}, fmt.Errorf("%w: you don't have access to this order", domain.ErrForbidden)
	}
	return order, nil
}

// ListOrders returns every order for admins, or the caller's own orders.
func (s *OrderService) ListOrders(ctx context.Context, caller access.Identity) ([]domain.Order, error) {
	if caller.IsAdmin() {
		return s.orders.GetAll(ctx)
	}
	return s.orders.GetByOwner(ctx, caller.UserID)
}

// UpdateStatus persists a new status for the order. Any status is accepted
// from any current status; the admin role gate runs in the access policy
// before this is invoked.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	updated, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return domain.Order{}, err
	}

	s.publishStatusChanged(updated.ID, updated.UserID, status)

	hydrated, err := s.orders.GetByIDWithLines(ctx, updated.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("reload order %d: %w", updated.ID, err)
	}
	return hydrated, nil
}

// Cancel transitions the order to CANCELLED, keeping the record for audit.
// Admins may cancel any order; owners only their own and only while PENDING.
func (s *OrderService) Cancel(ctx context.Context, caller access.Identity, id int64) error {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !access.Allowed(caller, access.OpCancelOrder, order.UserID) {
		return fmt.Errorf("%w: you don't have access to this order", domain.ErrForbidden)
	}
	if !caller.IsAdmin() && order.Status != domain.OrderStatusPending {
		return fmt.Errorf("%w: only pending orders can be cancelled", domain.ErrConflict)
	}

	if _, err := s.orders.UpdateStatus(ctx, id, domain.OrderStatusCancelled); err != nil {
		return err
	}

	s.publishStatusChanged(id, order.UserID, domain.OrderStatusCancelled)
	return nil
}

func (s *OrderService) publishStatusChanged(orderID, ownerID int64, status domain.OrderStatus) {
	data := notify.StatusChangedData{OrderID: orderID, Status: string(status)}
	s.publish(notify.GroupUser(ownerID), notify.Event{Name: notify.EventOrderStatusChanged, Data: data})
	s.publish(notify.GroupAdmins, notify.Event{Name: notify.EventDashboardUpdated, Data: data})
}

// publish dispatches off the request path. Delivery failures never affect
// the triggering operation.
func (s *OrderService) publish(group string, ev notify.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		s.notifier.Publish(ctx, group, ev)
	}()
}
