package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/order"
	"github.com/iota-uz/restaurant-admin/pkg/authz"
	"github.com/iota-uz/restaurant-admin/pkg/composables"
	"github.com/iota-uz/restaurant-admin/pkg/eventbus"
	"github.com/iota-uz/restaurant-admin/pkg/filtering"
)

type OrderService struct {
	repo       order.Repository
	publisher  eventbus.EventBus
	cache      *CollectionCache[order.Order]
	dateLayout string
}

func NewOrderService(repo order.Repository, publisher eventbus.EventBus, cacheTTL time.Duration, dateLayout string) *OrderService {
	return &OrderService{
		repo:       repo,
		publisher:  publisher,
		cache:      NewCollectionCache("orders", cacheTTL, repo.GetAll),
		dateLayout: dateLayout,
	}
}

// compareNumbers orders numeric order numbers numerically and falls back to text.
func compareNumbers(a, b order.Order) int {
	da, errA := decimal.NewFromString(a.Number())
	db, errB := decimal.NewFromString(b.Number())
	switch {
	case errA == nil && errB == nil:
		return da.Cmp(db)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a.Number(), b.Number())
}

// List returns the orders matching query, sorted by order number.
func (s *OrderService) List(ctx context.Context, query string) ([]order.Order, error) {
	if err := authorizeRestaurant(ctx, authz.OrdersObject, authz.ActionView); err != nil {
		return nil, err
	}
	all, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := filtering.Filter(all, query)
	slices.SortStableFunc(out, compareNumbers)
	return out, nil
}

// cachedStatus is the last status this session saw for id, or "" when the
// order is not cached. It never triggers a fetch.
func (s *OrderService) cachedStatus(ctx context.Context, id string) order.Status {
	all, ok := s.cache.Peek(ctx)
	if !ok {
		return ""
	}
	for _, o := range all {
		if o.ID() == id {
			return o.Status()
		}
	}
	return ""
}

func (s *OrderService) Confirm(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, order.StatusConfirmed)
}

func (s *OrderService) Cancel(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, order.StatusCancelled)
}

// setStatus always asks the backend; it decides whether the change is legal.
func (s *OrderService) setStatus(ctx context.Context, id string, to order.Status) error {
	if err := authorizeRestaurant(ctx, authz.OrdersObject, authz.ActionUpdate); err != nil {
		return err
	}
	from := s.cachedStatus(ctx, id)

	defer s.cache.Invalidate()
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		composables.UseLogger(ctx).WithError(err).WithField("order", id).Error("order status update failed")
		return err
	}
	s.publisher.Publish(order.NewStatusChangedEvent(id, from, to, userType(ctx)))
	return nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := authorizeRestaurant(ctx, authz.OrdersObject, authz.ActionDelete); err != nil {
		return err
	}
	defer s.cache.Invalidate()
	if err := s.repo.Delete(ctx, id); err != nil {
		composables.UseLogger(ctx).WithError(err).WithField("order", id).Error("order delete failed")
		return err
	}
	s.publisher.Publish(order.NewDeletedEvent(id, userType(ctx)))
	return nil
}

// Export renders the orders matching query in the given format.
func (s *OrderService) Export(ctx context.Context, query, format string) (*ExportFile, error) {
	if err := authorizeRestaurant(ctx, authz.OrdersObject, authz.ActionExport); err != nil {
		return nil, err
	}
	orders, err := s.List(ctx, query)
	if err != nil {
		return nil, err
	}
	return render(OrderReport(orders, OrderColumns, s.dateLayout), format)
}

// Refresh drops cached orders so the next read goes to the backend.
func (s *OrderService) Refresh() {
	s.cache.Invalidate()
}
