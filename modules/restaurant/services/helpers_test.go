package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/department"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/order"
	"github.com/iota-uz/restaurant-admin/pkg/eventbus"
	"github.com/iota-uz/restaurant-admin/pkg/filtering"
)

func allowAll(t *testing.T) {
	t.Helper()
	authorizeRestaurantFn = func(ctx context.Context, object, action string) error { return nil }
	t.Cleanup(func() { authorizeRestaurantFn = defaultAuthorizeRestaurant })
}

func newPublisher() eventbus.EventBusWithError {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return eventbus.NewEventPublisher(logger)
}

func strPtr(s string) *string { return &s }

func sampleOrder(id, number, first string, status order.Status, item string, qty int64) order.Order {
	q := decimal.NewFromInt(qty)
	raw := filtering.Record{
		"_id":     id,
		"orderId": number,
		"status":  string(status),
		"user":    map[string]any{"firstName": first},
	}
	return order.Hydrate(
		id,
		number,
		&order.Customer{FirstName: first},
		[]order.LineItem{order.HydrateLineItem(strPtr(item), &q)},
		money.New(1250, money.USD),
		"Main St 1",
		status,
		time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		raw,
	)
}

type fakeOrderRepo struct {
	mu       sync.Mutex
	orders   []order.Order
	fetches  atomic.Int32
	updates  map[string]order.Status
	deleted  []string
	failWith error
}

func newFakeOrderRepo(orders ...order.Order) *fakeOrderRepo {
	return &fakeOrderRepo{orders: orders, updates: map[string]order.Status{}}
}

func (r *fakeOrderRepo) GetAll(ctx context.Context) ([]order.Order, error) {
	r.fetches.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]order.Order(nil), r.orders...), nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.updates[id] = status
	for i, o := range r.orders {
		if o.ID() == id {
			r.orders[i] = o.WithStatus(status)
		}
	}
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeDepartmentRepo struct {
	departments []department.Department
	created     []department.Department
	updates     [][2]department.Department
	deleted     []string
	fetches     int
}

func (r *fakeDepartmentRepo) GetAll(ctx context.Context) ([]department.Department, error) {
	r.fetches++
	return append([]department.Department(nil), r.departments...), nil
}

func (r *fakeDepartmentRepo) GetByID(ctx context.Context, id string) (department.Department, error) {
	for _, d := range r.departments {
		if d.ID() == id {
			return d, nil
		}
	}
	return department.Department{}, department.ErrNotFound
}

func (r *fakeDepartmentRepo) Create(ctx context.Context, d department.Department) error {
	r.created = append(r.created, d)
	return nil
}

func (r *fakeDepartmentRepo) Update(ctx context.Context, before, after department.Department) error {
	r.updates = append(r.updates, [2]department.Department{before, after})
	return nil
}

func (r *fakeDepartmentRepo) Delete(ctx context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	return nil
}
