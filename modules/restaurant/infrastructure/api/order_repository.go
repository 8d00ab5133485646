package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-faster/errors"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/order"
	"github.com/iota-uz/restaurant-admin/pkg/backend"
	"github.com/iota-uz/restaurant-admin/pkg/composables"
)

const ordersPath = "/orders"

type OrderRepository struct {
	client   *backend.Client
	currency string
}

func NewOrderRepository(client *backend.Client, currency string) order.Repository {
	return &OrderRepository{client: client, currency: currency}
}

func orderPath(id string) string {
	return ordersPath + "/" + url.PathEscape(id)
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]order.Order, error) {
	records, err := r.client.GetCollection(ctx, ordersPath)
	if err != nil {
		return nil, errors.Wrap(err, "fetch orders")
	}
	logger := composables.UseLogger(ctx)
	orders := make([]order.Order, 0, len(records))
	for _, rec := range records {
		o, err := ToDomainOrder(rec, r.currency)
		if err != nil {
			logger.WithError(err).Warn("skipping malformed order record")
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	body := map[string]string{FieldStatus: string(status)}
	if err := r.client.Mutate(ctx, http.MethodPut, orderPath(id), body); err != nil {
		err = errors.Wrapf(err, "set order %s status", id)
		if rejectedTransition(err) {
			return errors.Wrap(order.ErrInvalidStatus, err.Error())
		}
		return mapNotFound(err, order.ErrNotFound)
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Mutate(ctx, http.MethodDelete, orderPath(id), nil); err != nil {
		return mapNotFound(errors.Wrapf(err, "delete order %s", id), order.ErrNotFound)
	}
	return nil
}

// rejectedTransition reports a backend refusing a status change (409 or 422).
func rejectedTransition(err error) bool {
	var se *backend.StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == http.StatusConflict || se.StatusCode == http.StatusUnprocessableEntity
}

// mapNotFound attaches the domain sentinel to a backend 404.
func mapNotFound(err, sentinel error) error {
	if errors.Is(err, backend.ErrNotFound) {
		return errors.Wrap(sentinel, err.Error())
	}
	return err
}
