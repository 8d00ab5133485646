package mappers

import (
	"time"

	"github.com/iota-uz/restaurant-admin/components"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/department"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/order"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/viewmodels"
	"github.com/iota-uz/restaurant-admin/pkg/filtering"
)

var statusColors = map[order.Status]components.BadgeColor{
	order.StatusPending:   components.BadgeOrange,
	order.StatusConfirmed: components.BadgeGreen,
	order.StatusDelivered: components.BadgeBrown,
	order.StatusCancelled: components.BadgeRed,
}

func StatusColor(s order.Status) components.BadgeColor {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return components.BadgeGray
}

func formatTime(t time.Time, raw any, layout string) string {
	if t.IsZero() {
		s, _ := filtering.Stringify(raw)
		return s
	}
	return t.Format(layout)
}

// OrderToViewModel maps an order to its grid row. layout formats createdAt.
func OrderToViewModel(o order.Order, layout string) *viewmodels.Order {
	items := make([]string, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, item.Label())
	}
	total := ""
	if o.TotalPrice() != nil {
		total = o.TotalPrice().Display()
	} else if raw, ok := filtering.Stringify(o.Field("totalPrice")); ok {
		total = raw
	}
	return &viewmodels.Order{
		ID:              o.ID(),
		Number:          o.Number(),
		Customer:        o.Customer().DisplayName(),
		Items:           items,
		TotalPrice:      total,
		DeliveryAddress: o.DeliveryAddress(),
		Status:          o.Status().String(),
		StatusColor:     string(StatusColor(o.Status())),
		CreatedAt:       formatTime(o.CreatedAt(), o.Field("createdAt"), layout),
		CanConfirm:      o.Status().CanConfirm(),
		CanCancel:       o.Status().CanCancel(),
	}
}

func DepartmentToViewModel(d department.Department, layout string) *viewmodels.Department {
	return &viewmodels.Department{
		ID:          d.ID(),
		Name:        d.Name(),
		Description: d.Description(),
		CreatedAt:   formatTime(d.CreatedAt(), d.Field("createdAt"), layout),
	}
}
