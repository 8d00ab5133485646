package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/department"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/order"
	"github.com/iota-uz/restaurant-admin/pkg/filtering"
)

// Backend field names.
const (
	FieldID              = "_id"
	FieldOrderID         = "orderId"
	FieldNumber          = "number"
	FieldUser            = "user"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldItems           = "items"
	FieldItemName        = "name"
	FieldItemQuantity    = "quantity"
	FieldTotalPrice      = "totalPrice"
	FieldDeliveryAddress = "deliveryAddress"
	FieldStatus          = "status"
	FieldCreatedAt       = "createdAt"
	FieldName            = "name"
	FieldDescription     = "description"
)

func stringField(rec map[string]any, key string) string {
	v, ok := rec[key]
	if !ok || v == nil {
		return ""
	}
	s, _ := filtering.Stringify(v)
	return s
}

func decimalField(v any) (*decimal.Decimal, bool) {
	if v == nil {
		return nil, false
	}
	var (
		d   decimal.Decimal
		err error
	)
	switch t := v.(type) {
	case json.Number:
		d, err = decimal.NewFromString(t.String())
	case float64:
		d = decimal.NewFromFloat(t)
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(t))
	default:
		s, ok := filtering.Stringify(v)
		if !ok {
			return nil, false
		}
		d, err = decimal.NewFromString(s)
	}
	if err != nil {
		return nil, false
	}
	return &d, true
}

// ParseTime accepts the timestamp layouts the backend emits; zero when absent or unparsable.
func ParseTime(v any) time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000Z0700", time.DateTime, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// toMoney converts a decimal amount to currency minor units.
func toMoney(d *decimal.Decimal, currency string) *money.Money {
	if d == nil {
		return nil
	}
	c := money.GetCurrency(currency)
	if c == nil {
		c = money.GetCurrency(money.USD)
	}
	minor := d.Shift(int32(c.Fraction)).Round(0).IntPart()
	return money.New(minor, c.Code)
}

func toCustomer(v any) *order.Customer {
	rec, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return &order.Customer{
		FirstName: stringField(rec, FieldFirstName),
		LastName:  stringField(rec, FieldLastName),
	}
}

func toLineItems(v any) []order.LineItem {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	items := make([]order.LineItem, 0, len(list))
	for _, entry := range list {
		rec, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		var name *string
		if raw, ok := rec[FieldItemName]; ok && raw != nil {
			if s, ok := filtering.Stringify(raw); ok {
				name = &s
			}
		}
		qty, _ := decimalField(rec[FieldItemQuantity])
		items = append(items, order.HydrateLineItem(name, qty))
	}
	return items
}

// ToDomainOrder maps a backend order record. Unknown statuses are kept verbatim.
func ToDomainOrder(rec map[string]any, currency string) (order.Order, error) {
	id := stringField(rec, FieldID)
	if id == "" {
		return order.Order{}, errors.Errorf("order record without %s", FieldID)
	}
	number := stringField(rec, FieldOrderID)
	if number == "" {
		number = stringField(rec, FieldNumber)
	}
	status := order.Status(stringField(rec, FieldStatus))
	if parsed, err := order.ParseStatus(string(status)); err == nil {
		status = parsed
	}
	total, _ := decimalField(rec[FieldTotalPrice])

	return order.Hydrate(
		id,
		number,
		toCustomer(rec[FieldUser]),
		toLineItems(rec[FieldItems]),
		toMoney(total, currency),
		stringField(rec, FieldDeliveryAddress),
		status,
		ParseTime(rec[FieldCreatedAt]),
		filtering.Record(rec),
	), nil
}

func ToDomainDepartment(rec map[string]any) (department.Department, error) {
	id := stringField(rec, FieldID)
	if id == "" {
		return department.Department{}, errors.Errorf("department record without %s", FieldID)
	}
	return department.Hydrate(
		id,
		stringField(rec, FieldName),
		stringField(rec, FieldDescription),
		ParseTime(rec[FieldCreatedAt]),
		filtering.Record(rec),
	), nil
}
