package order

import (
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/iota-uz/restaurant-admin/pkg/filtering"
)

// MissingPart stands in for an absent customer name part or line item value.
const MissingPart = "N/A"

type Customer struct {
	FirstName string
	LastName  string
}

// DisplayName is what the grid shows: the first name only.
func (c *Customer) DisplayName() string {
	if c == nil || c.FirstName == "" {
		return MissingPart
	}
	return c.FirstName
}

// FullName is "<first> <last>" with each missing part replaced by N/A.
func (c *Customer) FullName() string {
	first, last := MissingPart, MissingPart
	if c != nil {
		if c.FirstName != "" {
			first = c.FirstName
		}
		if c.LastName != "" {
			last = c.LastName
		}
	}
	return first + " " + last
}

// searchName joins the present name parts; placeholders are not searchable.
func (c *Customer) searchName() any {
	if c == nil {
		return nil
	}
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return nil
	}
	return name
}

type LineItem struct {
	name     *string
	quantity *decimal.Decimal
}

func NewLineItem(name string, quantity decimal.Decimal) LineItem {
	return LineItem{name: &name, quantity: &quantity}
}

// HydrateLineItem builds an item whose parts may be absent.
func HydrateLineItem(name *string, quantity *decimal.Decimal) LineItem {
	return LineItem{name: name, quantity: quantity}
}

func (l LineItem) Name() (string, bool) {
	if l.name == nil {
		return "", false
	}
	return *l.name, true
}

func (l LineItem) Quantity() (decimal.Decimal, bool) {
	if l.quantity == nil {
		return decimal.Zero, false
	}
	return *l.quantity, true
}

// Label renders "name (quantity)".
func (l LineItem) Label() string {
	name, qty := MissingPart, MissingPart
	if l.name != nil {
		name = *l.name
	}
	if l.quantity != nil {
		qty = l.quantity.String()
	}
	return name + " (" + qty + ")"
}

type Order struct {
	id              string
	number          string
	customer        *Customer
	items           []LineItem
	totalPrice      *money.Money
	deliveryAddress string
	status          Status
	createdAt       time.Time
	raw             filtering.Record
}

// Hydrate assembles an order read from the backend. raw keeps the record as
// received so search and export see every field.
func Hydrate(
	id string,
	number string,
	customer *Customer,
	items []LineItem,
	totalPrice *money.Money,
	deliveryAddress string,
	status Status,
	createdAt time.Time,
	raw filtering.Record,
) Order {
	if raw == nil {
		raw = filtering.Record{}
	}
	return Order{
		id:              id,
		number:          number,
		customer:        customer,
		items:           items,
		totalPrice:      totalPrice,
		deliveryAddress: deliveryAddress,
		status:          status,
		createdAt:       createdAt,
		raw:             raw,
	}
}

func (o Order) ID() string                { return o.id }
func (o Order) Number() string            { return o.number }
func (o Order) Customer() *Customer       { return o.customer }
func (o Order) Items() []LineItem         { return o.items }
func (o Order) TotalPrice() *money.Money  { return o.totalPrice }
func (o Order) DeliveryAddress() string   { return o.deliveryAddress }
func (o Order) Status() Status            { return o.status }
func (o Order) CreatedAt() time.Time      { return o.createdAt }
func (o Order) Raw() filtering.Record     { return o.raw }
func (o Order) Field(name string) any     { return o.raw[name] }
func (o Order) WithStatus(s Status) Order { o.status = s; return o }

// SearchValues returns the top-level fields plus the customer name, so a
// query for a customer's first name finds the order.
func (o Order) SearchValues() []any {
	values := o.raw.SearchValues()
	return append(values, o.customer.searchName())
}

func (o Order) NestedSearchValues() [][]any {
	out := make([][]any, 0, len(o.items))
	for _, item := range o.items {
		var name, qty any
		if item.name != nil {
			name = *item.name
		}
		if item.quantity != nil {
			qty = item.quantity.String()
		}
		out = append(out, []any{name, qty})
	}
	return out
}
