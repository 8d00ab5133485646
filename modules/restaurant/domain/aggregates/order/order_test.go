package order

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/restaurant-admin/pkg/filtering"
)

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" pending ")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, st)

	st, err = ParseStatus("CANCELLED")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, st)

	_, err = ParseStatus("Shipped")
	require.ErrorIs(t, err, ErrInvalidStatus)
	assert.False(t, Status("Shipped").IsKnown())
}

func TestStatusActions(t *testing.T) {
	cases := []struct {
		status  Status
		confirm bool
		cancel  bool
	}{
		{StatusPending, true, true},
		{StatusConfirmed, false, true},
		{StatusDelivered, false, false},
		{StatusCancelled, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.status.String(), func(t *testing.T) {
			assert.Equal(t, tc.confirm, tc.status.CanConfirm())
			assert.Equal(t, tc.cancel, tc.status.CanCancel())
		})
	}
}

func TestCustomerNames(t *testing.T) {
	var missing *Customer
	assert.Equal(t, "N/A", missing.DisplayName())
	assert.Equal(t, "N/A N/A", missing.FullName())

	c := &Customer{FirstName: "Jo"}
	assert.Equal(t, "Jo", c.DisplayName())
	assert.Equal(t, "Jo N/A", c.FullName())

	c = &Customer{FirstName: "Jo", LastName: "March"}
	assert.Equal(t, "Jo March", c.FullName())
}

func TestLineItemLabel(t *testing.T) {
	assert.Equal(t, "Soup (2)", NewLineItem("Soup", decimal.NewFromInt(2)).Label())
	name := "Tea"
	assert.Equal(t, "Tea (N/A)", HydrateLineItem(&name, nil).Label())
}

func sampleOrder() Order {
	raw := filtering.Record{
		"_id":     "64f0",
		"orderId": "A1",
		"user":    map[string]any{"firstName": "Jo"},
		"items":   []any{map[string]any{"name": "Soup", "quantity": json.Number("2")}},
		"status":  "Pending",
		"note":    nil,
	}
	return Hydrate("64f0", "A1", &Customer{FirstName: "Jo"},
		[]LineItem{NewLineItem("Soup", decimal.NewFromInt(2))},
		nil, "", StatusPending, sampleTime, raw)
}

func TestOrderMatches(t *testing.T) {
	o := sampleOrder()
	assert.True(t, filtering.Matches(o, "soup"))
	assert.True(t, filtering.Matches(o, "Jo"))
	assert.True(t, filtering.Matches(o, "PENDING"))
	assert.True(t, filtering.Matches(o, "2"))
	assert.False(t, filtering.Matches(o, "xyz"))
	assert.False(t, filtering.Matches(o, "null"))
	assert.False(t, filtering.Matches(o, "N/A"), "placeholders are not searchable")
}

func TestNestedSearchValues_NilParts(t *testing.T) {
	name := "Bread"
	o := Hydrate("1", "B2", nil, []LineItem{HydrateLineItem(&name, nil)}, nil, "", StatusPending, sampleTime, nil)
	assert.Equal(t, [][]any{{"Bread", nil}}, o.NestedSearchValues())
	assert.False(t, filtering.Matches(o, "bread"), "items with a missing part are skipped")
}
