package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/department"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/order"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/services"
	"github.com/iota-uz/restaurant-admin/pkg/eventbus"
	"github.com/iota-uz/restaurant-admin/pkg/filtering"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "backoffice-test")
	if err != nil {
		panic(err)
	}
	_ = os.Setenv("LOG_PATH", filepath.Join(dir, "app.log"))
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type fakeOrders struct {
	mu      sync.Mutex
	orders  []order.Order
	updated map[string]order.Status
	deleted []string
	fail    error
	reject  error
}

func (r *fakeOrders) GetAll(context.Context) ([]order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	return append([]order.Order(nil), r.orders...), nil
}

func (r *fakeOrders) UpdateStatus(_ context.Context, id string, status order.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reject != nil {
		return r.reject
	}
	r.updated[id] = status
	return nil
}

func (r *fakeOrders) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeDepartments struct {
	items []department.Department
}

func (r *fakeDepartments) GetAll(context.Context) ([]department.Department, error) {
	return r.items, nil
}

func (r *fakeDepartments) GetByID(_ context.Context, id string) (department.Department, error) {
	for _, d := range r.items {
		if d.ID() == id {
			return d, nil
		}
	}
	return department.Department{}, department.ErrNotFound
}

func (r *fakeDepartments) Create(context.Context, department.Department) error { return nil }

func (r *fakeDepartments) Update(context.Context, department.Department, department.Department) error {
	return nil
}

func (r *fakeDepartments) Delete(context.Context, string) error { return nil }

func sampleOrder(id, number, first string, status order.Status, item string, qty int64) order.Order {
	q := decimal.NewFromInt(qty)
	return order.Hydrate(
		id,
		number,
		&order.Customer{FirstName: first},
		[]order.LineItem{order.NewLineItem(item, q)},
		money.New(1250, money.USD),
		"Main St 1",
		status,
		time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		filtering.Record{"_id": id, "orderId": number, "status": string(status)},
	)
}

type harness struct {
	orders *fakeOrders
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func (h *harness) run(t *testing.T, stdin string, args ...string) error {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	bus := eventbus.NewEventPublisher(logger)
	build := func(*rootOptions) (*backoffice, error) {
		return &backoffice{
			orders: services.NewOrderService(h.orders, bus, 0, "2006-01-02"),
			departments: services.NewDepartmentService(&fakeDepartments{items: []department.Department{
				department.Hydrate("d1", "Kitchen", "Hot food", time.Time{}, nil),
				department.Hydrate("d2", "Bar", "Drinks", time.Time{}, nil),
			}}, bus, 0, "2006-01-02"),
			dateLayout: "2006-01-02",
		}, nil
	}
	cmd := newRootCmd(build)
	h.out.Reset()
	h.errOut.Reset()
	cmd.SetOut(h.out)
	cmd.SetErr(h.errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--token", "secret", "--user-type", "admin"}, args...))
	return cmd.ExecuteContext(context.Background())
}

func newHarness() *harness {
	return &harness{
		orders: &fakeOrders{
			orders: []order.Order{
				sampleOrder("o2", "1002", "Mia", order.StatusConfirmed, "Tea", 1),
				sampleOrder("o1", "1001", "Leo", order.StatusPending, "Soup", 2),
			},
			updated: map[string]order.Status{},
		},
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
}

func TestOrdersList(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.run(t, "", "orders", "list"))

	lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Order ID")
	assert.Contains(t, lines[1], "1001")
	assert.Contains(t, lines[1], "Soup (2)")
	assert.Contains(t, lines[2], "1002")
}

func TestOrdersList_Query(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.run(t, "", "orders", "list", "--query", "mia"))

	out := h.out.String()
	assert.Contains(t, out, "1002")
	assert.NotContains(t, out, "1001")
}

func TestOrdersList_RequiresToken(t *testing.T) {
	h := newHarness()
	cmd := newRootCmd(func(*rootOptions) (*backoffice, error) { return nil, errors.New("unreachable") })
	cmd.SetOut(h.out)
	cmd.SetErr(h.errOut)
	cmd.SetArgs([]string{"--token", " ", "orders", "list"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestOrdersConfirm_Prompt(t *testing.T) {
	h := newHarness()

	err := h.run(t, "n\n", "orders", "confirm", "o1")
	require.Error(t, err)
	assert.Equal(t, exitAborted, exitCode(err))
	assert.Empty(t, h.orders.updated)

	require.NoError(t, h.run(t, "y\n", "orders", "confirm", "o1"))
	assert.Equal(t, order.StatusConfirmed, h.orders.updated["o1"])
}

func TestOrdersCancel_Yes(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.run(t, "", "orders", "cancel", "o2", "--yes"))
	assert.Equal(t, order.StatusCancelled, h.orders.updated["o2"])
	assert.Contains(t, h.out.String(), "order o2: cancel done")
}

func TestOrdersConfirm_LeftToBackend(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.run(t, "", "orders", "list"))
	require.NoError(t, h.run(t, "", "orders", "confirm", "o2", "-y"))
	assert.Equal(t, order.StatusConfirmed, h.orders.updated["o2"])
}

func TestOrdersConfirm_InvalidStatus(t *testing.T) {
	h := newHarness()
	h.orders.reject = errors.Wrap(order.ErrInvalidStatus, "backend refused")
	err := h.run(t, "", "orders", "confirm", "o2", "-y")
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
	assert.Equal(t, exitBackend, exitCode(err))
}

func TestOrdersDelete(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.run(t, "", "orders", "delete", "o1", "--yes"))
	assert.Equal(t, []string{"o1"}, h.orders.deleted)
}

func TestOrdersExport_CSVToStdout(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.run(t, "", "orders", "export", "--format", "csv", "-o", "-"))

	records, err := csv.NewReader(bytes.NewReader(h.out.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Order ID", records[0][0])
}

func TestOrdersExport_ToDirectory(t *testing.T) {
	h := newHarness()
	dir := t.TempDir()
	require.NoError(t, h.run(t, "", "orders", "export", "--format", "xlsx", "-o", dir))

	path := strings.TrimSpace(h.errOut.String())
	require.True(t, strings.HasPrefix(path, dir), path)
	require.True(t, strings.HasSuffix(path, ".xlsx"), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestOrdersExport_UnknownFormat(t *testing.T) {
	h := newHarness()
	err := h.run(t, "", "orders", "export", "--format", "docx", "-o", "-")
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestOrdersList_BackendFailure(t *testing.T) {
	h := newHarness()
	h.orders.fail = errors.New("connection refused")
	err := h.run(t, "", "orders", "list")
	require.Error(t, err)
	assert.Equal(t, exitBackend, exitCode(err))
}

func TestDepartmentsList(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.run(t, "", "departments", "list", "--query", "drinks"))

	out := h.out.String()
	assert.Contains(t, out, "Bar")
	assert.NotContains(t, out, "Kitchen")
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	for input, want := range map[string]bool{"y\n": true, "YES\n": true, "\n": false, "no\n": false, "": false} {
		ok, err := confirm(strings.NewReader(input), &out, "Go?")
		require.NoError(t, err)
		assert.Equal(t, want, ok, "input %q", input)
	}
	assert.Contains(t, out.String(), "Go? [y/N]: ")
}
