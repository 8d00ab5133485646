package handlers

import (
	"net/http"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/department"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/order"
	"github.com/iota-uz/restaurant-admin/pkg/application"
	"github.com/iota-uz/restaurant-admin/pkg/eventbus"
)

type broadcast struct {
	channel string
	payload any
}

type recordingHub struct {
	mu   sync.Mutex
	sent []broadcast
}

func (h *recordingHub) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *recordingHub) Broadcast(channel string, payload any) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent = append(h.sent, broadcast{channel: channel, payload: payload})
	return 1
}

func setup(t *testing.T) (eventbus.EventBus, *recordingHub) {
	t.Helper()
	hub := &recordingHub{}
	bus := eventbus.NewEventPublisher(logrus.New())
	app := application.New(&application.ApplicationOptions{EventBus: bus, Huber: hub})
	RegisterRefreshHandlers(app, logrus.New())
	return bus, hub
}

func TestRefreshHandler_Orders(t *testing.T) {
	bus, hub := setup(t)

	bus.Publish(order.NewStatusChangedEvent("7", order.StatusPending, order.StatusConfirmed, "staff"))
	bus.Publish(order.NewDeletedEvent("8", "admin"))

	require.Len(t, hub.sent, 2)
	require.Equal(t, application.ChannelAuthenticated, hub.sent[0].channel)
	require.Equal(t, Notification{Event: OrdersChanged, ID: "7", Status: order.StatusConfirmed.String()}, hub.sent[0].payload)
	require.Equal(t, Notification{Event: OrdersChanged, ID: "8"}, hub.sent[1].payload)
}

func TestRefreshHandler_Departments(t *testing.T) {
	bus, hub := setup(t)

	bus.Publish(department.NewCreatedEvent(department.CreateDTO{Name: "Kitchen"}, "restaurant"))
	bus.Publish(department.NewUpdatedEvent("3", department.UpdateDTO{Name: "Bar"}, "restaurant"))
	bus.Publish(department.NewDeletedEvent("3", "restaurant"))

	require.Len(t, hub.sent, 3)
	require.Equal(t, Notification{Event: DepartmentsChanged}, hub.sent[0].payload)
	require.Equal(t, Notification{Event: DepartmentsChanged, ID: "3"}, hub.sent[1].payload)
	require.Equal(t, Notification{Event: DepartmentsChanged, ID: "3"}, hub.sent[2].payload)
}

func TestRefreshHandler_NoHub(t *testing.T) {
	bus := eventbus.NewEventPublisher(logrus.New())
	app := application.New(&application.ApplicationOptions{EventBus: bus})
	RegisterRefreshHandlers(app, nil)

	require.NotPanics(t, func() {
		bus.Publish(order.NewDeletedEvent("1", "admin"))
	})
}
