package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/department"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/order"
	"github.com/iota-uz/restaurant-admin/pkg/application"
)

const (
	OrdersChanged      = "orders.changed"
	DepartmentsChanged = "departments.changed"
)

// Notification is the websocket message open tabs receive. The browser
// refreshes every region marked data-refresh-on=Event.
type Notification struct {
	Event  string `json:"event"`
	ID     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
}

type RefreshHandler struct {
	hub    application.Huber
	logger *logrus.Logger
}

// RegisterRefreshHandlers pushes a refresh notification to every authenticated
// tab after an order or department mutation succeeds.
func RegisterRefreshHandlers(app application.Application, logger *logrus.Logger) *RefreshHandler {
	h := &RefreshHandler{hub: app.Websocket(), logger: logger}
	bus := app.EventPublisher()
	bus.Subscribe(h.onOrderStatusChanged)
	bus.Subscribe(h.onOrderDeleted)
	bus.Subscribe(h.onDepartmentCreated)
	bus.Subscribe(h.onDepartmentUpdated)
	bus.Subscribe(h.onDepartmentDeleted)
	return h
}

func (h *RefreshHandler) onOrderStatusChanged(event *order.StatusChangedEvent) {
	h.notify(Notification{Event: OrdersChanged, ID: event.OrderID, Status: event.To.String()}, event.UserType)
}

func (h *RefreshHandler) onOrderDeleted(event *order.DeletedEvent) {
	h.notify(Notification{Event: OrdersChanged, ID: event.OrderID}, event.UserType)
}

func (h *RefreshHandler) onDepartmentCreated(event *department.CreatedEvent) {
	h.notify(Notification{Event: DepartmentsChanged}, event.UserType)
}

func (h *RefreshHandler) onDepartmentUpdated(event *department.UpdatedEvent) {
	h.notify(Notification{Event: DepartmentsChanged, ID: event.ID}, event.UserType)
}

func (h *RefreshHandler) onDepartmentDeleted(event *department.DeletedEvent) {
	h.notify(Notification{Event: DepartmentsChanged, ID: event.ID}, event.UserType)
}

func (h *RefreshHandler) notify(n Notification, userType string) {
	if h.hub == nil {
		return
	}
	delivered := h.hub.Broadcast(application.ChannelAuthenticated, n)
	if h.logger != nil {
		h.logger.WithFields(logrus.Fields{
			"event":     n.Event,
			"id":        n.ID,
			"userType":  userType,
			"delivered": delivered,
		}).Debug("refresh broadcast")
	}
}
