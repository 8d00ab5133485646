package application

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/restaurant-admin/pkg/composables"
	"github.com/iota-uz/restaurant-admin/pkg/ws"
)

const (
	ChannelAuthenticated string = "authenticated"
)

type HuberOptions struct {
	Logger      *logrus.Logger
	CheckOrigin func(r *http.Request) bool
}

// Huber pushes notifications to the open browser tabs.
type Huber interface {
	http.Handler
	Broadcast(channel string, payload any) int
}

func NewHub(opts *HuberOptions) Huber {
	appHub := &huber{logger: opts.Logger}
	appHub.hub = ws.NewHub(&ws.HubOptions{
		Logger:      opts.Logger,
		CheckOrigin: opts.CheckOrigin,
		OnConnect:   appHub.onConnect,
	})
	return appHub
}

type huber struct {
	hub    *ws.Hub
	logger *logrus.Logger
}

func (h *huber) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeHTTP(w, r)
}

// onConnect admits only sessions holding a backend token; anonymous tabs have
// nothing to refresh.
func (h *huber) onConnect(r *http.Request, hub *ws.Hub, conn *ws.Connection) error {
	s, err := composables.UseSession(r.Context())
	if err != nil || !s.Authenticated() {
		return nil //nolint:nilerr // anonymous connections stay open but join no channel
	}
	hub.JoinChannel(ChannelAuthenticated, conn)
	return nil
}

func (h *huber) Broadcast(channel string, payload any) int {
	raw, err := json.Marshal(payload)
	if err != nil {
		if h.logger != nil {
			h.logger.WithError(err).Error("failed to encode websocket payload")
		}
		return 0
	}
	return h.hub.BroadcastToChannel(channel, raw)
}
