package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/restaurant-admin/pkg/application"
)

// WebSocketController exposes the live refresh channel of open pages.
type WebSocketController struct {
	app application.Application
}

func NewWebSocketController(app application.Application) application.Controller {
	return &WebSocketController{app: app}
}

func (c *WebSocketController) Key() string {
	return "/ws"
}

func (c *WebSocketController) Register(r *mux.Router) {
	r.Handle("/ws", c.app.Websocket()).Methods(http.MethodGet)
}
