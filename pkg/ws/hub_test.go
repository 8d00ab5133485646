package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastToChannel(t *testing.T) {
	joined := make(chan struct{}, 1)
	hub := NewHub(&HubOptions{
		CheckOrigin: func(r *http.Request) bool { return true },
		OnConnect: func(r *http.Request, hub *Hub, conn *Connection) error {
			hub.JoinChannel("orders", conn)
			joined <- struct{}{}
			return nil
		},
	})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	select {
	case <-joined:
	case <-time.After(2 * time.Second):
		t.Fatal("connection never joined")
	}

	require.Equal(t, 1, hub.BroadcastToChannel("orders", []byte(`{"type":"orders.changed"}`)))
	require.Equal(t, 0, hub.BroadcastToChannel("departments", []byte("x")))

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := client.ReadMessage()
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"orders.changed"}`, string(msg))
}

func TestHub_DisconnectLeavesChannels(t *testing.T) {
	disconnected := make(chan struct{}, 1)
	joined := make(chan struct{}, 1)
	hub := NewHub(&HubOptions{
		CheckOrigin: func(r *http.Request) bool { return true },
		OnConnect: func(r *http.Request, hub *Hub, conn *Connection) error {
			hub.JoinChannel("orders", conn)
			joined <- struct{}{}
			return nil
		},
		OnDisconnect: func(conn *Connection) { disconnected <- struct{}{} },
	})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	<-joined
	require.NoError(t, client.Close())

	select {
	case <-disconnected:
	case <-time.After(2 * time.Second):
		t.Fatal("disconnect not observed")
	}
	require.Empty(t, hub.ConnectionsInChannel("orders"))
	require.Zero(t, hub.ConnectionsCount())
}
