package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurant-order-api/logger"
	"restaurant-order-api/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)
	return conn
}

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewHub(logger.Discard(), []string{"*"})
	defer hub.Close()
	conn := dial(t, hub)

	hub.Publish(Event{Type: EventOrderStatusChanged, OrderID: "o-1", Status: models.StatusConfirmed})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, EventOrderStatusChanged, ev.Type)
	assert.Equal(t, "o-1", ev.OrderID)
	assert.Equal(t, models.StatusConfirmed, ev.Status)
	assert.False(t, ev.At.IsZero())
}

func TestHub_ClientRemovedOnDisconnect(t *testing.T) {
	hub := NewHub(logger.Discard(), nil)
	defer hub.Close()
	conn := dial(t, hub)

	conn.Close()

	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_PublishWithoutSubscribers(t *testing.T) {
	hub := NewHub(logger.Discard(), nil)
	hub.Publish(Event{Type: EventOrderCreated, OrderID: "o-2"})
	assert.Equal(t, 0, hub.Clients())
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://shop.example"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://shop.example")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))
}
