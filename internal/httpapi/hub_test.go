package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubBroadcastsToConnectedClient(t *testing.T) {
	metrics := NewMetrics(nil)
	hub := NewHub(nil, metrics)
	done := make(chan struct{})
	go hub.Run(done)
	defer close(done)

	ts := httptest.NewServer(http.HandlerFunc(hub.ServeStream))
	defer ts.Close()

	wsURL := "ws" + ts.URL[len("http"):]
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Give the hub goroutine a beat to register the connection before the
	// broadcast is sent, since registration crosses a channel.
	time.Sleep(20 * time.Millisecond)
	hub.Broadcast("test_event", map[string]string{"hello": "world"})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if len(msg) == 0 {
		t.Fatalf("expected a non-empty broadcast message")
	}
}

func TestHubClientCountTracksConnections(t *testing.T) {
	hub := NewHub(nil, nil)
	done := make(chan struct{})
	go hub.Run(done)
	defer close(done)

	ts := httptest.NewServer(http.HandlerFunc(hub.ServeStream))
	defer ts.Close()

	wsURL := "ws" + ts.URL[len("http"):]
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("ClientCount() = %d, want 1", got)
	}

	conn.Close()
	time.Sleep(20 * time.Millisecond)
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("ClientCount() = %d, want 0 after close", got)
	}
}
