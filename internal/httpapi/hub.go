package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"arenic/internal/telemetry"
)

// MaxStreamConnections bounds the total number of concurrent stream
// subscribers, independent of the per-IP rate limit applied to the
// upgrade request itself.
const MaxStreamConnections = 500

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans out engine frame events to every connected stream client. It
// owns no simulation state: callers push pre-serialized broadcasts in from
// the frame loop, and the hub's own goroutine owns the client map so
// register/unregister/broadcast never race each other.
type Hub struct {
	logger telemetry.Logger
	metric *Metrics

	clients    map[*websocket.Conn]struct{}
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn

	count atomic.Int32
}

// NewHub returns a Hub; call Run in its own goroutine before serving
// requests.
func NewHub(logger telemetry.Logger, metric *Metrics) *Hub {
	return &Hub{
		logger:     logger,
		metric:     metric,
		clients:    make(map[*websocket.Conn]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// Run is the hub's single goroutine owning client registration and
// fan-out. It returns only when ctx-equivalent shutdown is driven by
// closing done.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			h.closeAll()
			return
		case conn := <-h.register:
			h.clients[conn] = struct{}{}
			h.count.Store(int32(len(h.clients)))
			h.reportConnections()
		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.count.Store(int32(len(h.clients)))
			h.reportConnections()
		case msg := <-h.broadcast:
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.count.Store(int32(len(h.clients)))
			h.reportConnections()
		}
	}
}

func (h *Hub) closeAll() {
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
	h.count.Store(0)
}

func (h *Hub) reportConnections() {
	if h.metric != nil {
		h.metric.WSConnections.Set(float64(len(h.clients)))
	}
}

// Broadcast JSON-encodes event under the given type tag and queues it for
// every connected client. A full queue drops the broadcast rather than
// blocking the tick loop (backpressure, not buffering).
func (h *Hub) Broadcast(eventType string, payload any) {
	body, err := json.Marshal(struct {
		Type string `json:"type"`
		Data any    `json:"data"`
	}{eventType, payload})
	if err != nil {
		if h.logger != nil {
			h.logger.Printf("httpapi: marshal broadcast %s: %v", eventType, err)
		}
		return
	}
	select {
	case h.broadcast <- body:
	default:
	}
}

// ClientCount reports the number of connected clients, safe to call from
// any goroutine.
func (h *Hub) ClientCount() int { return int(h.count.Load()) }

// ServeStream upgrades the request to a WebSocket stream and registers it
// with the hub. Incoming client frames are drained and discarded; this
// stream is broadcast-only, the command path is the HTTP command endpoint.
func (h *Hub) ServeStream(w http.ResponseWriter, r *http.Request) {
	if h.ClientCount() >= MaxStreamConnections {
		http.Error(w, "Too many stream connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Printf("httpapi: websocket upgrade: %v", err)
		}
		return
	}
	h.register <- conn

	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
