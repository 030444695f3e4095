package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/clipperroom/clipperroom-api/internal/metrics"
)

// Envelope is the wire frame for every pushed event.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

const clientBuffer = 16

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans events out to every connected staff client. Broadcast is
// non-blocking per client: a slow consumer's buffer fills and its frames
// are dropped, never delaying the others.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}

	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser staff console connects cross-origin; auth is the
			// bearer token checked by middleware, not the Origin header.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log.With().Str("component", "realtime").Logger(),
	}
}

func (h *Hub) Broadcast(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Warn().Err(err).Str("event", event).Msg("unserializable payload")
		return
	}

	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			// Client too slow; drop the frame. At-most-once delivery.
		}
	}
}

// ClientCount reports connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and pumps broadcast frames to the socket
// until the peer goes away.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	cl := &client{
		conn: conn,
		send: make(chan []byte, clientBuffer),
	}

	h.mu.Lock()
	h.clients[cl] = struct{}{}
	metrics.SetWSClients(len(h.clients))
	h.mu.Unlock()

	go h.writePump(cl)
	go h.readPump(cl)
}

func (h *Hub) writePump(cl *client) {
	for frame := range cl.send {
		if err := cl.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			break
		}
	}
	cl.conn.Close()
}

// readPump discards inbound frames; its job is detecting disconnects.
func (h *Hub) readPump(cl *client) {
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(cl)
}

func (h *Hub) drop(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
	metrics.SetWSClients(len(h.clients))
	h.mu.Unlock()
}
