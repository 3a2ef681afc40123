package services

import (
	"log"
	"sync"

	"github.com/driftchat/driftchat-backend/internal/models"
)

// Event is the payload broadcast to connected WebSocket clients so they can
// refresh without polling. Type is "message" for a newly posted message and
// "presence" for an online-users change.
type Event struct {
	Type        string              `json:"type"`
	Message     *models.Message     `json:"message,omitempty"`
	OnlineUsers []models.OnlineUser `json:"onlineUsers,omitempty"`
	OnlineCount int                 `json:"onlineCount"`
}

// EventConn is the minimal interface our WebSocket implementation must satisfy.
type EventConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// hubClient pairs a connection with a write lock. gorilla/websocket allows
// only one concurrent writer per connection, and overlapping broadcasts would
// otherwise race on the same conn.
type hubClient struct {
	conn EventConn
	mu   sync.Mutex
}

func (c *hubClient) send(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.WriteJSON(event); err != nil {
		log.Printf("error writing event to websocket: %v", err)
	}
}

// Hub is a registry of connected clients. There is a single room; every
// event fans out to everyone.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*hubClient
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]*hubClient)}
}

// Register adds or replaces the connection for a client id.
func (h *Hub) Register(id string, conn EventConn) {
	h.mu.Lock()
	h.conns[id] = &hubClient{conn: conn}
	h.mu.Unlock()
}

// Unregister removes a client's connection.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	delete(h.conns, id)
	h.mu.Unlock()
}

// Broadcast sends an event to every connected client. Sends are
// best-effort; a dead connection is the reader loop's problem to clean up.
// Each client's write lock serializes deliveries to that connection, even
// when broadcasts overlap.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.conns {
		go c.send(event)
	}
}
