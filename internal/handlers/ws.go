package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// eventsUpgrader is the shared upgrader for the event stream.
var eventsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is handled at the HTTP layer already.
		return true
	},
}

// EventsWebSocket streams message and presence events to the client so it
// does not have to poll. The stream is read-only from the client's point of
// view; posting still goes through the HTTP API.
func EventsWebSocket(w http.ResponseWriter, r *http.Request) {
	if hub == nil {
		http.Error(w, "realtime events not enabled", http.StatusServiceUnavailable)
		return
	}

	conn, err := eventsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	clientID := r.URL.Query().Get("userId")
	if clientID == "" {
		clientID = uuid.NewString()
	}

	hub.Register(clientID, conn)
	defer hub.Unregister(clientID)

	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	// Drain client frames until the connection dies; nothing the client
	// sends here is meaningful.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
