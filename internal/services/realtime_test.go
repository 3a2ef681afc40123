package services

import (
	"sync/atomic"
	"testing"
	"time"
)

// overlapConn counts writes and flags any two that run at the same time.
type overlapConn struct {
	inflight   int32
	overlapped int32
	delivered  int32
}

func (c *overlapConn) WriteJSON(v interface{}) error {
	if atomic.AddInt32(&c.inflight, 1) > 1 {
		atomic.StoreInt32(&c.overlapped, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&c.inflight, -1)
	atomic.AddInt32(&c.delivered, 1)
	return nil
}

func (c *overlapConn) Close() error { return nil }

func TestHubSerializesWritesPerConnection(t *testing.T) {
	hub := NewHub()
	conn := &overlapConn{}
	hub.Register("c1", conn)

	const events = 50
	for i := 0; i < events; i++ {
		hub.Broadcast(Event{Type: "message"})
	}

	deadline := time.Now().Add(5 * time.Second)
	for atomic.LoadInt32(&conn.delivered) < events {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d deliveries, got %d", events, atomic.LoadInt32(&conn.delivered))
		}
		time.Sleep(time.Millisecond)
	}

	if atomic.LoadInt32(&conn.overlapped) != 0 {
		t.Fatal("expected writes to the same connection to be serialized")
	}
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	conn := &overlapConn{}
	hub.Register("c1", conn)
	hub.Unregister("c1")

	hub.Broadcast(Event{Type: "message"})

	time.Sleep(10 * time.Millisecond)
	if got := atomic.LoadInt32(&conn.delivered); got != 0 {
		t.Fatalf("expected no deliveries after unregister, got %d", got)
	}
}
