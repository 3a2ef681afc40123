package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/driftchat/driftchat-backend/internal/models"
	"github.com/driftchat/driftchat-backend/internal/store"
	"github.com/driftchat/driftchat-backend/internal/telemetry"
)

// Presence tracks which users are online via last-seen heartbeats. Like the
// ledger it round-trips the whole document per operation and shares the
// document lock, since both collections live in the same file.
type Presence struct {
	store store.Store
	mu    *sync.Mutex
	now   func() time.Time
}

// NewPresence creates a Presence tracker. mu is the document lock shared
// with the other services; pass nil to use a private lock.
func NewPresence(st store.Store, mu *sync.Mutex) *Presence {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Presence{store: st, mu: mu, now: time.Now}
}

// Heartbeat records that userID is alive right now. The first heartbeat for
// a userID creates its record with joinedAt set once; every later heartbeat
// only refreshes lastSeen and overwrites the username, so renames take
// effect mid-session. Repeated calls never create a second record.
func (p *Presence) Heartbeat(userID, username string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.store.Load()
	now := p.now().UnixMilli()

	found := false
	for i := range doc.OnlineUsers {
		if doc.OnlineUsers[i].UserID == userID {
			doc.OnlineUsers[i].LastSeen = now
			doc.OnlineUsers[i].Username = username
			found = true
			break
		}
	}
	if !found {
		doc.OnlineUsers = append(doc.OnlineUsers, models.OnlineUser{
			UserID:   userID,
			Username: username,
			LastSeen: now,
			JoinedAt: now,
		})
	}

	if err := p.store.Save(doc); err != nil {
		return fmt.Errorf("failed to persist heartbeat: %w", err)
	}

	telemetry.Heartbeats.Inc()
	return nil
}

// ListActive returns every user seen within the online threshold, in
// insertion order. Stale records are dropped from the document on the way
// (write-on-read eviction, mirroring the message ledger).
func (p *Presence) ListActive() []models.OnlineUser {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.store.Load()
	now := p.now().UnixMilli()

	active := doc.OnlineUsers[:0:0]
	for _, u := range doc.OnlineUsers {
		if userActive(u.LastSeen, now) {
			active = append(active, u)
		}
	}

	if removed := len(doc.OnlineUsers) - len(active); removed > 0 {
		doc.OnlineUsers = active
		if err := p.store.Save(doc); err != nil {
			log.Printf("error persisting presence eviction: %v", err)
		} else {
			telemetry.UsersExpired.Add(float64(removed))
		}
	}

	telemetry.ActiveUsers.Set(float64(len(active)))
	return active
}

// Remove drops the record for userID regardless of liveness; used for
// explicit sign-off. Removing an unknown userID is not an error.
func (p *Presence) Remove(userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.store.Load()

	kept := doc.OnlineUsers[:0:0]
	for _, u := range doc.OnlineUsers {
		if u.UserID != userID {
			kept = append(kept, u)
		}
	}
	doc.OnlineUsers = kept

	if err := p.store.Save(doc); err != nil {
		return fmt.Errorf("failed to persist sign-off: %w", err)
	}
	return nil
}
