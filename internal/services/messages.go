package services

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/driftchat/driftchat-backend/internal/models"
	"github.com/driftchat/driftchat-backend/internal/store"
	"github.com/driftchat/driftchat-backend/internal/telemetry"
	"github.com/google/uuid"
)

// Ledger owns the ephemeral message collection. Every operation is a full
// load-mutate-save round trip against the store; the mutex serializes those
// round trips so two writers cannot interleave load and save and lose an
// update. The ledger never caches the document across calls.
type Ledger struct {
	store store.Store
	mu    *sync.Mutex
	now   func() time.Time
}

// NewLedger creates a Ledger. mu is the document lock shared with the other
// services that mutate the same store; pass nil to use a private lock.
func NewLedger(st store.Store, mu *sync.Mutex) *Ledger {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Ledger{store: st, mu: mu, now: time.Now}
}

// AddMessageParams carries the caller-validated inputs for Add. DeleteAt is
// the absolute expiry deadline in epoch millis, computed by the caller from
// the chosen deleteMinutes. The ledger does not re-validate any of it.
type AddMessageParams struct {
	Text      string
	Username  string
	Type      models.MessageType
	DeleteAt  int64
	ImageURL  string
	LinkURL   string
	LinkTitle string
}

// Add appends a new message and persists the document. The id and creation
// timestamp are generated here. When the save fails no message is returned;
// nothing half-written is ever exposed as a success.
func (l *Ledger) Add(p AddMessageParams) (*models.Message, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc := l.store.Load()

	msg := models.Message{
		ID:        uuid.NewString(),
		Text:      p.Text,
		Timestamp: l.now().UnixMilli(),
		DeleteAt:  p.DeleteAt,
		Username:  p.Username,
		Type:      p.Type,
		ImageURL:  p.ImageURL,
		LinkURL:   p.LinkURL,
		LinkTitle: p.LinkTitle,
	}
	doc.Messages = append(doc.Messages, msg)

	if err := l.store.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to persist message: %w", err)
	}

	telemetry.MessagesAdded.Inc()
	return &msg, nil
}

// List returns all still-valid messages sorted ascending by creation
// timestamp. Expired messages are evicted on the way: when the pass drops
// anything, the surviving set is persisted before returning.
func (l *Ledger) List() []models.Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc := l.store.Load()
	now := l.now().UnixMilli()

	valid := doc.Messages[:0:0]
	for _, msg := range doc.Messages {
		if !messageExpired(msg.DeleteAt, now) {
			valid = append(valid, msg)
		}
	}

	if removed := len(doc.Messages) - len(valid); removed > 0 {
		doc.Messages = valid
		if err := l.store.Save(doc); err != nil {
			// The caller still gets the filtered view; the next pass retries.
			log.Printf("error persisting message eviction: %v", err)
		} else {
			telemetry.MessagesEvicted.Add(float64(removed))
		}
	}

	sorted := make([]models.Message, len(valid))
	copy(sorted, valid)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})
	return sorted
}

// EvictExpired removes every message whose deadline has passed and returns
// how many were dropped. With nothing expired it performs no write and
// returns 0. A failed save also reports 0 since nothing was durably removed.
func (l *Ledger) EvictExpired() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc := l.store.Load()
	now := l.now().UnixMilli()

	valid := doc.Messages[:0:0]
	for _, msg := range doc.Messages {
		if !messageExpired(msg.DeleteAt, now) {
			valid = append(valid, msg)
		}
	}

	removed := len(doc.Messages) - len(valid)
	if removed == 0 {
		return 0
	}

	doc.Messages = valid
	if err := l.store.Save(doc); err != nil {
		log.Printf("error persisting message eviction: %v", err)
		return 0
	}

	telemetry.MessagesEvicted.Add(float64(removed))
	return removed
}
