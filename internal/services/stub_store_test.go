package services

import (
	"errors"
	"time"

	"github.com/driftchat/driftchat-backend/internal/models"
	"github.com/driftchat/driftchat-backend/internal/store"
)

// memStore is an in-memory store.Store. Load hands out copies so the
// services cannot accidentally share state across calls, matching the
// no-caching contract of the file store.
type memStore struct {
	doc      *store.Document
	saves    int
	failSave bool
}

func newMemStore() *memStore {
	return &memStore{doc: &store.Document{
		Messages:    []models.Message{},
		OnlineUsers: []models.OnlineUser{},
		Notes:       []models.Note{},
	}}
}

func (m *memStore) Load() *store.Document {
	return cloneDocument(m.doc)
}

func (m *memStore) Save(doc *store.Document) error {
	if m.failSave {
		return errors.New("disk full")
	}
	m.doc = cloneDocument(doc)
	m.saves++
	return nil
}

func cloneDocument(doc *store.Document) *store.Document {
	out := &store.Document{
		Messages:    append([]models.Message{}, doc.Messages...),
		OnlineUsers: append([]models.OnlineUser{}, doc.OnlineUsers...),
		Notes:       append([]models.Note{}, doc.Notes...),
	}
	return out
}

// fakeClock is a manually advanced clock injected into the services.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.UnixMilli(1_000_000)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}
