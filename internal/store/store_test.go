package store_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/driftchat/driftchat-backend/internal/models"
	"github.com/driftchat/driftchat-backend/internal/store"
)

func newFileStore(t *testing.T) *store.FileStore {
	t.Helper()
	s, err := store.NewFileStore(filepath.Join(t.TempDir(), "database.json"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	return s
}

func TestLoadCreatesDefaultDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "database.json")
	s, err := store.NewFileStore(path)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}

	doc := s.Load()
	if len(doc.Messages) != 0 || len(doc.OnlineUsers) != 0 || len(doc.Notes) != 0 {
		t.Fatalf("expected empty default document, got %+v", doc)
	}

	// First load must persist the default so the baseline is stable.
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected database file to exist after first load: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newFileStore(t)

	doc := s.Load()
	doc.Messages = append(doc.Messages, models.Message{
		ID:        "m1",
		Text:      "hello",
		Timestamp: 1000,
		DeleteAt:  61000,
		Username:  "MacChrome42",
		Type:      models.MessageTypeText,
	})
	doc.OnlineUsers = append(doc.OnlineUsers, models.OnlineUser{
		UserID:   "u1",
		Username: "Alice",
		LastSeen: 1000,
		JoinedAt: 1000,
	})
	doc.Notes = append(doc.Notes, models.Note{
		ID:       "n1",
		Title:    "todo",
		Content:  "buy milk",
		Category: "General",
		Tags:     []string{"shopping"},
		Links:    []string{},
		Author:   "Alice",
	})

	if err := s.Save(doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := s.Load()
	if !reflect.DeepEqual(got, doc) {
		t.Fatalf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", doc, got)
	}
}

func TestLoadCorruptFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "database.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	s, err := store.NewFileStore(path)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}

	doc := s.Load()
	if doc == nil {
		t.Fatal("expected document, got nil")
	}
	if len(doc.Messages) != 0 || len(doc.OnlineUsers) != 0 || len(doc.Notes) != 0 {
		t.Fatalf("expected empty document for corrupt file, got %+v", doc)
	}
}

func TestLoadBackfillsMissingCollections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "database.json")

	// A file written before the onlineUsers/notes collections existed.
	if err := os.WriteFile(path, []byte(`{"messages":[]}`), 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}

	s, err := store.NewFileStore(path)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}

	doc := s.Load()
	if doc.OnlineUsers == nil || doc.Notes == nil {
		t.Fatalf("expected missing collections backfilled, got %+v", doc)
	}
}
