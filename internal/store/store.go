package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/driftchat/driftchat-backend/internal/models"
)

// Document is the whole persisted state. Every operation round-trips the
// full document; there are no partial writes. The notes collection belongs
// to the quick-notes feature and is carried through untouched by the
// message/presence services.
type Document struct {
	Messages    []models.Message    `json:"messages"`
	OnlineUsers []models.OnlineUser `json:"onlineUsers"`
	Notes       []models.Note       `json:"notes"`
}

// Store is the minimal persistence contract the services depend on.
// Load never fails outward: an unreadable or corrupt file yields an empty
// document so callers degrade gracefully. Save reports failure as an error.
type Store interface {
	Load() *Document
	Save(doc *Document) error
}

// FileStore persists the document as a single JSON file on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the given path. The parent
// directory is created if missing.
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Load reads the whole document. When the file does not exist yet it
// persists an empty default first so subsequent loads see a stable baseline.
// Read or parse errors are logged and degrade to an empty document.
func (s *FileStore) Load() *Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			doc := emptyDocument()
			if saveErr := s.Save(doc); saveErr != nil {
				log.Printf("error initializing database file: %v", saveErr)
			}
			return doc
		}
		log.Printf("error reading database file: %v", err)
		return emptyDocument()
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("error parsing database file: %v", err)
		return emptyDocument()
	}

	// Older files may predate one of the collections.
	if doc.Messages == nil {
		doc.Messages = []models.Message{}
	}
	if doc.OnlineUsers == nil {
		doc.OnlineUsers = []models.OnlineUser{}
	}
	if doc.Notes == nil {
		doc.Notes = []models.Note{}
	}
	return &doc
}

// Save overwrites the whole document. The write goes to a temp file in the
// same directory followed by a rename so a reader never observes a
// half-written document.
func (s *FileStore) Save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode database: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write database file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace database file: %w", err)
	}
	return nil
}

func emptyDocument() *Document {
	return &Document{
		Messages:    []models.Message{},
		OnlineUsers: []models.OnlineUser{},
		Notes:       []models.Note{},
	}
}
