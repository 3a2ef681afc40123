package services

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/driftchat/driftchat-backend/internal/models"
	"github.com/driftchat/driftchat-backend/internal/store"
	"github.com/google/uuid"
)

// Notes manages the quick-notes collection. Notes never expire; the service
// only exists so the collaborator layer has a single place for the CRUD and
// search operations. It shares the document lock with the ledger and
// presence tracker.
type Notes struct {
	store store.Store
	mu    *sync.Mutex
	now   func() time.Time
}

// NewNotes creates a Notes service. mu is the shared document lock; pass
// nil to use a private lock.
func NewNotes(st store.Store, mu *sync.Mutex) *Notes {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Notes{store: st, mu: mu, now: time.Now}
}

// AddNoteParams carries the caller-validated fields for a new note.
type AddNoteParams struct {
	Title    string
	Content  string
	Category string
	Tags     []string
	Links    []string
	Author   string
}

// Add creates a note and persists the document.
func (n *Notes) Add(p AddNoteParams) (*models.Note, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	doc := n.store.Load()
	now := n.now().UnixMilli()

	note := models.Note{
		ID:        uuid.NewString(),
		Title:     p.Title,
		Content:   p.Content,
		Category:  p.Category,
		Tags:      p.Tags,
		Links:     p.Links,
		Author:    p.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if note.Category == "" {
		note.Category = "General"
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	if note.Links == nil {
		note.Links = []string{}
	}
	doc.Notes = append(doc.Notes, note)

	if err := n.store.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to persist note: %w", err)
	}
	return &note, nil
}

// List returns all notes, newest first.
func (n *Notes) List() []models.Note {
	n.mu.Lock()
	defer n.mu.Unlock()

	doc := n.store.Load()
	notes := make([]models.Note, len(doc.Notes))
	copy(notes, doc.Notes)
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt > notes[j].CreatedAt
	})
	return notes
}

// Get returns the note with the given id, or nil when it does not exist.
func (n *Notes) Get(id string) *models.Note {
	n.mu.Lock()
	defer n.mu.Unlock()

	doc := n.store.Load()
	for _, note := range doc.Notes {
		if note.ID == id {
			out := note
			return &out
		}
	}
	return nil
}

// UpdateNoteParams carries the replaceable fields of a note.
type UpdateNoteParams struct {
	Title    string
	Content  string
	Category string
	Tags     []string
	Links    []string
}

// Update replaces the editable fields of the note with the given id and
// bumps updatedAt. Returns nil when no such note exists.
func (n *Notes) Update(id string, p UpdateNoteParams) (*models.Note, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	doc := n.store.Load()
	for i := range doc.Notes {
		if doc.Notes[i].ID != id {
			continue
		}
		doc.Notes[i].Title = p.Title
		doc.Notes[i].Content = p.Content
		doc.Notes[i].Category = p.Category
		if doc.Notes[i].Category == "" {
			doc.Notes[i].Category = "General"
		}
		doc.Notes[i].Tags = p.Tags
		if doc.Notes[i].Tags == nil {
			doc.Notes[i].Tags = []string{}
		}
		doc.Notes[i].Links = p.Links
		if doc.Notes[i].Links == nil {
			doc.Notes[i].Links = []string{}
		}
		doc.Notes[i].UpdatedAt = n.now().UnixMilli()

		if err := n.store.Save(doc); err != nil {
			return nil, fmt.Errorf("failed to persist note update: %w", err)
		}
		out := doc.Notes[i]
		return &out, nil
	}
	return nil, nil
}

// Delete removes the note with the given id. Returns false when no such
// note exists; a failed save also reports false.
func (n *Notes) Delete(id string) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	doc := n.store.Load()
	kept := doc.Notes[:0:0]
	for _, note := range doc.Notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	if len(kept) == len(doc.Notes) {
		return false, nil
	}

	doc.Notes = kept
	if err := n.store.Save(doc); err != nil {
		return false, fmt.Errorf("failed to persist note deletion: %w", err)
	}
	return true, nil
}

// Search returns notes whose title, content, category or tags contain the
// query, case-insensitive, newest first.
func (n *Notes) Search(query string) []models.Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return n.List()
	}

	var out []models.Note
	for _, note := range n.List() {
		if strings.Contains(strings.ToLower(note.Title), q) ||
			strings.Contains(strings.ToLower(note.Content), q) ||
			strings.Contains(strings.ToLower(note.Category), q) ||
			tagsMatch(note.Tags, q) {
			out = append(out, note)
		}
	}
	if out == nil {
		out = []models.Note{}
	}
	return out
}

// Categories returns the distinct categories across all notes, sorted.
func (n *Notes) Categories() []string {
	return n.distinct(func(note models.Note) []string {
		return []string{note.Category}
	})
}

// Tags returns the distinct tags across all notes, sorted.
func (n *Notes) Tags() []string {
	return n.distinct(func(note models.Note) []string {
		return note.Tags
	})
}

func (n *Notes) distinct(values func(models.Note) []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, note := range n.List() {
		for _, v := range values(note) {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func tagsMatch(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
