package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/driftchat/driftchat-backend/internal/models"
	"github.com/driftchat/driftchat-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

// NoteRequest is the body of POST /api/notes and PUT /api/notes/{id}.
type NoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Links    []string `json:"links"`
	Author   string   `json:"author"`
}

// NoteResponse carries a single note.
type NoteResponse struct {
	Success bool         `json:"success"`
	Note    *models.Note `json:"note,omitempty"`
	Error   string       `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
}

// NotesListResponse carries note collections and the category/tag indexes.
// Notes is always present on note listings, even when empty.
type NotesListResponse struct {
	Success    bool          `json:"success"`
	Notes      []models.Note `json:"notes"`
	Categories []string      `json:"categories,omitempty"`
	Tags       []string      `json:"tags,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// GetNotesIndex handles GET /api/notes. Supports ?search= for full-text
// lookup and ?action=categories|tags for the filter dropdowns; otherwise
// returns all notes (filtering is handled client-side).
func GetNotesIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Query().Get("action") {
	case "categories":
		json.NewEncoder(w).Encode(NotesListResponse{
			Success:    true,
			Categories: notes.Categories(),
		})
		return
	case "tags":
		json.NewEncoder(w).Encode(NotesListResponse{
			Success: true,
			Tags:    notes.Tags(),
		})
		return
	}

	if search := r.URL.Query().Get("search"); search != "" {
		json.NewEncoder(w).Encode(NotesListResponse{
			Success: true,
			Notes:   notes.Search(search),
		})
		return
	}

	json.NewEncoder(w).Encode(NotesListResponse{
		Success: true,
		Notes:   notes.List(),
	})
}

// CreateNote handles POST /api/notes.
func CreateNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(NoteResponse{
			Success: false,
			Error:   "Invalid request data",
		})
		return
	}

	if req.Title == "" || req.Content == "" || req.Author == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(NoteResponse{
			Success: false,
			Error:   "Title, content, and author are required",
		})
		return
	}

	note, err := notes.Add(services.AddNoteParams{
		Title:    strings.TrimSpace(req.Title),
		Content:  strings.TrimSpace(req.Content),
		Category: strings.TrimSpace(req.Category),
		Tags:     trimAll(req.Tags),
		Links:    trimAll(req.Links),
		Author:   strings.TrimSpace(req.Author),
	})
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(NoteResponse{
			Success: false,
			Error:   "Failed to create note",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(NoteResponse{
		Success: true,
		Note:    note,
	})
}

// GetNote handles GET /api/notes/{id}.
func GetNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	note := notes.Get(id)
	if note == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(NoteResponse{
			Success: false,
			Error:   "Note not found",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NoteResponse{
		Success: true,
		Note:    note,
	})
}

// UpdateNote handles PUT /api/notes/{id}.
func UpdateNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(NoteResponse{
			Success: false,
			Error:   "Invalid request data",
		})
		return
	}

	if req.Title == "" || req.Content == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(NoteResponse{
			Success: false,
			Error:   "Title and content are required",
		})
		return
	}

	note, err := notes.Update(id, services.UpdateNoteParams{
		Title:    strings.TrimSpace(req.Title),
		Content:  strings.TrimSpace(req.Content),
		Category: strings.TrimSpace(req.Category),
		Tags:     trimAll(req.Tags),
		Links:    trimAll(req.Links),
	})
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(NoteResponse{
			Success: false,
			Error:   "Failed to update note",
		})
		return
	}
	if note == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(NoteResponse{
			Success: false,
			Error:   "Note not found",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NoteResponse{
		Success: true,
		Note:    note,
	})
}

// DeleteNote handles DELETE /api/notes/{id}.
func DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := notes.Delete(id)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(NoteResponse{
			Success: false,
			Error:   "Failed to delete note",
		})
		return
	}
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(NoteResponse{
			Success: false,
			Error:   "Note not found",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NoteResponse{
		Success: true,
		Message: "Note deleted successfully",
	})
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
