package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/driftchat/driftchat-backend/internal/handlers"
	"github.com/driftchat/driftchat-backend/internal/routes"
	"github.com/driftchat/driftchat-backend/internal/services"
	"github.com/driftchat/driftchat-backend/internal/store"
	"github.com/go-chi/chi/v5"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	st, err := store.NewFileStore(filepath.Join(dir, "database.json"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}

	handlers.Init(
		services.NewLedger(st, nil),
		services.NewPresence(st, nil),
		services.NewNotes(st, nil),
		nil,
	)

	r := chi.NewRouter()
	routes.SetupRoutes(r, dir)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestSendAndListMessages(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/messages/send", map[string]interface{}{
		"text":          "hello room",
		"deleteMinutes": 5,
		"username":      "Alice",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("send: expected 200, got %d", resp.StatusCode)
	}
	var sent handlers.SendMessageResponse
	decode(t, resp, &sent)
	if !sent.Success || sent.Message == nil {
		t.Fatalf("expected message in response, got %+v", sent)
	}
	if sent.Message.Username != "Alice" {
		t.Fatalf("expected username Alice, got %q", sent.Message.Username)
	}
	if sent.Message.DeleteAt <= sent.Message.Timestamp {
		t.Fatalf("expected deleteAt after timestamp: %+v", sent.Message)
	}

	listResp, err := http.Get(srv.URL + "/api/messages")
	if err != nil {
		t.Fatalf("GET messages: %v", err)
	}
	var list handlers.GetMessagesResponse
	decode(t, listResp, &list)
	if !list.Success || len(list.Messages) != 1 {
		t.Fatalf("expected 1 message, got %+v", list)
	}
	if list.Messages[0].ID != sent.Message.ID {
		t.Fatalf("expected id %q, got %q", sent.Message.ID, list.Messages[0].ID)
	}
}

func TestEmptyListsEncodeAsArrays(t *testing.T) {
	srv := newTestServer(t)

	// Clients index into these arrays without checking for presence, so an
	// empty room must still serialize them as [] rather than omitting the key.
	tests := []struct {
		path string
		want string
	}{
		{"/api/messages", `"messages":[]`},
		{"/api/online", `"onlineUsers":[]`},
		{"/api/notes", `"notes":[]`},
	}

	for _, tt := range tests {
		resp, err := http.Get(srv.URL + tt.path)
		if err != nil {
			t.Fatalf("GET %s: %v", tt.path, err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("read %s body: %v", tt.path, err)
		}
		if !strings.Contains(string(body), tt.want) {
			t.Fatalf("GET %s: expected body to contain %s, got %s", tt.path, tt.want, body)
		}
	}
}

func TestSendMessageValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"no content", map[string]interface{}{"deleteMinutes": 5}},
		{"bad deleteMinutes", map[string]interface{}{"text": "hi", "deleteMinutes": 3}},
		{"missing deleteMinutes", map[string]interface{}{"text": "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/messages/send", tt.body)
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestSendMessageGeneratesUsername(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/messages/send", map[string]interface{}{
		"text":          "anonymous",
		"deleteMinutes": 1,
	})
	var sent handlers.SendMessageResponse
	decode(t, resp, &sent)
	if sent.Message == nil || sent.Message.Username == "" {
		t.Fatalf("expected generated username, got %+v", sent.Message)
	}
}

func TestOnlineHeartbeatFlow(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/online", map[string]interface{}{
		"userId":   "u1",
		"username": "Alice",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("heartbeat: expected 200, got %d", resp.StatusCode)
	}
	var hb handlers.OnlineResponse
	decode(t, resp, &hb)
	if !hb.Success || hb.OnlineCount != 1 {
		t.Fatalf("expected 1 online user, got %+v", hb)
	}
	if hb.OnlineUsers[0].UserID != "u1" || hb.OnlineUsers[0].Username != "Alice" {
		t.Fatalf("unexpected presence record: %+v", hb.OnlineUsers[0])
	}

	// Missing fields are rejected at the boundary.
	bad := postJSON(t, srv.URL+"/api/online", map[string]interface{}{"userId": "u2"})
	defer bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing username, got %d", bad.StatusCode)
	}

	// Explicit sign-off removes the record.
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/online", bytes.NewReader([]byte(`{"userId":"u1"}`)))
	if err != nil {
		t.Fatalf("build delete request: %v", err)
	}
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE online: %v", err)
	}
	var offline handlers.OnlineResponse
	decode(t, delResp, &offline)
	if !offline.Success || offline.OnlineCount != 0 {
		t.Fatalf("expected empty active set after sign-off, got %+v", offline)
	}
}

func TestCleanupEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/cleanup", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cleanup: expected 200, got %d", resp.StatusCode)
	}
	var out handlers.CleanupResponse
	decode(t, resp, &out)
	if !out.Success || out.DeletedCount != 0 {
		t.Fatalf("expected clean sweep with 0 deletions, got %+v", out)
	}
}

func TestNotesCRUDOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/notes", map[string]interface{}{
		"title":   "Groceries",
		"content": "milk and eggs",
		"tags":    []string{"shopping"},
		"author":  "Alice",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create note: expected 201, got %d", resp.StatusCode)
	}
	var created handlers.NoteResponse
	decode(t, resp, &created)
	if created.Note == nil || created.Note.ID == "" {
		t.Fatalf("expected created note, got %+v", created)
	}

	getResp, err := http.Get(srv.URL + "/api/notes/" + created.Note.ID)
	if err != nil {
		t.Fatalf("GET note: %v", err)
	}
	var fetched handlers.NoteResponse
	decode(t, getResp, &fetched)
	if fetched.Note == nil || fetched.Note.Title != "Groceries" {
		t.Fatalf("unexpected fetched note: %+v", fetched)
	}

	searchResp, err := http.Get(srv.URL + "/api/notes?search=milk")
	if err != nil {
		t.Fatalf("search notes: %v", err)
	}
	var found handlers.NotesListResponse
	decode(t, searchResp, &found)
	if len(found.Notes) != 1 {
		t.Fatalf("expected 1 search hit, got %+v", found)
	}

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/notes/"+created.Note.ID, nil)
	if err != nil {
		t.Fatalf("build delete request: %v", err)
	}
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE note: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusOK {
		t.Fatalf("delete note: expected 200, got %d", delResp.StatusCode)
	}

	missing, err := http.Get(srv.URL + "/api/notes/" + created.Note.ID)
	if err != nil {
		t.Fatalf("GET deleted note: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted note, got %d", missing.StatusCode)
	}
}
