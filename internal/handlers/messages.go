package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/driftchat/driftchat-backend/internal/models"
	"github.com/driftchat/driftchat-backend/internal/services"
	"github.com/driftchat/driftchat-backend/pkg/utils"
)

// SendMessageRequest is the body of POST /api/messages/send.
type SendMessageRequest struct {
	Text          string `json:"text"`
	DeleteMinutes int    `json:"deleteMinutes"`
	Type          string `json:"type"`
	ImageURL      string `json:"imageUrl"`
	LinkURL       string `json:"linkUrl"`
	LinkTitle     string `json:"linkTitle"`
	Username      string `json:"username"`
}

// SendMessageResponse mirrors the original API shape: the posted message
// under "message" on success, an error string otherwise.
type SendMessageResponse struct {
	Success bool            `json:"success"`
	Message *models.Message `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// GetMessagesResponse is the body of GET /api/messages. Messages is always
// present, even when empty; the frontend indexes into it unconditionally.
type GetMessagesResponse struct {
	Success  bool             `json:"success"`
	Messages []models.Message `json:"messages"`
	Error    string           `json:"error,omitempty"`
}

// GetMessages returns all still-valid messages in creation order. Expired
// messages are evicted by the read itself.
func GetMessages(w http.ResponseWriter, r *http.Request) {
	msgs := ledger.List()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GetMessagesResponse{
		Success:  true,
		Messages: msgs,
	})
}

// SendMessage validates and posts a new ephemeral message. Validation lives
// here, at the request boundary; the ledger trusts what it is handed.
func SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SendMessageResponse{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if req.Text == "" && req.ImageURL == "" && req.LinkURL == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SendMessageResponse{
			Success: false,
			Error:   "Message content is required",
		})
		return
	}

	if !models.IsValidDeleteMinutes(req.DeleteMinutes) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SendMessageResponse{
			Success: false,
			Error:   "Delete time must be 1, 5, or 10 minutes",
		})
		return
	}

	msgType := models.MessageType(req.Type)
	if msgType == "" {
		msgType = models.MessageTypeText
	}

	username := utils.SanitizeUsername(req.Username)
	if username == "" {
		username = utils.GenerateUsername(r.UserAgent())
	}

	deleteAt := time.Now().UnixMilli() + int64(req.DeleteMinutes)*60_000

	msg, err := ledger.Add(services.AddMessageParams{
		Text:      req.Text,
		Username:  username,
		Type:      msgType,
		DeleteAt:  deleteAt,
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		LinkTitle: req.LinkTitle,
	})
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(SendMessageResponse{
			Success: false,
			Error:   "Failed to add message",
		})
		return
	}

	if hub != nil {
		hub.Broadcast(services.Event{Type: "message", Message: msg})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SendMessageResponse{
		Success: true,
		Message: msg,
	})
}
