package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/driftchat/driftchat-backend/internal/models"
	"github.com/driftchat/driftchat-backend/internal/services"
)

// OnlineRequest is the body of POST and DELETE /api/online.
type OnlineRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// OnlineResponse carries the active set after a heartbeat or a read.
// OnlineUsers is always present, even when nobody is active.
type OnlineResponse struct {
	Success     bool                `json:"success"`
	OnlineUsers []models.OnlineUser `json:"onlineUsers"`
	OnlineCount int                 `json:"onlineCount"`
	Error       string              `json:"error,omitempty"`
}

// UpdateOnline handles a presence heartbeat and returns the refreshed
// active set, so polling clients get both in one round trip.
func UpdateOnline(w http.ResponseWriter, r *http.Request) {
	var req OnlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(OnlineResponse{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if req.UserID == "" || req.Username == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(OnlineResponse{
			Success: false,
			Error:   "User ID and username are required",
		})
		return
	}

	if err := presence.Heartbeat(req.UserID, req.Username); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(OnlineResponse{
			Success: false,
			Error:   "Failed to update online status",
		})
		return
	}

	active := presence.ListActive()
	if hub != nil {
		hub.Broadcast(services.Event{Type: "presence", OnlineUsers: active, OnlineCount: len(active)})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(OnlineResponse{
		Success:     true,
		OnlineUsers: active,
		OnlineCount: len(active),
	})
}

// GetOnline returns who is currently inside the online threshold.
func GetOnline(w http.ResponseWriter, r *http.Request) {
	active := presence.ListActive()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(OnlineResponse{
		Success:     true,
		OnlineUsers: active,
		OnlineCount: len(active),
	})
}

// SignOff removes a presence record immediately instead of waiting for it
// to go stale. Polling clients do not have to call this.
func SignOff(w http.ResponseWriter, r *http.Request) {
	var req OnlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(OnlineResponse{
			Success: false,
			Error:   "User ID is required",
		})
		return
	}

	if err := presence.Remove(req.UserID); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(OnlineResponse{
			Success: false,
			Error:   "Failed to remove user",
		})
		return
	}

	active := presence.ListActive()
	if hub != nil {
		hub.Broadcast(services.Event{Type: "presence", OnlineUsers: active, OnlineCount: len(active)})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(OnlineResponse{
		Success:     true,
		OnlineUsers: active,
		OnlineCount: len(active),
	})
}
