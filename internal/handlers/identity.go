package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/driftchat/driftchat-backend/pkg/utils"
	"github.com/google/uuid"
)

// IdentityResponse is the body of GET /api/identity.
type IdentityResponse struct {
	Success  bool   `json:"success"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// GetIdentity hands a fresh device-derived identity to a new client: a
// stable userId to heartbeat with and a display name guessed from the
// User-Agent. Clients keep both for the lifetime of the browser session.
func GetIdentity(w http.ResponseWriter, r *http.Request) {
	userID := fmt.Sprintf("user_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:9])

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(IdentityResponse{
		Success:  true,
		UserID:   userID,
		Username: utils.GenerateUsername(r.UserAgent()),
	})
}
