package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// CleanupResponse is the body of POST /api/cleanup.
type CleanupResponse struct {
	Success      bool   `json:"success"`
	DeletedCount int    `json:"deletedCount"`
	Message      string `json:"message"`
}

// CleanupMessages runs an explicit eviction sweep. Reads already evict
// lazily; this exists for callers that want proactive cleanup on a timer.
func CleanupMessages(w http.ResponseWriter, r *http.Request) {
	deleted := ledger.EvictExpired()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CleanupResponse{
		Success:      true,
		DeletedCount: deleted,
		Message:      fmt.Sprintf("Deleted %d expired messages", deleted),
	})
}
