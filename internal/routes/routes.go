package routes

import (
	"net/http"

	"github.com/driftchat/driftchat-backend/internal/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes registers the HTTP API. uploadDir is served statically so the
// imageUrl returned by the upload endpoint resolves.
func SetupRoutes(r *chi.Mux, uploadDir string) {
	// Ephemeral chat routes
	r.Get("/api/messages", handlers.GetMessages)
	r.Post("/api/messages/send", handlers.SendMessage)
	r.Post("/api/cleanup", handlers.CleanupMessages)

	// Presence routes
	r.Post("/api/online", handlers.UpdateOnline)
	r.Get("/api/online", handlers.GetOnline)
	r.Delete("/api/online", handlers.SignOff)

	// Identity bootstrap for new clients
	r.Get("/api/identity", handlers.GetIdentity)

	// Quick-notes routes
	r.Get("/api/notes", handlers.GetNotesIndex)
	r.Post("/api/notes", handlers.CreateNote)
	r.Get("/api/notes/{id}", handlers.GetNote)
	r.Put("/api/notes/{id}", handlers.UpdateNote)
	r.Delete("/api/notes/{id}", handlers.DeleteNote)

	// Image upload + static serving of uploaded files
	r.Post("/api/upload", handlers.UploadFile)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// WebSocket event stream (message + presence push)
	r.Get("/ws", handlers.EventsWebSocket)

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())
}
