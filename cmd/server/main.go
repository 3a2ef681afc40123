package main

import (
	"log"
	"net/http"
	"sync"

	"github.com/joho/godotenv"

	"github.com/driftchat/driftchat-backend/internal/config"
	"github.com/driftchat/driftchat-backend/internal/handlers"
	"github.com/driftchat/driftchat-backend/internal/middleware"
	"github.com/driftchat/driftchat-backend/internal/routes"
	"github.com/driftchat/driftchat-backend/internal/services"
	"github.com/driftchat/driftchat-backend/internal/store"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Open the single-file document store
	log.Printf("Opening database file %s...", cfg.DataFile)
	st, err := store.NewFileStore(cfg.DataFile)
	if err != nil {
		log.Fatal("Failed to open database file:", err)
	}

	// One lock serializes every load-mutate-save round trip across the
	// services; messages, presence and notes all live in the same document.
	var docMu sync.Mutex
	ledger := services.NewLedger(st, &docMu)
	presence := services.NewPresence(st, &docMu)
	notes := services.NewNotes(st, &docMu)
	hub := services.NewHub()

	handlers.Init(ledger, presence, notes, hub)

	// Prepare upload directory
	if err := handlers.InitUploads(cfg.UploadDir); err != nil {
		log.Printf("Warning: %v", err)
		log.Println("File uploads will not be available")
	} else {
		log.Println("✅ Upload directory ready:", cfg.UploadDir)
	}

	// Start background expiry sweep
	// Reads already evict lazily; the sweep keeps the file small while idle.
	services.StartExpirySweep(ledger, presence, cfg.SweepIntervalSeconds)
	log.Printf("✅ Expiry sweep started (every %ds)", cfg.SweepIntervalSeconds)

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → WriteRateLimit
	// Non-production: global rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + write rate limiting)")
	} else {
		r.Use(middleware.GlobalRateLimit)
	}

	// Health check (no rate limit concerns; cheap)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r, cfg.UploadDir)

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET    /health")
	log.Println("  GET    /api/messages")
	log.Println("  POST   /api/messages/send")
	log.Println("  POST   /api/cleanup")
	log.Println("  GET    /api/online")
	log.Println("  POST   /api/online")
	log.Println("  DELETE /api/online")
	log.Println("  GET    /api/identity")
	log.Println("  GET    /api/notes")
	log.Println("  POST   /api/notes")
	log.Println("  GET    /api/notes/{id}")
	log.Println("  PUT    /api/notes/{id}")
	log.Println("  DELETE /api/notes/{id}")
	log.Println("  POST   /api/upload")
	log.Println("  GET    /ws")
	log.Println("  GET    /metrics")

	log.Printf("🚀 Driftchat backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
