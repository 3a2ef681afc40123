package handlers

import (
	"github.com/driftchat/driftchat-backend/internal/services"
)

var (
	ledger   *services.Ledger
	presence *services.Presence
	notes    *services.Notes
	hub      *services.Hub
)

// Init wires the services into the handler package. Called once from main
// before the routes are registered.
func Init(l *services.Ledger, p *services.Presence, n *services.Notes, h *services.Hub) {
	ledger = l
	presence = p
	notes = n
	hub = h
}
