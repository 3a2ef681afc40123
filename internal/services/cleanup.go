package services

import (
	"log"
	"time"
)

// StartExpirySweep starts a background goroutine that periodically evicts
// expired messages and stale presence records. Eviction is already lazy on
// every read, so the sweep only keeps the file small while nobody is
// polling. Runs once immediately on startup, then on every tick.
func StartExpirySweep(ledger *Ledger, presence *Presence, intervalSeconds int) {
	if intervalSeconds <= 0 {
		intervalSeconds = 60
	}

	go func() {
		ticker := time.NewTicker(time.Duration(intervalSeconds) * time.Second)
		defer ticker.Stop()

		sweep(ledger, presence)
		for range ticker.C {
			sweep(ledger, presence)
		}
	}()
}

func sweep(ledger *Ledger, presence *Presence) {
	if removed := ledger.EvictExpired(); removed > 0 {
		log.Printf("expiry sweep removed %d message(s)", removed)
	}
	// ListActive drops stale presence records as a side effect.
	presence.ListActive()
}
