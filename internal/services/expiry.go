package services

import "time"

const (
	// OnlineThreshold is how long after its last heartbeat a presence record
	// still counts as active. Clients heartbeat every 5 seconds, so a single
	// missed or delayed heartbeat does not flip a user to inactive.
	OnlineThreshold = 10 * time.Second

	// HeartbeatInterval is the cadence clients are expected to send
	// heartbeats at. Kept at half of OnlineThreshold.
	HeartbeatInterval = 5 * time.Second
)

// messageExpired reports whether a message with the given deleteAt deadline
// is expired at now. A deadline exactly equal to now counts as expired; the
// survival test is strictly deleteAt > now. Both values are epoch millis.
func messageExpired(deleteAt, now int64) bool {
	return deleteAt <= now
}

// userActive reports whether a presence record last seen at lastSeen is
// still active at now. Strictly now - lastSeen < OnlineThreshold.
func userActive(lastSeen, now int64) bool {
	return now-lastSeen < OnlineThreshold.Milliseconds()
}
