package models

// OnlineUser is a presence record keyed by the client-generated UserID.
// At most one record exists per UserID; every heartbeat overwrites LastSeen
// and Username (renames mid-session are allowed), while JoinedAt is set once
// on the first heartbeat and never touched again.
type OnlineUser struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	LastSeen int64  `json:"lastSeen"`
	JoinedAt int64  `json:"joinedAt"`
}
