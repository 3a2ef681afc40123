package models

// MessageType determines which optional fields of a Message are meaningful.
// Valid values: "text", "image", "link".
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeLink  MessageType = "link"
)

// Message is a single ephemeral chat message. Messages are never mutated
// after creation; they disappear the first time a read or sweep observes
// DeleteAt in the past. All times are milliseconds since the Unix epoch,
// matching the wire format the frontend consumes.
type Message struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Timestamp int64       `json:"timestamp"`
	DeleteAt  int64       `json:"deleteAt"`
	Username  string      `json:"username"`
	Type      MessageType `json:"type"`
	ImageURL  string      `json:"imageUrl,omitempty"`
	LinkURL   string      `json:"linkUrl,omitempty"`
	LinkTitle string      `json:"linkTitle,omitempty"`
}

// ValidDeleteMinutes are the only expiry windows a client may pick.
var ValidDeleteMinutes = []int{1, 5, 10}

// IsValidDeleteMinutes reports whether m is one of the allowed expiry choices.
func IsValidDeleteMinutes(m int) bool {
	for _, v := range ValidDeleteMinutes {
		if m == v {
			return true
		}
	}
	return false
}
