package models

// Note is a persisted quick-note. Notes live in the same document as
// messages and presence records but have no expiry; they stay until deleted.
type Note struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	Links     []string `json:"links"`
	Author    string   `json:"author"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}
