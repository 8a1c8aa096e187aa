package domain

import "time"

// SearchQuery is a fully resolved full-text query against the archive.
// Text is required; the remaining fields narrow the result set.
type SearchQuery struct {
	Text        string
	Source      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// SearchOptions carries raw, user-supplied filter values before validation.
// Timestamp bounds are strings so callers at the edge do not need to parse.
type SearchOptions struct {
	Source      string
	CreatedFrom string
	CreatedTo   string
	Limit       int
	Offset      int
}

// SearchResult is one matching conversation with a highlighted snippet of
// the matched text.
type SearchResult struct {
	ID           int64     `json:"id"`
	ExternalID   string    `json:"conversation_id"`
	Source       string    `json:"source"`
	Title        string    `json:"title,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
	Snippet      string    `json:"snippet,omitempty"`
}

// SearchPage is one page of results. TotalCount reflects the full match set
// under the same filters, not just this page.
type SearchPage struct {
	Results    []SearchResult `json:"results"`
	TotalCount int            `json:"total"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
}

// Stats aggregates what the archive currently holds.
type Stats struct {
	TotalConversations int            `json:"total_conversations"`
	TotalMessages      int            `json:"total_messages"`
	BySource           map[string]int `json:"by_source"`
	EarliestCreatedAt  *time.Time     `json:"earliest_created_at,omitempty"`
	LatestCreatedAt    *time.Time     `json:"latest_created_at,omitempty"`
}
