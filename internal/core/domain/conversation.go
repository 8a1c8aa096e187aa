package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies the author of a message turn.
type Role string

// Known message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Message is one turn within a conversation. Messages are owned exclusively
// by their parent conversation and are replaced wholesale on every upsert.
type Message struct {
	// Role is the author of the turn.
	Role Role `json:"role"`

	// Content is the message text.
	Content string `json:"content"`

	// Timestamp is when the message was sent. When the source did not
	// supply one, the store falls back to the conversation's updated
	// time on persistence.
	Timestamp time.Time `json:"timestamp,omitzero"`

	// SequenceNumber is the zero-based display position within the
	// conversation. It follows the order the messages were presented in,
	// never their timestamps.
	SequenceNumber int `json:"sequence_number"`

	// Metadata contains arbitrary key-value pairs from the source.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Conversation is a chat thread mirrored from a remote service.
// It is identified by (ExternalID, Source); ID is assigned by the store on
// first insert and remains stable across re-ingestion.
type Conversation struct {
	// ID is the internal identifier assigned by the store.
	ID int64 `json:"id"`

	// ExternalID is the identifier the remote service uses.
	ExternalID string `json:"conversation_id"`

	// Source names the remote service (e.g. "claude", "chatgpt").
	Source string `json:"source"`

	// Title is the optional conversation title.
	Title string `json:"title,omitempty"`

	// CreatedAt is when the conversation was created at the source.
	// Preserved across updates.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the conversation last changed at the source.
	UpdatedAt time.Time `json:"updated_at"`

	// LastMessageAt is derived from the final message's timestamp.
	LastMessageAt time.Time `json:"last_message_at,omitzero"`

	// MessageCount is derived from the message set.
	MessageCount int `json:"message_count"`

	// Metadata contains arbitrary key-value pairs from the source.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Messages holds the turns in display order.
	Messages []Message `json:"messages"`
}

// Validate checks that the conversation can be ingested. A malformed message
// rejects the whole conversation, never a partial message set.
func (c *Conversation) Validate() error {
	if c.ExternalID == "" {
		return fmt.Errorf("%w: missing external id", ErrInvalidInput)
	}
	if c.Source == "" {
		return fmt.Errorf("%w: missing source", ErrInvalidInput)
	}
	for i := range c.Messages {
		if !c.Messages[i].Role.Valid() {
			return fmt.Errorf("%w: message %d has invalid role %q", ErrInvalidInput, i, c.Messages[i].Role)
		}
		if c.Messages[i].Content == "" {
			return fmt.Errorf("%w: message %d has no content", ErrInvalidInput, i)
		}
	}
	return nil
}

// FullText builds the denormalised search blob: one "<role>: <content>" line
// per message, in display order.
func (c *Conversation) FullText() string {
	if len(c.Messages) == 0 {
		return ""
	}
	parts := make([]string, len(c.Messages))
	for i := range c.Messages {
		parts[i] = string(c.Messages[i].Role) + ": " + c.Messages[i].Content
	}
	return strings.Join(parts, "\n")
}
