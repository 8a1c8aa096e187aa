package domain

// ConversationPayload is the wire shape a collector supplies for one remote
// thread. Timestamps arrive as strings in whatever form the source produced
// and are normalised once, on ingestion.
type ConversationPayload struct {
	ExternalID string           `json:"conversation_id"`
	Source     string           `json:"source,omitempty"`
	Title      string           `json:"title,omitempty"`
	CreatedAt  string           `json:"created_at,omitempty"`
	UpdatedAt  string           `json:"updated_at,omitempty"`
	Metadata   map[string]any   `json:"metadata,omitempty"`
	Messages   []MessagePayload `json:"messages"`
}

// MessagePayload is one turn within a ConversationPayload, in display order.
type MessagePayload struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp string         `json:"timestamp,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// ImportReport summarises a batch import. Failures are isolated per
// conversation, so Imported+Failed always equals the batch size.
type ImportReport struct {
	// BatchID correlates log lines for one import run.
	BatchID string `json:"batch_id"`

	// Source is the service the batch was imported for.
	Source string `json:"source"`

	// Imported counts conversations upserted successfully.
	Imported int `json:"imported"`

	// Failed counts conversations rejected or failed to store.
	Failed int `json:"failed"`
}
