package domain

// SyncCandidate identifies a remote conversation and the freshness the remote
// side reports for it. UpdatedAt is the raw remote string; it is parsed when
// the plan is computed.
type SyncCandidate struct {
	ExternalID string `json:"conversation_id"`
	Source     string `json:"source"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// SyncPlan lists which of the checked candidates need to be fetched again.
// Ordering follows the input candidate order.
type SyncPlan struct {
	NeedsSync      []string `json:"needs_sync"`
	TotalChecked   int      `json:"total_checked"`
	TotalNeedsSync int      `json:"total_needs_sync"`
}
