package driven

import (
	"context"
	"time"

	"github.com/keepsake-labs/chatvault/internal/core/domain"
)

// ConversationStore persists conversations and their messages.
type ConversationStore interface {
	// Upsert stores a conversation, replacing its messages and search
	// index entry atomically. Returns the local conversation ID.
	Upsert(ctx context.Context, conv *domain.Conversation) (int64, error)

	// Get retrieves a conversation with its messages in display order.
	Get(ctx context.Context, id int64) (*domain.Conversation, error)

	// UpdatedAt returns the stored freshness timestamp for a conversation
	// identified by its external ID and source.
	UpdatedAt(ctx context.Context, externalID, source string) (time.Time, error)

	// Delete removes a conversation, its messages and its index entry.
	Delete(ctx context.Context, id int64) error
}

// SearchStore queries the full-text index over stored conversations.
type SearchStore interface {
	// Search runs a full-text query and returns one page of results
	// together with the total match count under the same filters.
	Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchPage, error)

	// Recent returns the most recently updated conversations.
	Recent(ctx context.Context, limit int) ([]domain.SearchResult, error)

	// Stats reports aggregate counts for the archive.
	Stats(ctx context.Context) (*domain.Stats, error)
}
