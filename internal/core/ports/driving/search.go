package driving

import (
	"context"

	"github.com/keepsake-labs/chatvault/internal/core/domain"
)

// SearchService provides search and retrieval capabilities to external actors.
type SearchService interface {
	// Search runs a full-text query over the archive.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchPage, error)

	// Get retrieves a conversation with its messages.
	Get(ctx context.Context, id int64) (*domain.Conversation, error)

	// Recent returns the most recently updated conversations.
	Recent(ctx context.Context, limit int) ([]domain.SearchResult, error)

	// Stats reports aggregate counts for the archive.
	Stats(ctx context.Context) (*domain.Stats, error)
}
