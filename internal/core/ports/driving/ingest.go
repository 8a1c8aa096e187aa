package driving

import (
	"context"

	"github.com/keepsake-labs/chatvault/internal/core/domain"
)

// Ingestor imports conversation payloads into the archive.
type Ingestor interface {
	// Import upserts a batch of conversations. The source argument, when
	// non-empty, overrides the source declared on each payload. Failures
	// are isolated per conversation and tallied in the report.
	Import(ctx context.Context, source string, payloads []domain.ConversationPayload) (*domain.ImportReport, error)
}
