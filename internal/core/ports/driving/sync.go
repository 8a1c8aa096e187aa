package driving

import (
	"context"

	"github.com/keepsake-labs/chatvault/internal/core/domain"
)

// SyncPlanner decides which remote conversations need to be fetched again.
type SyncPlanner interface {
	// Plan compares each candidate's remote freshness against the stored
	// copy and returns the external IDs that should be re-synced. The
	// decision fails open: when freshness cannot be established, the
	// candidate is included.
	Plan(ctx context.Context, candidates []domain.SyncCandidate) (*domain.SyncPlan, error)
}
