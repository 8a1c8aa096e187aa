package services

import (
	"context"
	"errors"

	"github.com/keepsake-labs/chatvault/internal/core/domain"
	"github.com/keepsake-labs/chatvault/internal/core/ports/driven"
	"github.com/keepsake-labs/chatvault/internal/core/ports/driving"
	"github.com/keepsake-labs/chatvault/internal/logger"
)

// Ensure PlannerService implements the interface.
var _ driving.SyncPlanner = (*PlannerService)(nil)

// PlannerService decides which remote conversations are worth fetching
// again. The decision fails open: any doubt about freshness means sync.
type PlannerService struct {
	convStore driven.ConversationStore
}

// NewPlannerService creates a new sync planner service.
func NewPlannerService(convStore driven.ConversationStore) *PlannerService {
	return &PlannerService{convStore: convStore}
}

// Plan compares each candidate's remote freshness against the stored copy.
// Candidates missing an external ID or source are skipped silently.
func (s *PlannerService) Plan(ctx context.Context, candidates []domain.SyncCandidate) (*domain.SyncPlan, error) {
	plan := &domain.SyncPlan{
		NeedsSync:    []string{},
		TotalChecked: len(candidates),
	}

	for _, c := range candidates {
		if c.ExternalID == "" || c.Source == "" {
			continue
		}

		needs, err := s.needsSync(ctx, c)
		if err != nil {
			return nil, err
		}
		if needs {
			plan.NeedsSync = append(plan.NeedsSync, c.ExternalID)
		}
	}

	plan.TotalNeedsSync = len(plan.NeedsSync)
	return plan, nil
}

// needsSync applies the staleness rules for a single candidate.
func (s *PlannerService) needsSync(ctx context.Context, c domain.SyncCandidate) (bool, error) {
	stored, err := s.convStore.UpdatedAt(ctx, c.ExternalID, c.Source)
	if err != nil {
		// Never stored: sync.
		if errors.Is(err, domain.ErrNotFound) {
			return true, nil
		}
		return false, err
	}

	// Stored copy has no freshness information: sync.
	if stored.IsZero() {
		return true, nil
	}

	// Remote gives no timestamp: cannot prove the copy is current, sync.
	if c.UpdatedAt == "" {
		return true, nil
	}

	remote, err := domain.ParseTimestamp(c.UpdatedAt)
	if err != nil {
		logger.Debug("Unparsable remote timestamp for %q (%s): %v", c.ExternalID, c.Source, err)
		return true, nil
	}

	return remote.After(stored), nil
}
