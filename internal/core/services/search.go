package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/keepsake-labs/chatvault/internal/core/domain"
	"github.com/keepsake-labs/chatvault/internal/core/ports/driven"
	"github.com/keepsake-labs/chatvault/internal/core/ports/driving"
	"github.com/keepsake-labs/chatvault/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
	defaultRecentLimit = 10
	maxRecentLimit     = 50
)

// SearchService provides full-text search over the archive.
type SearchService struct {
	convStore   driven.ConversationStore
	searchStore driven.SearchStore
}

// NewSearchService creates a new search service.
func NewSearchService(convStore driven.ConversationStore, searchStore driven.SearchStore) *SearchService {
	return &SearchService{
		convStore:   convStore,
		searchStore: searchStore,
	}
}

// Search runs a full-text query over the archive.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.SearchPage, error) {
	query = strings.TrimSpace(query)

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	// Return empty for empty query
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return &domain.SearchPage{
			Results:    []domain.SearchResult{},
			TotalCount: 0,
			Limit:      limit,
			Offset:     offset,
		}, nil
	}

	q := domain.SearchQuery{
		Text:   query,
		Source: opts.Source,
		Limit:  limit,
		Offset: offset,
	}

	if opts.CreatedFrom != "" {
		t, err := domain.ParseTimestamp(opts.CreatedFrom)
		if err != nil {
			return nil, fmt.Errorf("parsing created-from filter: %w", err)
		}
		q.CreatedFrom = &t
	}
	if opts.CreatedTo != "" {
		t, err := domain.ParseTimestamp(opts.CreatedTo)
		if err != nil {
			return nil, fmt.Errorf("parsing created-to filter: %w", err)
		}
		q.CreatedTo = &t
	}

	logger.Debug("Query: %q limit=%d offset=%d source=%q", query, limit, offset, opts.Source)
	return s.searchStore.Search(ctx, q)
}

// Get retrieves a conversation with its messages.
func (s *SearchService) Get(ctx context.Context, id int64) (*domain.Conversation, error) {
	return s.convStore.Get(ctx, id)
}

// Recent returns the most recently updated conversations.
func (s *SearchService) Recent(ctx context.Context, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return s.searchStore.Recent(ctx, limit)
}

// Stats reports aggregate counts for the archive.
func (s *SearchService) Stats(ctx context.Context) (*domain.Stats, error) {
	return s.searchStore.Stats(ctx)
}
