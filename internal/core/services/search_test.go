package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepsake-labs/chatvault/internal/core/domain"
	"github.com/keepsake-labs/chatvault/internal/core/ports/driven"
)

// --- Mock implementations for search testing ---

// searchMockStore implements driven.SearchStore and records the last query.
type searchMockStore struct {
	lastQuery   domain.SearchQuery
	lastRecentN int
	page        *domain.SearchPage
}

var _ driven.SearchStore = (*searchMockStore)(nil)

func (m *searchMockStore) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchPage, error) {
	m.lastQuery = query
	if m.page != nil {
		return m.page, nil
	}
	return &domain.SearchPage{
		Results: []domain.SearchResult{},
		Limit:   query.Limit,
		Offset:  query.Offset,
	}, nil
}

func (m *searchMockStore) Recent(ctx context.Context, limit int) ([]domain.SearchResult, error) {
	m.lastRecentN = limit
	return []domain.SearchResult{}, nil
}

func (m *searchMockStore) Stats(ctx context.Context) (*domain.Stats, error) {
	return &domain.Stats{}, nil
}

func TestSearchEmptyQueryShortCircuits(t *testing.T) {
	store := &searchMockStore{}
	svc := NewSearchService(&plannerMockStore{}, store)

	page, err := svc.Search(context.Background(), "   ", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, page.Results)
	assert.Equal(t, 0, page.TotalCount)
	assert.Equal(t, defaultSearchLimit, page.Limit)
	// The store must not be hit at all.
	assert.Empty(t, store.lastQuery.Text)
}

func TestSearchLimitDefaultsAndCaps(t *testing.T) {
	store := &searchMockStore{}
	svc := NewSearchService(&plannerMockStore{}, store)
	ctx := context.Background()

	_, err := svc.Search(ctx, "hello", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, defaultSearchLimit, store.lastQuery.Limit)

	_, err = svc.Search(ctx, "hello", domain.SearchOptions{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, maxSearchLimit, store.lastQuery.Limit)

	_, err = svc.Search(ctx, "hello", domain.SearchOptions{Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, 0, store.lastQuery.Offset)
}

func TestSearchParsesDateFilters(t *testing.T) {
	store := &searchMockStore{}
	svc := NewSearchService(&plannerMockStore{}, store)
	ctx := context.Background()

	_, err := svc.Search(ctx, "hello", domain.SearchOptions{
		CreatedFrom: "2025-01-01",
		CreatedTo:   "2025-02-01T00:00:00Z",
	})
	require.NoError(t, err)
	require.NotNil(t, store.lastQuery.CreatedFrom)
	require.NotNil(t, store.lastQuery.CreatedTo)
	assert.Equal(t, 2025, store.lastQuery.CreatedFrom.Year())

	_, err = svc.Search(ctx, "hello", domain.SearchOptions{CreatedFrom: "last tuesday"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchTrimsQuery(t *testing.T) {
	store := &searchMockStore{}
	svc := NewSearchService(&plannerMockStore{}, store)

	_, err := svc.Search(context.Background(), "  hello world  ", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "hello world", store.lastQuery.Text)
}

func TestRecentLimits(t *testing.T) {
	store := &searchMockStore{}
	svc := NewSearchService(&plannerMockStore{}, store)
	ctx := context.Background()

	_, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultRecentLimit, store.lastRecentN)

	_, err = svc.Recent(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, maxRecentLimit, store.lastRecentN)
}
