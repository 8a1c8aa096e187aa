package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/keepsake-labs/chatvault/internal/core/domain"
	"github.com/keepsake-labs/chatvault/internal/core/ports/driven"
)

// searchStore implements driven.SearchStore.
type searchStore struct {
	store *Store
}

var _ driven.SearchStore = (*searchStore)(nil)

// Search runs a full-text query. The count and the page share one WHERE
// clause so total always agrees with the returned rows.
func (s *searchStore) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchPage, error) {
	where := "conversations_fts MATCH ?"
	args := []interface{}{query.Text}

	if query.Source != "" {
		where += " AND c.source = ?"
		args = append(args, query.Source)
	}
	if query.CreatedFrom != nil {
		where += " AND c.created_at >= ?"
		args = append(args, *query.CreatedFrom)
	}
	if query.CreatedTo != nil {
		where += " AND c.created_at <= ?"
		args = append(args, *query.CreatedTo)
	}

	var total int
	err := s.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM conversations_fts
		JOIN conversations c ON c.id = conversations_fts.rowid
		WHERE `+where, args...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("counting matches: %w", err)
	}

	pageArgs := append(args, query.Limit, query.Offset)
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT c.id, c.external_id, c.source, c.title, c.created_at, c.updated_at, c.message_count,
			snippet(conversations_fts, 1, '<mark>', '</mark>', '...', 32)
		FROM conversations_fts
		JOIN conversations c ON c.id = conversations_fts.rowid
		WHERE `+where+`
		ORDER BY c.updated_at DESC, c.id DESC
		LIMIT ? OFFSET ?
	`, pageArgs...)
	if err != nil {
		return nil, fmt.Errorf("querying matches: %w", err)
	}
	defer rows.Close()

	results, err := scanResults(rows, true)
	if err != nil {
		return nil, err
	}

	return &domain.SearchPage{
		Results:    results,
		TotalCount: total,
		Limit:      query.Limit,
		Offset:     query.Offset,
	}, nil
}

// Recent returns the most recently updated conversations, no query needed.
func (s *searchStore) Recent(ctx context.Context, limit int) ([]domain.SearchResult, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, external_id, source, title, created_at, updated_at, message_count
		FROM conversations
		ORDER BY updated_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent conversations: %w", err)
	}
	defer rows.Close()

	return scanResults(rows, false)
}

// Stats reports aggregate counts for the archive.
func (s *searchStore) Stats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{BySource: map[string]int{}}

	err := s.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(message_count), 0) FROM conversations
	`).Scan(&stats.TotalConversations, &stats.TotalMessages)
	if err != nil {
		return nil, fmt.Errorf("querying totals: %w", err)
	}

	// Aggregate functions lose the column's datetime affinity, so the
	// bounds are read off the raw column instead.
	if stats.TotalConversations > 0 {
		var earliest, latest time.Time
		err = s.store.db.QueryRowContext(ctx,
			"SELECT created_at FROM conversations ORDER BY created_at ASC LIMIT 1").Scan(&earliest)
		if err != nil {
			return nil, fmt.Errorf("querying earliest created_at: %w", err)
		}
		err = s.store.db.QueryRowContext(ctx,
			"SELECT created_at FROM conversations ORDER BY created_at DESC LIMIT 1").Scan(&latest)
		if err != nil {
			return nil, fmt.Errorf("querying latest created_at: %w", err)
		}
		stats.EarliestCreatedAt = &earliest
		stats.LatestCreatedAt = &latest
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT source, COUNT(*) FROM conversations GROUP BY source
	`)
	if err != nil {
		return nil, fmt.Errorf("querying per-source counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("scanning per-source count: %w", err)
		}
		stats.BySource[source] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating per-source counts: %w", err)
	}

	return stats, nil
}

// scanResults reads SearchResult rows, optionally with a trailing snippet column.
func scanResults(rows *sql.Rows, withSnippet bool) ([]domain.SearchResult, error) {
	var results []domain.SearchResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.SearchResult
		var title sql.NullString
		var createdAt, updatedAt time.Time
		dest := []interface{}{&r.ID, &r.ExternalID, &r.Source, &title, &createdAt, &updatedAt, &r.MessageCount}
		if withSnippet {
			dest = append(dest, &r.Snippet)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Title = title.String
		r.CreatedAt = createdAt
		r.UpdatedAt = updatedAt
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}
	return results, nil
}
