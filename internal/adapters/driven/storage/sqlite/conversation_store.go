package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/keepsake-labs/chatvault/internal/core/domain"
	"github.com/keepsake-labs/chatvault/internal/core/ports/driven"
)

// conversationStore implements driven.ConversationStore.
type conversationStore struct {
	store *Store
}

var _ driven.ConversationStore = (*conversationStore)(nil)

// Upsert stores a conversation, replacing its messages and search index
// entry in a single transaction. Re-importing the same conversation is
// idempotent: the row is updated in place and keeps its original created_at.
func (s *conversationStore) Upsert(ctx context.Context, conv *domain.Conversation) (int64, error) {
	if err := conv.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	createdAt := conv.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := conv.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	// Freshness of the latest turn. Falls back to the conversation's own
	// updated_at when the final message carries no timestamp.
	var lastMessageAt interface{}
	if n := len(conv.Messages); n > 0 {
		lastMessageAt = updatedAt
		if ts := conv.Messages[n-1].Timestamp; !ts.IsZero() {
			lastMessageAt = ts
		}
	}

	metadataJSON, err := marshalMetadata(conv.Metadata)
	if err != nil {
		return 0, err
	}

	fullText := conv.FullText()

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO conversations (external_id, source, title, created_at, updated_at, last_message_at, message_count, full_text, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(external_id, source) DO UPDATE SET
			title = excluded.title,
			updated_at = excluded.updated_at,
			last_message_at = excluded.last_message_at,
			message_count = excluded.message_count,
			full_text = excluded.full_text,
			metadata = excluded.metadata
		RETURNING id
	`, conv.ExternalID, conv.Source, nullString(conv.Title),
		createdAt, updatedAt, lastMessageAt,
		len(conv.Messages), fullText, metadataJSON).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upserting conversation: %w", err)
	}

	// Full replacement: the payload is the source of truth for messages.
	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE conversation_id = ?", id); err != nil {
		return 0, fmt.Errorf("clearing messages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO messages (conversation_id, role, content, timestamp, sequence_number, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing message insert: %w", err)
	}
	defer stmt.Close()

	for i, msg := range conv.Messages {
		msgMetadata, err := marshalMetadata(msg.Metadata)
		if err != nil {
			return 0, err
		}
		// A message without its own timestamp inherits the
		// conversation's updated_at, same as last_message_at above.
		ts := msg.Timestamp
		if ts.IsZero() {
			ts = updatedAt
		}
		if _, err := stmt.ExecContext(ctx, id, string(msg.Role), msg.Content, ts, i, msgMetadata); err != nil {
			return 0, fmt.Errorf("inserting message %d: %w", i, err)
		}
	}

	// Keep the search index in lock step with the row.
	if _, err := tx.ExecContext(ctx, "DELETE FROM conversations_fts WHERE rowid = ?", id); err != nil {
		return 0, fmt.Errorf("clearing search index entry: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO conversations_fts (rowid, title, full_text) VALUES (?, ?, ?)
	`, id, conv.Title, fullText); err != nil {
		return 0, fmt.Errorf("indexing conversation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return id, nil
}

// Get retrieves a conversation with its messages in display order.
func (s *conversationStore) Get(ctx context.Context, id int64) (*domain.Conversation, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, external_id, source, title, created_at, updated_at, last_message_at, message_count, metadata
		FROM conversations WHERE id = ?
	`, id)

	var conv domain.Conversation
	var title sql.NullString
	var lastMessageAt sql.NullTime
	var metadataJSON string
	if err := row.Scan(&conv.ID, &conv.ExternalID, &conv.Source, &title,
		&conv.CreatedAt, &conv.UpdatedAt, &lastMessageAt, &conv.MessageCount, &metadataJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning conversation: %w", err)
	}

	conv.Title = title.String
	if lastMessageAt.Valid {
		conv.LastMessageAt = lastMessageAt.Time
	}

	metadata, err := unmarshalMetadata(metadataJSON)
	if err != nil {
		return nil, err
	}
	conv.Metadata = metadata

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT role, content, timestamp, sequence_number, metadata
		FROM messages WHERE conversation_id = ?
		ORDER BY sequence_number ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var msg domain.Message
		var role string
		var ts sql.NullTime
		var msgMetadataJSON string
		if err := rows.Scan(&role, &msg.Content, &ts, &msg.SequenceNumber, &msgMetadataJSON); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msg.Role = domain.Role(role)
		if ts.Valid {
			msg.Timestamp = ts.Time
		}
		msgMetadata, err := unmarshalMetadata(msgMetadataJSON)
		if err != nil {
			return nil, err
		}
		msg.Metadata = msgMetadata
		conv.Messages = append(conv.Messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}

	return &conv, nil
}

// UpdatedAt returns the stored freshness timestamp for a conversation.
func (s *conversationStore) UpdatedAt(ctx context.Context, externalID, source string) (time.Time, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT updated_at FROM conversations WHERE external_id = ? AND source = ?
	`, externalID, source)

	var updatedAt sql.NullTime
	if err := row.Scan(&updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, domain.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("scanning updated_at: %w", err)
	}
	if !updatedAt.Valid {
		return time.Time{}, nil
	}
	return updatedAt.Time, nil
}

// Delete removes a conversation, its messages and its index entry.
// Messages go via the foreign key cascade.
func (s *conversationStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting conversation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM conversations_fts WHERE rowid = ?", id); err != nil {
		return fmt.Errorf("clearing search index entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
