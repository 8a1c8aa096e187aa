package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/keepsake-labs/chatvault/internal/core/domain"
	"github.com/keepsake-labs/chatvault/internal/core/ports/driven"
	"github.com/keepsake-labs/chatvault/internal/core/ports/driving"
	"github.com/keepsake-labs/chatvault/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService imports conversation payloads into the archive.
type IngestService struct {
	convStore driven.ConversationStore
}

// NewIngestService creates a new ingest service.
func NewIngestService(convStore driven.ConversationStore) *IngestService {
	return &IngestService{convStore: convStore}
}

// Import upserts a batch of conversations. A failing conversation does not
// abort the batch: it is logged, counted and skipped.
func (s *IngestService) Import(
	ctx context.Context, source string, payloads []domain.ConversationPayload,
) (*domain.ImportReport, error) {
	batchID := uuid.NewString()
	report := &domain.ImportReport{
		BatchID: batchID,
		Source:  source,
	}

	logger.Info("Importing batch %s: %d conversations", batchID, len(payloads))

	for _, payload := range payloads {
		conv, err := s.fromPayload(source, payload)
		if err != nil {
			logger.Warn("Batch %s: skipping conversation %q: %v", batchID, payload.ExternalID, err)
			report.Failed++
			continue
		}

		if _, err := s.convStore.Upsert(ctx, conv); err != nil {
			logger.Warn("Batch %s: storing conversation %q failed: %v", batchID, payload.ExternalID, err)
			report.Failed++
			continue
		}
		report.Imported++
	}

	logger.Info("Batch %s done: %d imported, %d failed", batchID, report.Imported, report.Failed)
	return report, nil
}

// fromPayload converts a raw payload into a validated domain conversation.
// The source argument, when non-empty, overrides the payload's own source.
func (s *IngestService) fromPayload(source string, payload domain.ConversationPayload) (*domain.Conversation, error) {
	if source == "" {
		source = payload.Source
	}

	conv := &domain.Conversation{
		ExternalID: payload.ExternalID,
		Source:     source,
		Title:      payload.Title,
		Metadata:   payload.Metadata,
	}

	if payload.UpdatedAt != "" {
		t, err := domain.ParseTimestamp(payload.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		conv.UpdatedAt = t
	}

	if payload.CreatedAt != "" {
		t, err := domain.ParseTimestamp(payload.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		conv.CreatedAt = t
	} else {
		conv.CreatedAt = conv.UpdatedAt
	}

	for i, mp := range payload.Messages {
		msg := domain.Message{
			Role:           domain.Role(mp.Role),
			Content:        mp.Content,
			SequenceNumber: i,
			Metadata:       mp.Metadata,
		}
		// A message timestamp the source mangled is treated as absent
		// rather than failing the whole conversation.
		if mp.Timestamp != "" {
			if t, err := domain.ParseTimestamp(mp.Timestamp); err == nil {
				msg.Timestamp = t
			}
		}
		conv.Messages = append(conv.Messages, msg)
	}

	if err := conv.Validate(); err != nil {
		return nil, err
	}
	return conv, nil
}
