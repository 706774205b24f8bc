package service

import (
	"context"
	"time"

	"github.com/Rrens/scribe-mock/internal/domain"
)

// InspectService exposes read-only debug views over sessions and chunks.
// Every call reads the repositories directly.
type InspectService struct {
	sessionRepo domain.SessionRepository
	chunkRepo   domain.ChunkRepository
}

// NewInspectService creates a new inspect service
func NewInspectService(sessionRepo domain.SessionRepository, chunkRepo domain.ChunkRepository) *InspectService {
	return &InspectService{sessionRepo: sessionRepo, chunkRepo: chunkRepo}
}

// SessionChunks lists one session's chunks in chunk-number order alongside
// the session's own chunk list in upload order.
func (s *InspectService) SessionChunks(ctx context.Context, sessionID string) (*domain.SessionChunks, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, internalError("failed to get session", err)
	}
	if session == nil {
		return nil, notFoundError("Session not found")
	}

	chunks, err := s.chunkRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, internalError("failed to list chunks", err)
	}

	summaries := make([]domain.ChunkSummary, 0, len(chunks))
	for _, c := range chunks {
		summary := summarize(c)
		summary.SessionID = ""
		summaries = append(summaries, summary)
	}

	return &domain.SessionChunks{
		SessionID:       sessionID,
		SessionStatus:   session.Status,
		TotalChunks:     len(summaries),
		Chunks:          summaries,
		SessionChunkIDs: session.ChunkIDs,
	}, nil
}

// AllChunks lists every chunk ordered by session id, then chunk number
func (s *InspectService) AllChunks(ctx context.Context) (*domain.AllChunks, error) {
	chunks, err := s.chunkRepo.ListAll(ctx)
	if err != nil {
		return nil, internalError("failed to list chunks", err)
	}

	summaries := make([]domain.ChunkSummary, 0, len(chunks))
	for _, c := range chunks {
		summaries = append(summaries, summarize(c))
	}

	return &domain.AllChunks{
		TotalChunks: len(summaries),
		Chunks:      summaries,
	}, nil
}

func summarize(c domain.Chunk) domain.ChunkSummary {
	var uploadedAt *string
	if c.UploadedAt != nil {
		ts := c.UploadedAt.UTC().Format(time.RFC3339Nano)
		uploadedAt = &ts
	}
	return domain.ChunkSummary{
		ChunkID:     c.ChunkID,
		SessionID:   c.SessionID,
		ChunkNumber: c.ChunkNumber,
		Status:      c.Status,
		FileSize:    c.FileSize,
		UploadedAt:  uploadedAt,
		StoragePath: c.StoragePath,
		PublicURL:   c.PublicURL,
		MimeType:    c.MimeType,
		IsLast:      c.IsLast,
	}
}
