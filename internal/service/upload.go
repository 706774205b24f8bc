package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/scribe-mock/internal/config"
	"github.com/Rrens/scribe-mock/internal/domain"
)

const defaultExtension = "wav"

// UploadService coordinates sessions and chunks through the chunked
// upload protocol: issue target, accept raw bytes, confirm.
type UploadService struct {
	sessionRepo     domain.SessionRepository
	chunkRepo       domain.ChunkRepository
	baseURL         string
	defaultMimeType string
	newID           func() string
	now             func() time.Time
}

// NewUploadService creates a new upload service
func NewUploadService(
	sessionRepo domain.SessionRepository,
	chunkRepo domain.ChunkRepository,
	cfg config.UploadConfig,
) *UploadService {
	mimeType := cfg.DefaultMimeType
	if mimeType == "" {
		mimeType = domain.DefaultMimeType
	}
	return &UploadService{
		sessionRepo:     sessionRepo,
		chunkRepo:       chunkRepo,
		baseURL:         cfg.TrimmedBaseURL(),
		defaultMimeType: mimeType,
		newID:           uuid.NewString,
		now:             time.Now,
	}
}

// CreateSession starts a new recording session and returns it
func (s *UploadService) CreateSession(ctx context.Context, input domain.SessionCreate) (*domain.Session, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, validationError("userId is required")
	}

	now := s.now().UTC()
	session := &domain.Session{
		ID:          s.newID(),
		UserID:      input.UserID,
		PatientID:   optional(input.PatientID),
		PatientName: optional(input.PatientName),
		Status:      input.Status,
		StartTime:   input.StartTime,
		TemplateID:  optional(input.TemplateID),
		ChunkIDs:    []string{},
		CreatedAt:   now,
	}
	if session.Status == "" {
		session.Status = domain.DefaultSessionStatus
	}
	if session.StartTime == "" {
		session.StartTime = now.Format(time.RFC3339Nano)
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, internalError("failed to create session", err)
	}

	log.Info().
		Str("session_id", session.ID).
		Str("user_id", session.UserID).
		Str("status", session.Status).
		Msg("session created")

	return session, nil
}

// IssueUploadTarget registers a pending chunk and returns where to upload it.
// Repeated calls for the same chunk reset it to pending.
func (s *UploadService) IssueUploadTarget(ctx context.Context, req domain.UploadTargetRequest) (*domain.UploadTarget, error) {
	if req.SessionID == "" || req.ChunkNumber == nil {
		return nil, validationError("sessionId and chunkNumber are required")
	}
	if *req.ChunkNumber < 0 {
		return nil, validationError("chunkNumber must be non-negative")
	}
	chunkNumber := *req.ChunkNumber

	if _, err := s.requireSession(ctx, req.SessionID); err != nil {
		return nil, err
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = s.defaultMimeType
	}
	storagePath := s.storagePath(req.SessionID, chunkNumber, mimeType)
	publicURL := s.publicURL(storagePath)

	chunkID, err := s.chunkRepo.RegisterPending(ctx, domain.ChunkRegistration{
		SessionID:   req.SessionID,
		ChunkNumber: chunkNumber,
		MimeType:    mimeType,
		StoragePath: storagePath,
		PublicURL:   publicURL,
	})
	if err != nil {
		return nil, internalError("failed to register chunk", err)
	}

	target := &domain.UploadTarget{
		URL:         s.uploadURL(req.SessionID, chunkNumber),
		StoragePath: storagePath,
		PublicURL:   publicURL,
	}

	log.Info().
		Str("session_id", req.SessionID).
		Str("chunk_id", chunkID).
		Str("url", target.URL).
		Msg("upload target issued")

	return target, nil
}

// AcceptUpload records the raw bytes of one chunk. A chunk that never had
// an upload target issued is registered on the fly.
func (s *UploadService) AcceptUpload(ctx context.Context, sessionID string, chunkNumber int, payload []byte) (*domain.Chunk, error) {
	if len(payload) == 0 {
		return nil, validationError("Audio data is required")
	}
	if chunkNumber < 0 {
		return nil, validationError("chunkNumber must be non-negative")
	}

	if _, err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}

	chunkID := domain.ChunkID(sessionID, chunkNumber)
	size := int64(len(payload))

	chunk, err := s.chunkRepo.MarkUploaded(ctx, chunkID, size)
	if err != nil {
		return nil, internalError("failed to mark chunk uploaded", err)
	}
	if chunk == nil {
		log.Warn().
			Str("session_id", sessionID).
			Int("chunk_number", chunkNumber).
			Msg("upload for unregistered chunk, registering on the fly")

		if _, err := s.chunkRepo.EnsureRegistered(ctx, s.fallbackRegistration(sessionID, chunkNumber)); err != nil {
			return nil, internalError("failed to register chunk", err)
		}
		if chunk, err = s.chunkRepo.MarkUploaded(ctx, chunkID, size); err != nil || chunk == nil {
			return nil, internalError("failed to mark chunk uploaded", err)
		}
	}

	session, err := s.sessionRepo.AppendChunk(ctx, sessionID, chunkID)
	if err != nil || session == nil {
		return nil, internalError("failed to append chunk to session", err)
	}

	log.Info().
		Str("session_id", sessionID).
		Int("chunk_number", chunkNumber).
		Int64("size_bytes", size).
		Int("session_chunks", len(session.ChunkIDs)).
		Msg("chunk uploaded")

	return chunk, nil
}

// ConfirmUpload marks a chunk confirmed at the client-reported location.
// IsLast is recorded for downstream consumers and never closes the session.
// Confirming a chunk the registry does not know succeeds with a nil chunk.
func (s *UploadService) ConfirmUpload(ctx context.Context, n domain.ChunkUploadedNotification) (*domain.Chunk, error) {
	if n.SessionID == "" || n.StoragePath == "" || n.ChunkNumber == nil {
		return nil, validationError("sessionId, gcsPath, and chunkNumber are required")
	}
	if *n.ChunkNumber < 0 {
		return nil, validationError("chunkNumber must be non-negative")
	}
	chunkNumber := *n.ChunkNumber

	session, err := s.requireSession(ctx, n.SessionID)
	if err != nil {
		return nil, err
	}

	chunkID := domain.ChunkID(n.SessionID, chunkNumber)
	conf := domain.ChunkConfirmation{
		StoragePath: n.StoragePath,
		PublicURL:   n.PublicURL,
		IsLast:      n.IsLast,
		Metadata: domain.UploadMetadata{
			TotalChunksClient:  n.TotalChunksClient,
			SelectedTemplate:   n.SelectedTemplate,
			SelectedTemplateID: n.SelectedTemplateID,
			Model:              n.Model,
			MimeType:           optional(n.MimeType),
		},
	}

	chunk, err := s.chunkRepo.MarkConfirmed(ctx, chunkID, conf)
	if err != nil {
		return nil, internalError("failed to confirm chunk", err)
	}
	if chunk == nil {
		// nothing was issued or uploaded for this chunk; the registry stays untouched
		log.Warn().
			Str("session_id", n.SessionID).
			Int("chunk_number", chunkNumber).
			Msg("confirmation for unknown chunk ignored")
		return nil, nil
	}

	event := log.Info().
		Str("session_id", n.SessionID).
		Int("chunk_number", chunkNumber).
		Bool("is_last", n.IsLast).
		Int("session_chunks", len(session.ChunkIDs))
	if n.TotalChunksClient != nil {
		event = event.Int("total_chunks_client", *n.TotalChunksClient)
	}
	event.Msg("chunk confirmed")

	if n.IsLast {
		log.Info().Str("session_id", n.SessionID).Int("chunk_number", chunkNumber).Msg("last chunk received")
	}

	return chunk, nil
}

func (s *UploadService) requireSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, internalError("failed to get session", err)
	}
	if session == nil {
		log.Warn().Str("session_id", sessionID).Msg("session not found")
		return nil, notFoundError("Session not found")
	}
	return session, nil
}

func (s *UploadService) fallbackRegistration(sessionID string, chunkNumber int) domain.ChunkRegistration {
	mimeType := s.defaultMimeType
	storagePath := s.storagePath(sessionID, chunkNumber, mimeType)
	return domain.ChunkRegistration{
		SessionID:   sessionID,
		ChunkNumber: chunkNumber,
		MimeType:    mimeType,
		StoragePath: storagePath,
		PublicURL:   s.publicURL(storagePath),
	}
}

func (s *UploadService) storagePath(sessionID string, chunkNumber int, mimeType string) string {
	return fmt.Sprintf("sessions/%s/chunk_%d.%s", sessionID, chunkNumber, mimeExtension(mimeType))
}

func (s *UploadService) publicURL(storagePath string) string {
	return s.baseURL + "/public/" + storagePath
}

// uploadURL is unique per call so a re-issued target never repeats a URL,
// while still routing to the same chunk.
func (s *UploadService) uploadURL(sessionID string, chunkNumber int) string {
	return fmt.Sprintf("%s/v1/upload-chunk/%s/%d?token=%s",
		s.baseURL, url.PathEscape(sessionID), chunkNumber, url.QueryEscape(s.newID()))
}

// mimeExtension maps "audio/webm;codecs=opus" to "webm". Anything without a
// usable subtype falls back to wav.
func mimeExtension(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	_, subtype, ok := strings.Cut(strings.TrimSpace(mimeType), "/")
	subtype = strings.ToLower(strings.TrimSpace(subtype))
	if !ok || subtype == "" || strings.ContainsAny(subtype, "/\\ ") {
		return defaultExtension
	}
	return subtype
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
