package domain

import (
	"context"
	"slices"
	"time"
)

// DefaultSessionStatus is assigned when a session is created without a status
const DefaultSessionStatus = "recording"

// Session represents one recording/dictation session owned by a user
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	PatientID   *string   `json:"patientId"`
	PatientName *string   `json:"patientName"`
	Status      string    `json:"status"`
	StartTime   string    `json:"startTime"`
	EndTime     *string   `json:"endTime"`
	TemplateID  *string   `json:"templateId"`
	ChunkIDs    []string  `json:"chunkIds"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Clone returns a copy that shares no mutable state with s
func (s Session) Clone() Session {
	s.ChunkIDs = slices.Clone(s.ChunkIDs)
	if s.ChunkIDs == nil {
		s.ChunkIDs = []string{}
	}
	return s
}

// HasChunk reports whether chunkID is already in the session's chunk list
func (s Session) HasChunk(chunkID string) bool {
	return slices.Contains(s.ChunkIDs, chunkID)
}

// SessionCreate represents session creation data
type SessionCreate struct {
	UserID      string `json:"userId" validate:"required"`
	PatientID   string `json:"patientId,omitempty"`
	PatientName string `json:"patientName,omitempty"`
	Status      string `json:"status,omitempty"`
	StartTime   string `json:"startTime,omitempty"`
	TemplateID  string `json:"templateId,omitempty"`
}

// SessionRepository defines the interface for session storage.
// Lookups return a nil session, not an error, when the id is unknown.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	ListByUser(ctx context.Context, userID string) ([]Session, error)
	ListByPatient(ctx context.Context, patientID string) ([]Session, error)
	// AppendChunk adds chunkID to the session's chunk list unless it is
	// already present and returns the updated session.
	AppendChunk(ctx context.Context, sessionID, chunkID string) (*Session, error)
}
