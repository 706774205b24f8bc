package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Rrens/scribe-mock/internal/domain"
)

// SessionRepository implements domain.SessionRepository in process memory
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	writes   *keyMutex
}

// NewSessionRepository creates an empty session repository
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]domain.Session),
		writes:   newKeyMutex(),
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("failed to create session: missing id")
	}

	unlock := r.writes.Lock(session.ID)
	defer unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("failed to create session: id %s already exists", session.ID)
	}
	r.sessions[session.ID] = session.Clone()
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	s = s.Clone()
	return &s, nil
}

func (r *SessionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Session, error) {
	return r.filter(func(s domain.Session) bool { return s.UserID == userID }), nil
}

func (r *SessionRepository) ListByPatient(ctx context.Context, patientID string) ([]domain.Session, error) {
	return r.filter(func(s domain.Session) bool {
		return s.PatientID != nil && *s.PatientID == patientID
	}), nil
}

func (r *SessionRepository) AppendChunk(ctx context.Context, sessionID, chunkID string) (*domain.Session, error) {
	unlock := r.writes.Lock(sessionID)
	defer unlock()

	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if !s.HasChunk(chunkID) {
		s = s.Clone()
		s.ChunkIDs = append(s.ChunkIDs, chunkID)

		r.mu.Lock()
		r.sessions[sessionID] = s
		r.mu.Unlock()
	}

	out := s.Clone()
	return &out, nil
}

func (r *SessionRepository) filter(keep func(domain.Session) bool) []domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Session{}
	for _, s := range r.sessions {
		if keep(s) {
			out = append(out, s.Clone())
		}
	}
	slices.SortFunc(out, func(a, b domain.Session) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}
