package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Rrens/scribe-mock/internal/domain"
)

// MockSessionRepository mocks the SessionRepository interface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Session, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockSessionRepository) ListByPatient(ctx context.Context, patientID string) ([]domain.Session, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockSessionRepository) AppendChunk(ctx context.Context, sessionID, chunkID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID, chunkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

// MockChunkRepository mocks the ChunkRepository interface
type MockChunkRepository struct {
	mock.Mock
}

func (m *MockChunkRepository) RegisterPending(ctx context.Context, reg domain.ChunkRegistration) (string, error) {
	args := m.Called(ctx, reg)
	return args.String(0), args.Error(1)
}

func (m *MockChunkRepository) EnsureRegistered(ctx context.Context, reg domain.ChunkRegistration) (*domain.Chunk, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chunk), args.Error(1)
}

func (m *MockChunkRepository) MarkUploaded(ctx context.Context, chunkID string, size int64) (*domain.Chunk, error) {
	args := m.Called(ctx, chunkID, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chunk), args.Error(1)
}

func (m *MockChunkRepository) MarkConfirmed(ctx context.Context, chunkID string, conf domain.ChunkConfirmation) (*domain.Chunk, error) {
	args := m.Called(ctx, chunkID, conf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chunk), args.Error(1)
}

func (m *MockChunkRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.Chunk, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]domain.Chunk), args.Error(1)
}

func (m *MockChunkRepository) ListAll(ctx context.Context) ([]domain.Chunk, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Chunk), args.Error(1)
}
