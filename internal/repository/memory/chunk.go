package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/scribe-mock/internal/domain"
)

// ChunkRepository implements domain.ChunkRepository in process memory.
// Each read-modify-write holds the chunk's key lock, so concurrent
// uploads and confirmations of one chunk never lose each other's fields.
type ChunkRepository struct {
	mu     sync.RWMutex
	chunks map[string]domain.Chunk
	writes *keyMutex
	now    func() time.Time
}

// NewChunkRepository creates an empty chunk repository
func NewChunkRepository() *ChunkRepository {
	return &ChunkRepository{
		chunks: make(map[string]domain.Chunk),
		writes: newKeyMutex(),
		now:    time.Now,
	}
}

func (r *ChunkRepository) RegisterPending(ctx context.Context, reg domain.ChunkRegistration) (string, error) {
	id := domain.ChunkID(reg.SessionID, reg.ChunkNumber)

	unlock := r.writes.Lock(id)
	defer unlock()

	r.put(newPendingChunk(id, reg))
	return id, nil
}

func (r *ChunkRepository) EnsureRegistered(ctx context.Context, reg domain.ChunkRegistration) (*domain.Chunk, error) {
	id := domain.ChunkID(reg.SessionID, reg.ChunkNumber)

	unlock := r.writes.Lock(id)
	defer unlock()

	c, ok := r.get(id)
	if !ok {
		c = newPendingChunk(id, reg)
		r.put(c)
	}
	return &c, nil
}

func (r *ChunkRepository) MarkUploaded(ctx context.Context, chunkID string, size int64) (*domain.Chunk, error) {
	return r.update(chunkID, func(c *domain.Chunk) {
		uploadedAt := r.now().UTC()
		c.Status = domain.ChunkUploaded
		c.FileSize = size
		c.UploadedAt = &uploadedAt
	})
}

func (r *ChunkRepository) MarkConfirmed(ctx context.Context, chunkID string, conf domain.ChunkConfirmation) (*domain.Chunk, error) {
	return r.update(chunkID, func(c *domain.Chunk) {
		c.Status = domain.ChunkConfirmed
		c.StoragePath = conf.StoragePath
		c.PublicURL = conf.PublicURL
		c.IsLast = conf.IsLast
		c.Metadata = conf.Metadata
	})
}

// GetByID returns a copy of one chunk, or nil when it is unknown
func (r *ChunkRepository) GetByID(ctx context.Context, chunkID string) (*domain.Chunk, error) {
	c, ok := r.get(chunkID)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ChunkRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.Chunk, error) {
	r.mu.RLock()
	out := []domain.Chunk{}
	for _, c := range r.chunks {
		if c.SessionID == sessionID {
			out = append(out, c)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(out, compareChunks)
	return out, nil
}

func (r *ChunkRepository) ListAll(ctx context.Context) ([]domain.Chunk, error) {
	r.mu.RLock()
	out := make([]domain.Chunk, 0, len(r.chunks))
	for _, c := range r.chunks {
		out = append(out, c)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, compareChunks)
	return out, nil
}

// update applies fn to a copy of the chunk under its key lock and stores
// the result. Unknown ids are logged and reported as a nil chunk.
func (r *ChunkRepository) update(chunkID string, fn func(c *domain.Chunk)) (*domain.Chunk, error) {
	unlock := r.writes.Lock(chunkID)
	defer unlock()

	c, ok := r.get(chunkID)
	if !ok {
		log.Debug().Str("chunk_id", chunkID).Msg("chunk not registered")
		return nil, nil
	}

	fn(&c)
	r.put(c)
	return &c, nil
}

func (r *ChunkRepository) get(id string) (domain.Chunk, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.chunks[id]
	return c, ok
}

func (r *ChunkRepository) put(c domain.Chunk) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chunks[c.ChunkID] = c
}

func newPendingChunk(id string, reg domain.ChunkRegistration) domain.Chunk {
	mimeType := reg.MimeType
	if mimeType == "" {
		mimeType = domain.DefaultMimeType
	}
	return domain.Chunk{
		ChunkID:     id,
		SessionID:   reg.SessionID,
		ChunkNumber: reg.ChunkNumber,
		MimeType:    mimeType,
		Status:      domain.ChunkPending,
		StoragePath: reg.StoragePath,
		PublicURL:   reg.PublicURL,
	}
}

func compareChunks(a, b domain.Chunk) int {
	if c := strings.Compare(a.SessionID, b.SessionID); c != 0 {
		return c
	}
	return cmp.Compare(a.ChunkNumber, b.ChunkNumber)
}
