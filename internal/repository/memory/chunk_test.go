package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/scribe-mock/internal/domain"
)

func pendingReg(sessionID string, n int) domain.ChunkRegistration {
	return domain.ChunkRegistration{
		SessionID:   sessionID,
		ChunkNumber: n,
		StoragePath: fmt.Sprintf("sessions/%s/chunk_%d.wav", sessionID, n),
	}
}

func TestChunkRepository_RegisterPendingOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepository()

	id, err := repo.RegisterPending(ctx, pendingReg("s1", 0))
	require.NoError(t, err)
	assert.Equal(t, "s1_chunk_0", id)

	_, err = repo.MarkUploaded(ctx, id, 512)
	require.NoError(t, err)

	again, err := repo.RegisterPending(ctx, domain.ChunkRegistration{SessionID: "s1", ChunkNumber: 0, MimeType: "audio/webm"})
	require.NoError(t, err)
	assert.Equal(t, id, again)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.ChunkPending, all[0].Status)
	assert.Equal(t, "audio/webm", all[0].MimeType)
	assert.Zero(t, all[0].FileSize)
	assert.Nil(t, all[0].UploadedAt)
}

func TestChunkRepository_DefaultMimeType(t *testing.T) {
	repo := NewChunkRepository()
	id, _ := repo.RegisterPending(context.Background(), pendingReg("s1", 3))

	c, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, domain.DefaultMimeType, c.MimeType)
}

func TestChunkRepository_MarkUploaded(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepository()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	t.Run("unknown chunk", func(t *testing.T) {
		c, err := repo.MarkUploaded(ctx, "missing_chunk_1", 10)
		assert.NoError(t, err)
		assert.Nil(t, c)

		all, _ := repo.ListAll(ctx)
		assert.Empty(t, all)
	})

	t.Run("registered chunk", func(t *testing.T) {
		id, _ := repo.RegisterPending(ctx, pendingReg("s1", 1))

		c, err := repo.MarkUploaded(ctx, id, 2048)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, domain.ChunkUploaded, c.Status)
		assert.Equal(t, int64(2048), c.FileSize)
		require.NotNil(t, c.UploadedAt)
		assert.Equal(t, fixed, *c.UploadedAt)
	})
}

func TestChunkRepository_MarkConfirmedFromPending(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepository()
	id, _ := repo.RegisterPending(ctx, pendingReg("s1", 0))

	total := 4
	c, err := repo.MarkConfirmed(ctx, id, domain.ChunkConfirmation{
		StoragePath: "final/path.wav",
		PublicURL:   "https://cdn/final/path.wav",
		IsLast:      true,
		Metadata:    domain.UploadMetadata{TotalChunksClient: &total},
	})
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, domain.ChunkConfirmed, c.Status)
	assert.Equal(t, "final/path.wav", c.StoragePath)
	assert.Equal(t, "https://cdn/final/path.wav", c.PublicURL)
	assert.True(t, c.IsLast)
	assert.Equal(t, domain.DefaultMimeType, c.MimeType, "empty mime type keeps the registered one")
	require.NotNil(t, c.Metadata.TotalChunksClient)
	assert.Equal(t, 4, *c.Metadata.TotalChunksClient)

	missing, err := repo.MarkConfirmed(ctx, "s1_chunk_9", domain.ChunkConfirmation{StoragePath: "x"})
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestChunkRepository_MarkConfirmedKeepsRegisteredMimeType(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepository()
	id, err := repo.RegisterPending(ctx, domain.ChunkRegistration{SessionID: "s1", ChunkNumber: 0, MimeType: "audio/webm"})
	require.NoError(t, err)

	reported := "audio/mp4"
	c, err := repo.MarkConfirmed(ctx, id, domain.ChunkConfirmation{
		StoragePath: "p",
		Metadata:    domain.UploadMetadata{MimeType: &reported},
	})
	require.NoError(t, err)
	assert.Equal(t, "audio/webm", c.MimeType)
	require.NotNil(t, c.Metadata.MimeType)
	assert.Equal(t, "audio/mp4", *c.Metadata.MimeType)
}

func TestChunkRepository_EnsureRegisteredKeepsExisting(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepository()
	id, _ := repo.RegisterPending(ctx, pendingReg("s1", 0))
	_, _ = repo.MarkUploaded(ctx, id, 100)

	c, err := repo.EnsureRegistered(ctx, domain.ChunkRegistration{SessionID: "s1", ChunkNumber: 0, StoragePath: "other"})
	require.NoError(t, err)
	assert.Equal(t, domain.ChunkUploaded, c.Status)
	assert.Equal(t, "sessions/s1/chunk_0.wav", c.StoragePath)

	created, err := repo.EnsureRegistered(ctx, pendingReg("s1", 1))
	require.NoError(t, err)
	assert.Equal(t, domain.ChunkPending, created.Status)
	assert.Equal(t, "s1_chunk_1", created.ChunkID)
}

func TestChunkRepository_Ordering(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepository()

	for _, reg := range []domain.ChunkRegistration{
		pendingReg("b", 10),
		pendingReg("a", 2),
		pendingReg("b", 2),
		pendingReg("a", 0),
		pendingReg("b", 1),
	} {
		_, err := repo.RegisterPending(ctx, reg)
		require.NoError(t, err)
	}

	bySession, err := repo.ListBySession(ctx, "b")
	require.NoError(t, err)
	var numbers []int
	for _, c := range bySession {
		numbers = append(numbers, c.ChunkNumber)
	}
	assert.Equal(t, []int{1, 2, 10}, numbers, "numeric, not lexical, order")

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	var ids []string
	for _, c := range all {
		ids = append(ids, c.ChunkID)
	}
	assert.Equal(t, []string{"a_chunk_0", "a_chunk_2", "b_chunk_1", "b_chunk_2", "b_chunk_10"}, ids)

	empty, err := repo.ListBySession(ctx, "nope")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestChunkRepository_ConcurrentUploadAndConfirm(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepository()

	const n = 50
	for i := 0; i < n; i++ {
		_, _ = repo.RegisterPending(ctx, pendingReg("s", i))
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		id := domain.ChunkID("s", i)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = repo.MarkUploaded(ctx, id, 1024)
		}()
		go func() {
			defer wg.Done()
			_, _ = repo.MarkConfirmed(ctx, id, domain.ChunkConfirmation{StoragePath: "p", IsLast: true})
		}()
	}
	wg.Wait()

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, n)
	for _, c := range all {
		// whichever write lands second, the other's fields must survive
		assert.Equal(t, int64(1024), c.FileSize, c.ChunkID)
		assert.True(t, c.IsLast, c.ChunkID)
	}
	assert.Zero(t, repo.writes.size(), "key locks should be released")
}
