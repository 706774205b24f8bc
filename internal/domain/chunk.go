package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ChunkStatus is the upload state of a single audio chunk
type ChunkStatus string

const (
	ChunkPending   ChunkStatus = "pending"
	ChunkUploaded  ChunkStatus = "uploaded"
	ChunkConfirmed ChunkStatus = "confirmed"
)

// DefaultMimeType is used when a client does not name the chunk encoding
const DefaultMimeType = "audio/wav"

// Chunk is one numbered piece of a session's audio stream
type Chunk struct {
	ChunkID     string         `json:"chunkId"`
	SessionID   string         `json:"sessionId"`
	ChunkNumber int            `json:"chunkNumber"`
	MimeType    string         `json:"mimeType"`
	Status      ChunkStatus    `json:"status"`
	StoragePath string         `json:"gcsPath"`
	PublicURL   string         `json:"publicUrl,omitempty"`
	FileSize    int64          `json:"fileSize"`
	UploadedAt  *time.Time     `json:"uploadedAt"`
	IsLast      bool           `json:"isLast"`
	Metadata    UploadMetadata `json:"metadata"`
}

// ChunkID derives the registry key for a chunk. It is pure so that
// concurrent registrations of the same chunk collide on the same key.
func ChunkID(sessionID string, chunkNumber int) string {
	return fmt.Sprintf("%s_chunk_%d", sessionID, chunkNumber)
}

// UploadMetadata carries client hints reported at confirmation time.
// The server stores them as-is and never interprets them.
type UploadMetadata struct {
	TotalChunksClient  *int            `json:"totalChunksClient,omitempty"`
	SelectedTemplate   json.RawMessage `json:"selectedTemplate,omitempty"`
	SelectedTemplateID *string         `json:"selectedTemplateId,omitempty"`
	Model              *string         `json:"model,omitempty"`
	MimeType           *string         `json:"mimeType,omitempty"`
}

// ChunkRegistration describes a freshly issued upload target
type ChunkRegistration struct {
	SessionID   string
	ChunkNumber int
	MimeType    string
	StoragePath string
	PublicURL   string
}

// ChunkConfirmation is the client's authoritative report of where a chunk landed
type ChunkConfirmation struct {
	StoragePath string
	PublicURL   string
	IsLast      bool
	Metadata    UploadMetadata
}

// ChunkRepository defines the interface for chunk metadata storage.
// Mutations of an unknown chunk id return a nil chunk, not an error.
type ChunkRepository interface {
	// RegisterPending stores a pending chunk, replacing any prior record
	// for the same (session, chunk number).
	RegisterPending(ctx context.Context, reg ChunkRegistration) (string, error)
	// EnsureRegistered stores reg as pending only when no record exists
	// for its key and returns the record now in place.
	EnsureRegistered(ctx context.Context, reg ChunkRegistration) (*Chunk, error)
	MarkUploaded(ctx context.Context, chunkID string, size int64) (*Chunk, error)
	MarkConfirmed(ctx context.Context, chunkID string, conf ChunkConfirmation) (*Chunk, error)
	// ListBySession returns the session's chunks ordered by chunk number.
	ListBySession(ctx context.Context, sessionID string) ([]Chunk, error)
	// ListAll returns every chunk ordered by session id, then chunk number.
	ListAll(ctx context.Context) ([]Chunk, error)
}
