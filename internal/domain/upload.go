package domain

import "encoding/json"

// UploadTargetRequest asks for an upload URL for one chunk
type UploadTargetRequest struct {
	SessionID   string `json:"sessionId" validate:"required"`
	ChunkNumber *int   `json:"chunkNumber" validate:"required,min=0"`
	MimeType    string `json:"mimeType,omitempty"`
}

// UploadTarget is where the client should PUT a chunk's bytes
type UploadTarget struct {
	URL         string `json:"url"`
	StoragePath string `json:"gcsPath"`
	PublicURL   string `json:"publicUrl"`
}

// ChunkUploadedNotification confirms a chunk has landed in storage
type ChunkUploadedNotification struct {
	SessionID          string          `json:"sessionId" validate:"required"`
	StoragePath        string          `json:"gcsPath" validate:"required"`
	ChunkNumber        *int            `json:"chunkNumber" validate:"required,min=0"`
	IsLast             bool            `json:"isLast"`
	TotalChunksClient  *int            `json:"totalChunksClient,omitempty"`
	PublicURL          string          `json:"publicUrl,omitempty"`
	MimeType           string          `json:"mimeType,omitempty"`
	SelectedTemplate   json.RawMessage `json:"selectedTemplate,omitempty"`
	SelectedTemplateID *string         `json:"selectedTemplateId,omitempty"`
	Model              *string         `json:"model,omitempty"`
}

// SessionChunks is the debug view of one session's chunks
type SessionChunks struct {
	SessionID       string         `json:"sessionId"`
	SessionStatus   string         `json:"sessionStatus"`
	TotalChunks     int            `json:"totalChunks"`
	Chunks          []ChunkSummary `json:"chunks"`
	SessionChunkIDs []string       `json:"sessionChunkIds"`
}

// AllChunks is the debug view of the whole chunk registry
type AllChunks struct {
	TotalChunks int            `json:"totalChunks"`
	Chunks      []ChunkSummary `json:"chunks"`
}

// ChunkSummary is a chunk as rendered by the debug listings
type ChunkSummary struct {
	ChunkID     string      `json:"chunkId"`
	SessionID   string      `json:"sessionId,omitempty"`
	ChunkNumber int         `json:"chunkNumber"`
	Status      ChunkStatus `json:"status"`
	FileSize    int64       `json:"fileSize"`
	UploadedAt  *string     `json:"uploadedAt"`
	StoragePath string      `json:"gcsPath"`
	PublicURL   string      `json:"publicUrl,omitempty"`
	MimeType    string      `json:"mimeType"`
	IsLast      bool        `json:"isLast"`
}
