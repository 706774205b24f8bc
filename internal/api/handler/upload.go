package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Rrens/scribe-mock/internal/api/response"
	"github.com/Rrens/scribe-mock/internal/domain"
	"github.com/Rrens/scribe-mock/internal/service"
)

// UploadHandler handles the chunked upload protocol endpoints
type UploadHandler struct {
	uploadService *service.UploadService
	maxChunkBytes int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *service.UploadService, maxChunkBytes int64) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, maxChunkBytes: maxChunkBytes}
}

// CreateSession starts a recording session
func (h *UploadHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var input domain.SessionCreate
	if err := decodeJSON(r, &input); err != nil {
		response.BadRequest(w, invalidBodyMessage(err))
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessage(err, "userId is required"))
		return
	}

	session, err := h.uploadService.CreateSession(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.Created(w, map[string]string{"id": session.ID})
}

// GetPresignedURL issues an upload target for one chunk
func (h *UploadHandler) GetPresignedURL(w http.ResponseWriter, r *http.Request) {
	var input domain.UploadTargetRequest
	if err := decodeJSON(r, &input); err != nil {
		response.BadRequest(w, invalidBodyMessage(err))
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessage(err, "sessionId and chunkNumber are required"))
		return
	}

	target, err := h.uploadService.IssueUploadTarget(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.OK(w, target)
}

// UploadChunk accepts the raw bytes of one chunk
func (h *UploadHandler) UploadChunk(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	chunkNumber, err := strconv.Atoi(chi.URLParam(r, "chunkNumber"))
	if err != nil {
		response.BadRequest(w, "chunkNumber must be an integer")
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxChunkBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.BadRequest(w, fmt.Sprintf("Audio data exceeds %d bytes", tooLarge.Limit))
			return
		}
		response.BadRequest(w, "failed to read audio data")
		return
	}

	if _, err := h.uploadService.AcceptUpload(r.Context(), sessionID, chunkNumber, payload); err != nil {
		writeServiceError(w, r, err)
		return
	}

	// empty body, as an object store would answer
	response.Empty(w, http.StatusOK)
}

// NotifyChunkUploaded confirms a chunk's final storage location
func (h *UploadHandler) NotifyChunkUploaded(w http.ResponseWriter, r *http.Request) {
	var input domain.ChunkUploadedNotification
	if err := decodeJSON(r, &input); err != nil {
		response.BadRequest(w, invalidBodyMessage(err))
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessage(err, "sessionId, gcsPath, and chunkNumber are required"))
		return
	}

	if _, err := h.uploadService.ConfirmUpload(r.Context(), input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.OK(w, struct{}{})
}
