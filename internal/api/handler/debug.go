package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rrens/scribe-mock/internal/api/response"
	"github.com/Rrens/scribe-mock/internal/service"
)

// DebugHandler serves read-only views of upload state
type DebugHandler struct {
	inspectService *service.InspectService
}

func NewDebugHandler(inspectService *service.InspectService) *DebugHandler {
	return &DebugHandler{inspectService: inspectService}
}

// SessionChunks lists the chunks of one session
func (h *DebugHandler) SessionChunks(w http.ResponseWriter, r *http.Request) {
	view, err := h.inspectService.SessionChunks(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.OK(w, view)
}

// AllChunks lists every chunk
func (h *DebugHandler) AllChunks(w http.ResponseWriter, r *http.Request) {
	view, err := h.inspectService.AllChunks(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.OK(w, view)
}
