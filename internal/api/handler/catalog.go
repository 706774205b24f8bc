package handler

import (
	"net/http"

	"github.com/Rrens/scribe-mock/internal/api/response"
	"github.com/Rrens/scribe-mock/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// DefaultTemplates returns the templates offered to a user
func (h *CatalogHandler) DefaultTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.catalogService.DefaultTemplates(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.OK(w, map[string]any{
		"success": true,
		"data":    templates,
	})
}

// ResolveUser maps an email address to a user id
func (h *CatalogHandler) ResolveUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.catalogService.ResolveUserID(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.OK(w, map[string]string{"id": id})
}
