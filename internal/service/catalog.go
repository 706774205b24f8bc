package service

import (
	"context"
	"strings"

	"github.com/Rrens/scribe-mock/internal/domain"
)

var defaultTemplates = []domain.Template{
	{ID: "new_patient_visit", Title: "New Patient Visit", Type: "default"},
	{ID: "follow_up_visit", Title: "Follow-up Visit", Type: "predefined"},
}

// CatalogService serves the static lookups the app needs before recording
type CatalogService struct{}

func NewCatalogService() *CatalogService {
	return &CatalogService{}
}

// DefaultTemplates returns the templates offered to a user
func (s *CatalogService) DefaultTemplates(ctx context.Context, userID string) ([]domain.Template, error) {
	if userID == "" {
		return nil, validationError("userId is required")
	}
	out := make([]domain.Template, len(defaultTemplates))
	copy(out, defaultTemplates)
	return out, nil
}

// ResolveUserID maps an email to a stable mock user id
func (s *CatalogService) ResolveUserID(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", validationError("email is required")
	}
	id := strings.Replace(email, "@", "_", 1)
	id = strings.Replace(id, ".", "_", 1)
	return "user_" + id, nil
}
