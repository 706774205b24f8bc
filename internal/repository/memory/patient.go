package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Rrens/scribe-mock/internal/domain"
)

// PatientRepository implements domain.PatientRepository in process memory
type PatientRepository struct {
	mu       sync.RWMutex
	patients map[string]domain.Patient
}

// NewPatientRepository creates an empty patient repository
func NewPatientRepository() *PatientRepository {
	return &PatientRepository{patients: make(map[string]domain.Patient)}
}

func (r *PatientRepository) Create(ctx context.Context, patient *domain.Patient) error {
	if patient == nil || patient.ID == "" {
		return fmt.Errorf("failed to create patient: missing id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.patients[patient.ID]; exists {
		return fmt.Errorf("failed to create patient: id %s already exists", patient.ID)
	}
	r.patients[patient.ID] = *patient
	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	r.mu.RLock()
	p, ok := r.patients[id]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PatientRepository) ListByUser(ctx context.Context, userID string) ([]domain.Patient, error) {
	r.mu.RLock()
	out := []domain.Patient{}
	for _, p := range r.patients {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.Patient) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}
