package domain

import (
	"context"
	"time"
)

// Patient represents a patient record kept on behalf of a user
type Patient struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	Name           string      `json:"name"`
	PhoneNumber    *string     `json:"phoneNumber"`
	Email          *string     `json:"email"`
	DateOfBirth    *string     `json:"dateOfBirth"`
	Gender         *string     `json:"gender"`
	AdditionalInfo PatientInfo `json:"additionalInfo"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// PatientInfo holds the optional clinical background of a patient
type PatientInfo struct {
	Pronouns          *string `json:"pronouns,omitempty"`
	Background        *string `json:"background,omitempty"`
	MedicalHistory    *string `json:"medical_history,omitempty"`
	FamilyHistory     *string `json:"family_history,omitempty"`
	SocialHistory     *string `json:"social_history,omitempty"`
	PreviousTreatment *string `json:"previous_treatment,omitempty"`
}

// PatientCreate represents patient creation data
type PatientCreate struct {
	UserID         string      `json:"userId" validate:"required"`
	Name           string      `json:"name" validate:"required,max=255"`
	PhoneNumber    string      `json:"phoneNumber,omitempty"`
	Email          string      `json:"email,omitempty" validate:"omitempty,email"`
	DateOfBirth    string      `json:"dateOfBirth,omitempty"`
	Gender         string      `json:"gender,omitempty"`
	AdditionalInfo PatientInfo `json:"additionalInfo"`
}

// PatientDetails is the detail view of a patient
type PatientDetails struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Pronouns          *string `json:"pronouns"`
	Email             *string `json:"email"`
	Background        *string `json:"background"`
	MedicalHistory    *string `json:"medical_history"`
	FamilyHistory     *string `json:"family_history"`
	SocialHistory     *string `json:"social_history"`
	PreviousTreatment *string `json:"previous_treatment"`
}

// PatientRepository defines the interface for patient storage.
// GetByID returns a nil patient when the id is unknown.
type PatientRepository interface {
	Create(ctx context.Context, patient *Patient) error
	GetByID(ctx context.Context, id string) (*Patient, error)
	ListByUser(ctx context.Context, userID string) ([]Patient, error)
}
