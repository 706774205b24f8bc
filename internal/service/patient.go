package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/scribe-mock/internal/domain"
)

const defaultSessionSummary = "Patient consultation summary"

// PatientService handles patients and the session listings joined with them
type PatientService struct {
	patientRepo domain.PatientRepository
	sessionRepo domain.SessionRepository
	newID       func() string
	now         func() time.Time
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo domain.PatientRepository, sessionRepo domain.SessionRepository) *PatientService {
	return &PatientService{
		patientRepo: patientRepo,
		sessionRepo: sessionRepo,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// Create adds a patient for a user
func (s *PatientService) Create(ctx context.Context, input domain.PatientCreate) (*domain.Patient, error) {
	if strings.TrimSpace(input.UserID) == "" || strings.TrimSpace(input.Name) == "" {
		return nil, validationError("userId and name are required")
	}

	patient := &domain.Patient{
		ID:             s.newID(),
		UserID:         input.UserID,
		Name:           input.Name,
		PhoneNumber:    optional(input.PhoneNumber),
		Email:          optional(input.Email),
		DateOfBirth:    optional(input.DateOfBirth),
		Gender:         optional(input.Gender),
		AdditionalInfo: input.AdditionalInfo,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, internalError("failed to create patient", err)
	}

	log.Info().Str("patient_id", patient.ID).Str("user_id", patient.UserID).Msg("patient added")
	return patient, nil
}

// ListByUser returns the user's patients
func (s *PatientService) ListByUser(ctx context.Context, userID string) ([]domain.Patient, error) {
	if userID == "" {
		return nil, validationError("userId is required")
	}
	patients, err := s.patientRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, internalError("failed to list patients", err)
	}
	return patients, nil
}

// Details returns the detail view of a patient
func (s *PatientService) Details(ctx context.Context, patientID string) (*domain.PatientDetails, error) {
	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, internalError("failed to get patient", err)
	}
	if patient == nil {
		return nil, notFoundError("Patient not found")
	}

	info := patient.AdditionalInfo
	return &domain.PatientDetails{
		ID:                patient.ID,
		Name:              patient.Name,
		Pronouns:          info.Pronouns,
		Email:             patient.Email,
		Background:        info.Background,
		MedicalHistory:    info.MedicalHistory,
		FamilyHistory:     info.FamilyHistory,
		SocialHistory:     info.SocialHistory,
		PreviousTreatment: info.PreviousTreatment,
	}, nil
}

// SessionsByPatient returns the summary rows of a patient's sessions
func (s *PatientService) SessionsByPatient(ctx context.Context, patientID string) ([]domain.PatientSessionRow, error) {
	sessions, err := s.sessionRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, internalError("failed to list sessions", err)
	}

	rows := make([]domain.PatientSessionRow, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, domain.PatientSessionRow{
			ID:             session.ID,
			Date:           s.sessionDate(session),
			SessionTitle:   sessionTitle(session),
			SessionSummary: defaultSessionSummary,
			StartTime:      session.StartTime,
		})
	}
	return rows, nil
}

// SessionsByUser returns the user's sessions joined with their patients
func (s *PatientService) SessionsByUser(ctx context.Context, userID string) (*domain.UserSessions, error) {
	if userID == "" {
		return nil, validationError("userId is required")
	}

	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, internalError("failed to list sessions", err)
	}

	result := &domain.UserSessions{
		Sessions:   make([]domain.UserSessionRow, 0, len(sessions)),
		PatientMap: map[string]domain.PatientRef{},
	}

	for _, session := range sessions {
		var patient *domain.Patient
		if session.PatientID != nil {
			if patient, err = s.patientRepo.GetByID(ctx, *session.PatientID); err != nil {
				return nil, internalError("failed to get patient", err)
			}
		}

		row := domain.UserSessionRow{
			ID:               session.ID,
			UserID:           session.UserID,
			PatientID:        session.PatientID,
			SessionTitle:     sessionTitle(session),
			SessionSummary:   defaultSessionSummary,
			TranscriptStatus: "pending",
			Status:           session.Status,
			Date:             s.sessionDate(session),
			StartTime:        session.StartTime,
			EndTime:          session.EndTime,
			PatientName:      session.PatientName,
			Duration:         sessionDuration(session),
			ClinicalNotes:    []string{},
		}

		if patient != nil {
			info := patient.AdditionalInfo
			row.PatientName = &patient.Name
			row.Pronouns = info.Pronouns
			row.PatientPronouns = info.Pronouns
			row.Email = patient.Email
			row.Background = info.Background
			row.MedicalHistory = info.MedicalHistory
			row.FamilyHistory = info.FamilyHistory
			row.SocialHistory = info.SocialHistory
			row.PreviousTreatment = info.PreviousTreatment

			if _, seen := result.PatientMap[patient.ID]; !seen {
				result.PatientMap[patient.ID] = domain.PatientRef{Name: patient.Name, Pronouns: info.Pronouns}
			}
		}

		result.Sessions = append(result.Sessions, row)
	}

	return result, nil
}

func (s *PatientService) sessionDate(session domain.Session) string {
	if date, _, ok := strings.Cut(session.StartTime, "T"); ok && date != "" {
		return date
	}
	if session.StartTime != "" {
		return session.StartTime
	}
	return s.now().UTC().Format(time.DateOnly)
}

func sessionTitle(session domain.Session) string {
	if session.TemplateID != nil && *session.TemplateID != "" {
		return *session.TemplateID
	}
	return domain.DefaultSessionTitle
}

// sessionDuration renders the rounded length in minutes once the session
// has ended; unparseable timestamps yield no duration.
func sessionDuration(session domain.Session) *string {
	if session.EndTime == nil || session.StartTime == "" {
		return nil
	}
	start, err := time.Parse(time.RFC3339, session.StartTime)
	if err != nil {
		return nil
	}
	end, err := time.Parse(time.RFC3339, *session.EndTime)
	if err != nil {
		return nil
	}
	d := fmt.Sprintf("%d minutes", end.Sub(start).Round(time.Minute)/time.Minute)
	return &d
}
