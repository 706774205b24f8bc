package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/scribe-mock/internal/config"
	"github.com/Rrens/scribe-mock/internal/domain"
	"github.com/Rrens/scribe-mock/internal/repository/memory"
)

func strPtr(s string) *string { return &s }

func newPatientFixture() (*PatientService, *UploadService) {
	sessions := memory.NewSessionRepository()
	patients := memory.NewPatientRepository()
	return NewPatientService(patients, sessions),
		NewUploadService(sessions, memory.NewChunkRepository(), config.UploadConfig{BaseURL: testBaseURL})
}

func TestPatientService_Create(t *testing.T) {
	svc, _ := newPatientFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.PatientCreate{UserID: "u1"})
	assert.Equal(t, ErrorValidation, CodeOf(err))

	p, err := svc.Create(ctx, domain.PatientCreate{
		UserID: "u1",
		Name:   "Ada",
		Email:  "ada@example.com",
		AdditionalInfo: domain.PatientInfo{
			Pronouns:       strPtr("she/her"),
			MedicalHistory: strPtr("none"),
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Nil(t, p.PhoneNumber)

	list, err := svc.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListByUser(ctx, "")
	assert.Equal(t, ErrorValidation, CodeOf(err))

	details, err := svc.Details(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", details.Name)
	assert.Equal(t, "she/her", *details.Pronouns)
	assert.Equal(t, "ada@example.com", *details.Email)
	assert.Nil(t, details.Background)

	_, err = svc.Details(ctx, "ghost")
	assert.Equal(t, ErrorNotFound, CodeOf(err))
}

func TestPatientService_SessionListings(t *testing.T) {
	svc, uploads := newPatientFixture()
	ctx := context.Background()

	patient, err := svc.Create(ctx, domain.PatientCreate{
		UserID:         "u1",
		Name:           "Grace",
		AdditionalInfo: domain.PatientInfo{Pronouns: strPtr("she/her")},
	})
	require.NoError(t, err)

	_, err = uploads.CreateSession(ctx, domain.SessionCreate{
		UserID:     "u1",
		PatientID:  patient.ID,
		StartTime:  "2026-05-04T08:30:00.000Z",
		TemplateID: "new_patient_visit",
	})
	require.NoError(t, err)
	_, err = uploads.CreateSession(ctx, domain.SessionCreate{UserID: "u1", PatientName: "Walk-in", StartTime: "2026-05-05T09:00:00Z"})
	require.NoError(t, err)

	byPatient, err := svc.SessionsByPatient(ctx, patient.ID)
	require.NoError(t, err)
	require.Len(t, byPatient, 1)
	assert.Equal(t, "2026-05-04", byPatient[0].Date)
	assert.Equal(t, "new_patient_visit", byPatient[0].SessionTitle)

	byUser, err := svc.SessionsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, byUser.Sessions, 2)

	rows := map[string]domain.UserSessionRow{}
	for _, row := range byUser.Sessions {
		rows[*row.PatientName] = row
	}
	assert.Equal(t, "she/her", *rows["Grace"].Pronouns)
	assert.Equal(t, domain.DefaultSessionTitle, rows["Walk-in"].SessionTitle)
	assert.Nil(t, rows["Walk-in"].Duration)
	assert.Equal(t, "pending", rows["Walk-in"].TranscriptStatus)
	assert.NotNil(t, rows["Walk-in"].ClinicalNotes)

	require.Contains(t, byUser.PatientMap, patient.ID)
	assert.Equal(t, "Grace", byUser.PatientMap[patient.ID].Name)

	_, err = svc.SessionsByUser(ctx, "")
	assert.Equal(t, ErrorValidation, CodeOf(err))
}

func TestSessionDuration(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   *string
		want  *string
	}{
		{"not ended", "2026-01-01T10:00:00Z", nil, nil},
		{"rounded minutes", "2026-01-01T10:00:00Z", strPtr("2026-01-01T10:14:40Z"), strPtr("15 minutes")},
		{"fractional seconds", "2026-01-01T10:00:00.000Z", strPtr("2026-01-01T11:00:00.000Z"), strPtr("60 minutes")},
		{"garbage", "yesterday", strPtr("2026-01-01T10:00:00Z"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sessionDuration(domain.Session{StartTime: tt.start, EndTime: tt.end})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalogService(t *testing.T) {
	svc := NewCatalogService()
	ctx := context.Background()

	templates, err := svc.DefaultTemplates(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, templates, 2)
	assert.Equal(t, "new_patient_visit", templates[0].ID)

	_, err = svc.DefaultTemplates(ctx, "")
	assert.Equal(t, ErrorValidation, CodeOf(err))

	id, err := svc.ResolveUserID(ctx, "dr.house@clinic.example.com")
	require.NoError(t, err)
	assert.Equal(t, "user_dr_house_clinic.example.com", id)

	id, err = svc.ResolveUserID(ctx, "amy@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user_amy_example_com", id)

	_, err = svc.ResolveUserID(ctx, "")
	assert.Equal(t, ErrorValidation, CodeOf(err))
}
