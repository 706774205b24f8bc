package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rrens/scribe-mock/internal/api/response"
	"github.com/Rrens/scribe-mock/internal/domain"
	"github.com/Rrens/scribe-mock/internal/service"
)

// PatientHandler handles patient endpoints and the session listings built on them
type PatientHandler struct {
	patientService *service.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// List returns a user's patients
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientService.ListByUser(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.OK(w, map[string]any{
		"patients": patients,
		"count":    len(patients),
	})
}

// Add creates a patient
func (h *PatientHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input domain.PatientCreate
	if err := decodeJSON(r, &input); err != nil {
		response.BadRequest(w, invalidBodyMessage(err))
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessage(err, "userId and name are required"))
		return
	}

	patient, err := h.patientService.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.Created(w, map[string]any{
		"message": "Patient added successfully",
		"patient": patient,
	})
}

// Details returns one patient's detail view
func (h *PatientHandler) Details(w http.ResponseWriter, r *http.Request) {
	details, err := h.patientService.Details(r.Context(), chi.URLParam(r, "patientID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.OK(w, details)
}

// SessionsByPatient returns a patient's session history
func (h *PatientHandler) SessionsByPatient(w http.ResponseWriter, r *http.Request) {
	rows, err := h.patientService.SessionsByPatient(r.Context(), chi.URLParam(r, "patientID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.OK(w, map[string]any{"sessions": rows})
}

// SessionsByUser returns all of a user's sessions
func (h *PatientHandler) SessionsByUser(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.patientService.SessionsByUser(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.OK(w, sessions)
}
