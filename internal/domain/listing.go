package domain

// DefaultSessionTitle is shown for sessions recorded without a template
const DefaultSessionTitle = "Recording Session"

// PatientSessionRow is one entry of a patient's session history
type PatientSessionRow struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	SessionTitle   string `json:"session_title"`
	SessionSummary string `json:"session_summary"`
	StartTime      string `json:"start_time"`
}

// UserSessionRow is one entry of a user's session list, joined with patient data
type UserSessionRow struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	PatientID         *string  `json:"patient_id"`
	SessionTitle      string   `json:"session_title"`
	SessionSummary    string   `json:"session_summary"`
	TranscriptStatus  string   `json:"transcript_status"`
	Transcript        string   `json:"transcript"`
	Status            string   `json:"status"`
	Date              string   `json:"date"`
	StartTime         string   `json:"start_time"`
	EndTime           *string  `json:"end_time"`
	PatientName       *string  `json:"patient_name"`
	Pronouns          *string  `json:"pronouns"`
	Email             *string  `json:"email"`
	Background        *string  `json:"background"`
	Duration          *string  `json:"duration"`
	MedicalHistory    *string  `json:"medical_history"`
	FamilyHistory     *string  `json:"family_history"`
	SocialHistory     *string  `json:"social_history"`
	PreviousTreatment *string  `json:"previous_treatment"`
	PatientPronouns   *string  `json:"patient_pronouns"`
	ClinicalNotes     []string `json:"clinical_notes"`
}

// PatientRef is the short form of a patient used in listings
type PatientRef struct {
	Name     string  `json:"name"`
	Pronouns *string `json:"pronouns"`
}

// UserSessions is the response of a user's session listing
type UserSessions struct {
	Sessions   []UserSessionRow      `json:"sessions"`
	PatientMap map[string]PatientRef `json:"patientMap"`
}

// Template is a note template a session can be recorded against
type Template struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}
