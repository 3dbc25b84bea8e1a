package responses

import "patient-intake-service/internal/app/models"

// StaffPatientList is the staff board: Total counts every known patient,
// Visible counts the entries left after filtering.
type StaffPatientList struct {
	Total       int                     `json:"total"`
	Visible     int                     `json:"visible"`
	Query       string                  `json:"query,omitempty"`
	GeneratedAt string                  `json:"generatedAt"`
	Patients    []models.StaffViewEntry `json:"patients"`
}

type StaffStreamMessage struct {
	Type string `json:"type"`
	StaffPatientList
}
