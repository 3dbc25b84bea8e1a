package responses

import "patient-intake-service/internal/app/models"

type PatientSession struct {
	PatientID     string                 `json:"patientId"`
	Data          models.PatientFormData `json:"data"`
	Status        models.PatientStatus   `json:"status"`
	StatusLabel   string                 `json:"statusLabel"`
	LastUpdatedAt string                 `json:"lastUpdatedAt,omitempty"`
	SubmittedAt   string                 `json:"submittedAt,omitempty"`
	Errors        map[string]string      `json:"errors,omitempty"`
}
