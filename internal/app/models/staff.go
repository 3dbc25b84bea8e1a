package models

type StaffStatus string

const (
	StaffStatusIdle      StaffStatus = "idle"
	StaffStatusActive    StaffStatus = "active"
	StaffStatusInactive  StaffStatus = "inactive"
	StaffStatusSubmitted StaffStatus = "submitted"
)

// Label is the badge text rendered on a staff card.
func (s StaffStatus) Label() string {
	switch s {
	case StaffStatusSubmitted:
		return "Submitted"
	case StaffStatusActive:
		return "Active"
	case StaffStatusInactive:
		return "Inactive"
	default:
		return "Idle"
	}
}

// StaffViewEntry is derived at query time from the latest payload of a patient.
type StaffViewEntry struct {
	PatientID      string          `json:"patientId"`
	ShortID        string          `json:"shortId"`
	Position       int             `json:"position"`
	DisplayName    string          `json:"displayName"`
	Data           PatientFormData `json:"data"`
	Status         PatientStatus   `json:"status"`
	ComputedStatus StaffStatus     `json:"computedStatus"`
	StatusLabel    string          `json:"statusLabel"`
	LastUpdatedAt  string          `json:"lastUpdatedAt,omitempty"`
	HasBasicData   bool            `json:"hasBasicData"`
}
