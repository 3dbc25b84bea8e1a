package models

import "strings"

type PatientStatus string

const (
	PatientStatusIdle      PatientStatus = "idle"
	PatientStatusActive    PatientStatus = "active"
	PatientStatusSubmitted PatientStatus = "submitted"
)

// Label is the wording shown to the patient next to the form.
func (s PatientStatus) Label() string {
	switch s {
	case PatientStatusActive:
		return "Filling in progress"
	case PatientStatusSubmitted:
		return "Submitted"
	default:
		return "Not started"
	}
}

const (
	FieldFirstName                    = "firstName"
	FieldMiddleName                   = "middleName"
	FieldLastName                     = "lastName"
	FieldDateOfBirth                  = "dateOfBirth"
	FieldGender                       = "gender"
	FieldPhoneNumber                  = "phoneNumber"
	FieldEmail                        = "email"
	FieldAddress                      = "address"
	FieldPreferredLanguage            = "preferredLanguage"
	FieldNationality                  = "nationality"
	FieldEmergencyContactName         = "emergencyContactName"
	FieldEmergencyContactRelationship = "emergencyContactRelationship"
	FieldReligion                     = "religion"
)

// PatientFormFields lists every form field in display order.
var PatientFormFields = []string{
	FieldFirstName,
	FieldMiddleName,
	FieldLastName,
	FieldDateOfBirth,
	FieldGender,
	FieldPhoneNumber,
	FieldEmail,
	FieldAddress,
	FieldPreferredLanguage,
	FieldNationality,
	FieldEmergencyContactName,
	FieldEmergencyContactRelationship,
	FieldReligion,
}

type PatientFormData struct {
	FirstName                    string `json:"firstName" validate:"required"`
	MiddleName                   string `json:"middleName"`
	LastName                     string `json:"lastName" validate:"required"`
	DateOfBirth                  string `json:"dateOfBirth" validate:"required"`
	Gender                       string `json:"gender" validate:"required"`
	PhoneNumber                  string `json:"phoneNumber" validate:"required,intake_phone"`
	Email                        string `json:"email" validate:"required,intake_email"`
	Address                      string `json:"address" validate:"required"`
	PreferredLanguage            string `json:"preferredLanguage" validate:"required"`
	Nationality                  string `json:"nationality" validate:"required"`
	EmergencyContactName         string `json:"emergencyContactName"`
	EmergencyContactRelationship string `json:"emergencyContactRelationship"`
	Religion                     string `json:"religion"`
}

func (d *PatientFormData) field(name string) *string {
	switch name {
	case FieldFirstName:
		return &d.FirstName
	case FieldMiddleName:
		return &d.MiddleName
	case FieldLastName:
		return &d.LastName
	case FieldDateOfBirth:
		return &d.DateOfBirth
	case FieldGender:
		return &d.Gender
	case FieldPhoneNumber:
		return &d.PhoneNumber
	case FieldEmail:
		return &d.Email
	case FieldAddress:
		return &d.Address
	case FieldPreferredLanguage:
		return &d.PreferredLanguage
	case FieldNationality:
		return &d.Nationality
	case FieldEmergencyContactName:
		return &d.EmergencyContactName
	case FieldEmergencyContactRelationship:
		return &d.EmergencyContactRelationship
	case FieldReligion:
		return &d.Religion
	}
	return nil
}

// IsKnownField reports whether name is one of PatientFormFields.
func IsKnownField(name string) bool {
	var d PatientFormData
	return d.field(name) != nil
}

// Set assigns value to the named field and reports whether the field exists.
func (d *PatientFormData) Set(name, value string) bool {
	target := d.field(name)
	if target == nil {
		return false
	}
	*target = value
	return true
}

func (d PatientFormData) Get(name string) (string, bool) {
	target := d.field(name)
	if target == nil {
		return "", false
	}
	return *target, true
}

// HasAnyValue is true when at least one field is non-blank after trimming.
func (d PatientFormData) HasAnyValue() bool {
	for _, name := range PatientFormFields {
		if value, _ := d.Get(name); strings.TrimSpace(value) != "" {
			return true
		}
	}
	return false
}

// HasBasicData is true when any identifying contact field is filled in.
func (d PatientFormData) HasBasicData() bool {
	return d.FirstName != "" || d.LastName != "" || d.PhoneNumber != "" || d.Email != ""
}

// FullName joins first and last name, trimmed.
func (d PatientFormData) FullName() string {
	if d.FirstName == "" && d.LastName == "" {
		return ""
	}
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// PatientRealtimePayload is the wire snapshot of one patient session.
type PatientRealtimePayload struct {
	PatientID     string          `json:"patientId"`
	Data          PatientFormData `json:"data"`
	Status        PatientStatus   `json:"status"`
	LastUpdatedAt string          `json:"lastUpdatedAt"`
}
