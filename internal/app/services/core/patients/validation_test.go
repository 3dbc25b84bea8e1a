package patients

import (
	"testing"

	"patient-intake-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

func completeForm() models.PatientFormData {
	return models.PatientFormData{
		FirstName:         "Ann",
		LastName:          "Lee",
		DateOfBirth:       "1990-01-01",
		Gender:            "Female",
		PhoneNumber:       "+66123456789",
		Email:             "ann@example.com",
		Address:           "1 Rd",
		PreferredLanguage: "English",
		Nationality:       "Thai",
	}
}

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.PatientFormData)
		expected map[string]string
	}{
		{
			name:     "complete form",
			mutate:   func(*models.PatientFormData) {},
			expected: nil,
		},
		{
			name: "whitespace and case are normalized",
			mutate: func(d *models.PatientFormData) {
				d.PhoneNumber = "  +66 123-456-789  "
				d.Email = "  Ann@Example.COM "
			},
			expected: nil,
		},
		{
			name:     "blank counts as missing",
			mutate:   func(d *models.PatientFormData) { d.FirstName = "   " },
			expected: map[string]string{"firstName": "First name is required"},
		},
		{
			name:     "phone too short",
			mutate:   func(d *models.PatientFormData) { d.PhoneNumber = "12345" },
			expected: map[string]string{"phoneNumber": "Please enter a valid phone number"},
		},
		{
			name:     "phone with letters",
			mutate:   func(d *models.PatientFormData) { d.PhoneNumber = "+6612345678a" },
			expected: map[string]string{"phoneNumber": "Please enter a valid phone number"},
		},
		{
			name:     "email without domain suffix",
			mutate:   func(d *models.PatientFormData) { d.Email = "ann@example" },
			expected: map[string]string{"email": "Please enter a valid email address"},
		},
		{
			name:     "missing email reports required, not format",
			mutate:   func(d *models.PatientFormData) { d.Email = "" },
			expected: map[string]string{"email": "Email is required"},
		},
		{
			name: "optional fields are never reported",
			mutate: func(d *models.PatientFormData) {
				d.MiddleName = ""
				d.Religion = ""
				d.EmergencyContactName = ""
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := completeForm()
			tt.mutate(&form)
			assert.Equal(t, tt.expected, validateForm(form))
		})
	}
}

func TestValidateFormEmptyReportsEveryRequiredField(t *testing.T) {
	assert.Equal(t, map[string]string{
		"firstName":         "First name is required",
		"lastName":          "Last name is required",
		"dateOfBirth":       "Date of birth is required",
		"gender":            "Gender is required",
		"phoneNumber":       "Phone number is required",
		"email":             "Email is required",
		"address":           "Address is required",
		"preferredLanguage": "Preferred language is required",
		"nationality":       "Nationality is required",
	}, validateForm(models.PatientFormData{}))
}

func TestValidateFormDoesNotMutateInput(t *testing.T) {
	form := completeForm()
	form.Email = " ANN@EXAMPLE.COM "
	validateForm(form)
	assert.Equal(t, " ANN@EXAMPLE.COM ", form.Email)
}
