package patients

import (
	"patient-intake-service/internal/app/models"
	"patient-intake-service/internal/pkg/exceptions"
	"patient-intake-service/internal/pkg/utils"
	"strings"
)

// validateForm checks a normalized copy of data and returns one message per
// failing field, or nil when the form can be submitted.
func validateForm(data models.PatientFormData) map[string]string {
	normalized := data
	for _, name := range models.PatientFormFields {
		value, _ := normalized.Get(name)
		normalized.Set(name, strings.TrimSpace(value))
	}
	normalized.Email = strings.ToLower(normalized.Email)

	if err := utils.ValidateStruct(normalized); err != nil {
		return exceptions.FormatIntakeValidationErrors(err)
	}
	return nil
}
