package exceptions

import (
	"errors"
	"patient-intake-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

// FormatIntakeValidationErrors maps each failing form field to one message.
// A field failing several tags keeps the message of the first one.
func FormatIntakeValidationErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"form": constvars.ErrClientCannotProcessRequest}
	}

	fieldErrors := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		field := fieldErr.Field()
		if _, exists := fieldErrors[field]; exists {
			continue
		}
		fieldErrors[field] = intakeMessage(field, fieldErr.Tag())
	}
	return fieldErrors
}

func intakeMessage(field, tag string) string {
	if tag == constvars.ValidationTagRequired {
		if message, ok := constvars.IntakeRequiredFieldMessages[field]; ok {
			return message
		}
	}
	if message, ok := constvars.IntakeFormatMessages[tag]; ok {
		return message
	}
	return field + " " + constvars.IntakeFieldInvalidMessage
}
