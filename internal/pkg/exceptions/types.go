package exceptions

import (
	"errors"
	"fmt"
	"patient-intake-service/internal/pkg/constvars"
)

var (
	// ErrSessionNotFound is the sentinel behind ErrPatientSessionNotFound.
	ErrSessionNotFound = errors.New("patient session not found")
	// ErrSessionClosed is returned by a session after teardown.
	ErrSessionClosed = errors.New("patient session closed")
	// ErrUnknownField is the sentinel behind ErrUnknownFormField.
	ErrUnknownField = errors.New("unknown form field")
	// ErrValidation is the sentinel behind ErrFormValidation.
	ErrValidation = errors.New("form validation failed")
)

var (
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrRequestBodyTooLarge = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusRequestEntityTooBig, constvars.ErrClientRequestBodyTooLarge, constvars.ErrDevInvalidInput)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrURLParamMissing = func(paramName string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamMissing, paramName))
	}
	ErrWebsocketUpgrade = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevWebsocketUpgrade)
	}

	// Patient sessions
	ErrPatientSessionNotFound = func(patientID string) *CustomError {
		return BuildNewCustomError(ErrSessionNotFound, constvars.StatusNotFound, constvars.ErrClientPatientSessionNotFound, fmt.Sprintf(constvars.ErrDevPatientSessionNotFound, patientID))
	}
	ErrPatientSessionClosed = func(patientID string) *CustomError {
		return BuildNewCustomError(ErrSessionClosed, constvars.StatusNotFound, constvars.ErrClientPatientSessionNotFound, fmt.Sprintf(constvars.ErrDevPatientSessionClosed, patientID))
	}
	ErrUnknownFormField = func(field string) *CustomError {
		return BuildNewCustomError(ErrUnknownField, constvars.StatusBadRequest, constvars.ErrClientUnknownFormField, fmt.Sprintf(constvars.ErrDevUnknownFormField, field))
	}
	ErrFormValidation = func(fieldErrors map[string]string) *CustomError {
		customErr := BuildNewCustomError(ErrValidation, constvars.StatusUnprocessableEntity, constvars.ErrClientFormValidationFailed, constvars.ErrDevFormValidationFailed)
		customErr.Errors = fieldErrors
		return customErr
	}

	// Default Server
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevServerProcess)
	}
)
