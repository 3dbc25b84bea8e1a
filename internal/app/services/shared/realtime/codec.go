package realtime

import (
	"errors"
	"patient-intake-service/internal/app/models"
	"patient-intake-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
)

var errEmptyPatientID = errors.New(constvars.ErrDevRealtimeEmptyPatientID)

func EncodePayload(payload models.PatientRealtimePayload) ([]byte, error) {
	return json.Marshal(payload)
}

// DecodePayload rejects messages that are not JSON payloads or that carry
// no patientId, since such messages cannot be keyed by a receiver.
func DecodePayload(body []byte) (models.PatientRealtimePayload, error) {
	var payload models.PatientRealtimePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.PatientRealtimePayload{}, err
	}
	if payload.PatientID == "" {
		return models.PatientRealtimePayload{}, errEmptyPatientID
	}
	return payload, nil
}
