package contracts

import (
	"context"
	"patient-intake-service/internal/app/models"
	"patient-intake-service/internal/pkg/dto/responses"
)

type StaffViewUsecase interface {
	Start(ctx context.Context) (stop func())
	Apply(payload models.PatientRealtimePayload)
	ListPatients(ctx context.Context, query string) *responses.StaffPatientList
	Watch() (changes <-chan struct{}, cancel func())
	TrackedPatients() int
}
