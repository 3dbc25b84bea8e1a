package contracts

import (
	"context"
	"patient-intake-service/internal/pkg/dto/requests"
	"patient-intake-service/internal/pkg/dto/responses"
	"time"
)

type PatientSessionUsecase interface {
	StartSession(ctx context.Context) (*responses.PatientSession, error)
	GetSession(ctx context.Context, patientID string) (*responses.PatientSession, error)
	UpdateFields(ctx context.Context, patientID string, request *requests.UpdatePatientFields) (*responses.PatientSession, error)
	Submit(ctx context.Context, patientID string) (*responses.PatientSession, error)
	Reset(ctx context.Context, patientID string) (*responses.PatientSession, error)
	EndSession(ctx context.Context, patientID string) error
	SweepIdleSessions(ctx context.Context, now time.Time) int
	ActiveSessions() int
	Shutdown()
}
