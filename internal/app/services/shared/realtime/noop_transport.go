package realtime

import (
	"context"
	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/app/models"
	"patient-intake-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// noopTransport keeps the service usable when no broadcast backend is
// reachable: publishes go nowhere and subscriptions never receive.
type noopTransport struct {
	log *zap.Logger
}

func NewNoopTransport(log *zap.Logger) contracts.RealtimeTransport {
	return &noopTransport{log: log}
}

func (t *noopTransport) Driver() string {
	return constvars.RealtimeDriverNone
}

func (t *noopTransport) Publish(_ context.Context, payload models.PatientRealtimePayload) {
	t.log.Debug(constvars.ErrDevRealtimeTransportDisabled,
		zap.String(constvars.LoggingPatientIDKey, payload.PatientID),
	)
}

func (t *noopTransport) Subscribe(contracts.RealtimeHandler) contracts.UnsubscribeFunc {
	return func() {}
}

func (t *noopTransport) Close() error {
	return nil
}
