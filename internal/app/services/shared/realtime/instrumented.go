package realtime

import (
	"context"
	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/app/models"
	"patient-intake-service/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

type instrumentedTransport struct {
	contracts.RealtimeTransport
	published prometheus.Counter
	received  prometheus.Counter
}

// Instrument counts payloads crossing the transport. A nil m returns the
// transport unchanged.
func Instrument(transport contracts.RealtimeTransport, m *metrics.Metrics) contracts.RealtimeTransport {
	if m == nil {
		return transport
	}
	driver := transport.Driver()
	return &instrumentedTransport{
		RealtimeTransport: transport,
		published:         m.RealtimeMessages.WithLabelValues(driver, metrics.DirectionPublished),
		received:          m.RealtimeMessages.WithLabelValues(driver, metrics.DirectionReceived),
	}
}

func (t *instrumentedTransport) Publish(ctx context.Context, payload models.PatientRealtimePayload) {
	t.published.Inc()
	t.RealtimeTransport.Publish(ctx, payload)
}

func (t *instrumentedTransport) Subscribe(handler contracts.RealtimeHandler) contracts.UnsubscribeFunc {
	return t.RealtimeTransport.Subscribe(func(payload models.PatientRealtimePayload) {
		t.received.Inc()
		handler(payload)
	})
}
