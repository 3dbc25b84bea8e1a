package contracts

import (
	"context"
	"patient-intake-service/internal/app/models"
)

// RealtimeHandler receives every payload delivered on the channel.
type RealtimeHandler func(payload models.PatientRealtimePayload)

// UnsubscribeFunc releases a subscription. Calls after the first are no-ops.
type UnsubscribeFunc func()

// RealtimeTransport is the pub/sub channel shared by patient sessions and
// staff viewers. Publish never reports failure to the caller; delivery
// includes the publisher's own subscriptions.
type RealtimeTransport interface {
	Publish(ctx context.Context, payload models.PatientRealtimePayload)
	Subscribe(handler RealtimeHandler) UnsubscribeFunc
	Driver() string
	Close() error
}
