package realtime

import (
	"context"
	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/app/models"
	"patient-intake-service/internal/pkg/constvars"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisSubscribeTimeout = 5 * time.Second

// redisTransport broadcasts over a Redis Pub/Sub channel. Redis delivers to
// every subscriber of the channel, including this process's own.
type redisTransport struct {
	client        *redis.Client
	log           *zap.Logger
	channel       string
	outbox        *outbox
	subscriptions *subscriptionSet
}

func NewRedisTransport(client *redis.Client, log *zap.Logger, channel string, outboxSize int, publishTimeout time.Duration) contracts.RealtimeTransport {
	t := &redisTransport{
		client:        client,
		log:           log,
		channel:       channel,
		subscriptions: newSubscriptionSet(),
	}
	t.outbox = newOutbox(log, constvars.RealtimeDriverRedis, outboxSize, publishTimeout, t.send)
	return t
}

func (t *redisTransport) Driver() string {
	return constvars.RealtimeDriverRedis
}

func (t *redisTransport) send(ctx context.Context, body []byte) error {
	return t.client.Publish(ctx, t.channel, body).Err()
}

func (t *redisTransport) Publish(ctx context.Context, payload models.PatientRealtimePayload) {
	body, err := EncodePayload(payload)
	if err != nil {
		t.log.Error("failed to encode realtime payload",
			zap.String(constvars.LoggingPatientIDKey, payload.PatientID),
			zap.Error(err),
		)
		return
	}
	t.outbox.enqueue(body)
}

func (t *redisTransport) Subscribe(handler contracts.RealtimeHandler) contracts.UnsubscribeFunc {
	ctx, cancel := context.WithTimeout(context.Background(), redisSubscribeTimeout)
	defer cancel()

	pubsub := t.client.Subscribe(ctx, t.channel)
	// Wait for the subscription confirmation so nothing published after
	// Subscribe returns is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		t.log.Error("failed to subscribe to redis channel",
			zap.String(constvars.LoggingChannelKey, t.channel),
			zap.Error(err),
		)
		_ = pubsub.Close()
		return func() {}
	}

	messages := pubsub.Channel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for message := range messages {
			payload, err := DecodePayload([]byte(message.Payload))
			if err != nil {
				t.log.Warn(constvars.ErrDevRealtimeDecodePayload,
					zap.String(constvars.LoggingChannelKey, message.Channel),
					zap.Error(err),
				)
				continue
			}
			handler(payload)
		}
	}()

	unsubscribe, _ := t.subscriptions.add(func() {
		if err := pubsub.Close(); err != nil {
			t.log.Warn("failed to close redis subscription", zap.Error(err))
		}
		<-done
	})
	return unsubscribe
}

func (t *redisTransport) Close() error {
	t.outbox.close()
	t.subscriptions.closeAll()
	return nil
}
