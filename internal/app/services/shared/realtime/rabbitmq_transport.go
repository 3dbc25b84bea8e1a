package realtime

import (
	"context"
	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/app/models"
	"patient-intake-service/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// rabbitMQTransport broadcasts through a fanout exchange named after the
// channel. Every subscription binds its own exclusive auto-delete queue, so
// each subscriber (this process's own included) gets every message.
type rabbitMQTransport struct {
	conn     *amqp.Connection
	log      *zap.Logger
	exchange string

	// publishCh is only used by the outbox goroutine.
	publishCh     *amqp.Channel
	outbox        *outbox
	subscriptions *subscriptionSet
}

func NewRabbitMQTransport(conn *amqp.Connection, log *zap.Logger, exchange string, outboxSize int, publishTimeout time.Duration) (contracts.RealtimeTransport, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	err = ch.ExchangeDeclare(
		exchange,                             // name
		constvars.RabbitMQExchangeKindFanout, // kind
		false,                                // durable
		false,                                // autoDelete
		false,                                // internal
		false,                                // noWait
		nil,                                  // args
	)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}

	t := &rabbitMQTransport{
		conn:          conn,
		log:           log,
		exchange:      exchange,
		publishCh:     ch,
		subscriptions: newSubscriptionSet(),
	}
	t.outbox = newOutbox(log, constvars.RealtimeDriverRabbitMQ, outboxSize, publishTimeout, t.send)
	return t, nil
}

func (t *rabbitMQTransport) Driver() string {
	return constvars.RealtimeDriverRabbitMQ
}

func (t *rabbitMQTransport) send(ctx context.Context, body []byte) error {
	return t.publishCh.PublishWithContext(ctx,
		t.exchange, // exchange
		"",         // routing key, ignored by fanout
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType: constvars.MIMEApplicationJSON,
			Timestamp:   time.Now(),
			Body:        body,
		},
	)
}

func (t *rabbitMQTransport) Publish(ctx context.Context, payload models.PatientRealtimePayload) {
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

func (t *rabbitMQTransport) Subscribe(handler contracts.RealtimeHandler) contracts.UnsubscribeFunc {
	ch, deliveries, consumerTag, err := t.consume()
	if err != nil {
		t.log.Error("failed to subscribe to rabbitmq exchange",
			zap.String(constvars.LoggingChannelKey, t.exchange),
			zap.Error(err),
		)
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for delivery := range deliveries {
			payload, err := DecodePayload(delivery.Body)
			if err != nil {
				t.log.Warn(constvars.ErrDevRealtimeDecodePayload,
					zap.String(constvars.LoggingChannelKey, t.exchange),
					zap.Error(err),
				)
				continue
			}
			handler(payload)
		}
	}()

	unsubscribe, _ := t.subscriptions.add(func() {
		if err := ch.Cancel(consumerTag, false); err != nil {
			t.log.Warn("failed to cancel rabbitmq consumer", zap.Error(err))
		}
		if err := ch.Close(); err != nil {
			t.log.Warn("failed to close rabbitmq channel", zap.Error(err))
		}
		<-done
	})
	return unsubscribe
}

func (t *rabbitMQTransport) consume() (*amqp.Channel, <-chan amqp.Delivery, string, error) {
	ch, err := t.conn.Channel()
	if err != nil {
		return nil, nil, "", err
	}

	queue, err := ch.QueueDeclare(
		"",    // name, generated by the broker
		false, // durable
		true,  // autoDelete
		true,  // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		_ = ch.Close()
		return nil, nil, "", err
	}

	if err := ch.QueueBind(queue.Name, "", t.exchange, false, nil); err != nil {
		_ = ch.Close()
		return nil, nil, "", err
	}

	consumerTag := "staff-view-" + uuid.NewString()
	deliveries, err := ch.Consume(
		queue.Name,  // queue
		consumerTag, // consumer
		true,        // autoAck
		true,        // exclusive
		false,       // noLocal
		false,       // noWait
		nil,         // args
	)
	if err != nil {
		_ = ch.Close()
		return nil, nil, "", err
	}
	return ch, deliveries, consumerTag, nil
}

func (t *rabbitMQTransport) Close() error {
	t.outbox.close()
	t.subscriptions.closeAll()
	if t.publishCh.IsClosed() {
		return nil
	}
	return t.publishCh.Close()
}

