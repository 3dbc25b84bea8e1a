package realtime

import (
	"context"
	"errors"
	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/app/models"
	"patient-intake-service/internal/pkg/constvars"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

const mqttSubscribeTimeout = 5 * time.Second

var errMQTTNotConnected = errors.New("mqtt client is not connected")

// MQTTClient is the part of mqtt.Client the transport needs.
type MQTTClient interface {
	IsConnected() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
	Unsubscribe(topics ...string) mqtt.Token
}

// mqttTransport broadcasts on an MQTT topic. A client holds one handler per
// topic, so the transport keeps a single broker subscription and fans
// inbound messages out through a local hub. The broker echoes our own
// publishes back, which gives self-delivery.
type mqttTransport struct {
	client MQTTClient
	log    *zap.Logger
	topic  string
	qos    byte
	outbox *outbox
	hub    contracts.RealtimeTransport
}

func NewMQTTTransport(client MQTTClient, log *zap.Logger, topic string, qos byte, outboxSize int, publishTimeout time.Duration) (contracts.RealtimeTransport, error) {
	if !client.IsConnected() {
		return nil, errMQTTNotConnected
	}
	if qos > 2 {
		qos = 1
	}

	t := &mqttTransport{
		client: client,
		log:    log,
		topic:  topic,
		qos:    qos,
		hub:    NewLocalBroadcast(log, topic, outboxSize),
	}

	token := client.Subscribe(topic, qos, t.receive)
	if !token.WaitTimeout(mqttSubscribeTimeout) {
		_ = t.hub.Close()
		return nil, context.DeadlineExceeded
	}
	if err := token.Error(); err != nil {
		_ = t.hub.Close()
		return nil, err
	}

	t.outbox = newOutbox(log, constvars.RealtimeDriverMQTT, outboxSize, publishTimeout, t.send)
	return t, nil
}

func (t *mqttTransport) Driver() string {
	return constvars.RealtimeDriverMQTT
}

func (t *mqttTransport) send(ctx context.Context, body []byte) error {
	token := t.client.Publish(t.topic, t.qos, false, body)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *mqttTransport) receive(_ mqtt.Client, message mqtt.Message) {
	payload, err := DecodePayload(message.Payload())
	if err != nil {
		t.log.Warn(constvars.ErrDevRealtimeDecodePayload,
			zap.String(constvars.LoggingChannelKey, message.Topic()),
			zap.Error(err),
		)
		return
	}
	t.hub.Publish(context.Background(), payload)
}

func (t *mqttTransport) Publish(ctx context.Context, payload models.PatientRealtimePayload) {
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

func (t *mqttTransport) Subscribe(handler contracts.RealtimeHandler) contracts.UnsubscribeFunc {
	return t.hub.Subscribe(handler)
}

// Close leaves the broker connection open; its owner disconnects it.
func (t *mqttTransport) Close() error {
	t.outbox.close()
	token := t.client.Unsubscribe(t.topic)
	if token.WaitTimeout(mqttSubscribeTimeout) && token.Error() != nil {
		t.log.Warn("failed to unsubscribe from mqtt topic",
			zap.String(constvars.LoggingChannelKey, t.topic),
			zap.Error(token.Error()),
		)
	}
	return t.hub.Close()
}
