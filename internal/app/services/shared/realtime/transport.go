package realtime

import (
	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/pkg/constvars"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Options struct {
	Driver         string
	ChannelName    string
	OutboxSize     int
	PublishTimeout time.Duration
	Redis          *redis.Client
	RabbitMQ       *amqp.Connection
	MQTT           MQTTClient
	MQTTQoS        byte
}

// NewTransport builds the transport for the configured driver. A driver whose
// backend is missing or fails to initialise degrades to the no-op transport.
func NewTransport(log *zap.Logger, opts Options) contracts.RealtimeTransport {
	channel := opts.ChannelName
	if channel == "" {
		channel = constvars.RealtimeChannelName
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = 3 * time.Second
	}
	var transport contracts.RealtimeTransport
	switch NormalizeDriver(opts.Driver) {
	case constvars.RealtimeDriverLocal:
		transport = NewLocalBroadcast(log, channel, opts.OutboxSize)
	case constvars.RealtimeDriverRedis:
		if opts.Redis == nil {
			log.Warn("redis client unavailable, realtime disabled")
			return NewNoopTransport(log)
		}
		transport = NewRedisTransport(opts.Redis, log, channel, opts.OutboxSize, opts.PublishTimeout)
	case constvars.RealtimeDriverRabbitMQ:
		if opts.RabbitMQ == nil || opts.RabbitMQ.IsClosed() {
			log.Warn("rabbitmq connection unavailable, realtime disabled")
			return NewNoopTransport(log)
		}
		var err error
		transport, err = NewRabbitMQTransport(opts.RabbitMQ, log, channel, opts.OutboxSize, opts.PublishTimeout)
		if err != nil {
			log.Error("failed to initialise rabbitmq transport, realtime disabled", zap.Error(err))
			return NewNoopTransport(log)
		}
	case constvars.RealtimeDriverMQTT:
		if opts.MQTT == nil {
			log.Warn("mqtt client unavailable, realtime disabled")
			return NewNoopTransport(log)
		}
		var err error
		transport, err = NewMQTTTransport(opts.MQTT, log, channel, opts.MQTTQoS, opts.OutboxSize, opts.PublishTimeout)
		if err != nil {
			log.Error("failed to initialise mqtt transport, realtime disabled", zap.Error(err))
			return NewNoopTransport(log)
		}
	case constvars.RealtimeDriverNone:
		return NewNoopTransport(log)
	default:
		log.Warn("unknown realtime driver, realtime disabled",
			zap.String(constvars.LoggingRealtimeDriverKey, opts.Driver),
		)
		return NewNoopTransport(log)
	}

	log.Info("Realtime transport ready",
		zap.String(constvars.LoggingRealtimeDriverKey, transport.Driver()),
		zap.String(constvars.LoggingChannelKey, channel),
	)
	return transport
}

// NormalizeDriver lowercases the configured driver name; blank means local.
func NormalizeDriver(driver string) string {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "" {
		return constvars.RealtimeDriverLocal
	}
	return driver
}
