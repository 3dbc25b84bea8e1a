package config

import (
	"context"
	"log"

	"patient-intake-service/internal/app/contracts"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-chi/chi/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router           *chi.Mux
	Redis            *redis.Client
	RabbitMQ         *amqp091.Connection
	MQTT             mqtt.Client
	Logger           *zap.Logger
	Transport        contracts.RealtimeTransport
	InternalConfig   *InternalConfig
	DriverConfig     *DriverConfig
	StaffViewStop    func()
	SweeperStop      func()
	PatientsShutdown func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.SweeperStop != nil {
		b.SweeperStop()
		log.Println("Successfully stopped patient session sweeper")
	}

	if b.PatientsShutdown != nil {
		b.PatientsShutdown()
		log.Println("Successfully closed patient sessions")
	}

	if b.StaffViewStop != nil {
		b.StaffViewStop()
		log.Println("Successfully stopped staff view")
	}

	if b.Transport != nil {
		if err := b.Transport.Close(); err != nil {
			return err
		}
		log.Println("Successfully closing realtime transport")
	}

	if b.Redis != nil {
		if err := b.Redis.Close(); err != nil {
			return err
		}
		log.Println("Successfully closing Redis")
	}

	if b.RabbitMQ != nil && !b.RabbitMQ.IsClosed() {
		if err := b.RabbitMQ.Close(); err != nil {
			return err
		}
		log.Println("Successfully closing RabbitMQ")
	}

	if b.MQTT != nil && b.MQTT.IsConnected() {
		b.MQTT.Disconnect(250)
		log.Println("Successfully disconnected MQTT")
	}

	if b.Logger != nil {
		// Sync on stdout/stderr returns EINVAL on some platforms.
		_ = b.Logger.Sync()
		log.Println("Successfully closing Logger")
	}

	return nil
}
