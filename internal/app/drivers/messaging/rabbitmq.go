package messaging

import (
	"fmt"
	"log"
	"net/url"
	"patient-intake-service/internal/app/config"

	"github.com/rabbitmq/amqp091-go"
)

func NewRabbitMQ(driverConfig *config.DriverConfig) (*amqp091.Connection, error) {
	conn, err := amqp091.Dial(connectionString(driverConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitMQ: %w", err)
	}
	log.Println("Successfully connected to rabbitMQ")
	return conn, nil
}

func connectionString(driverConfig *config.DriverConfig) string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		url.QueryEscape(driverConfig.RabbitMQ.Username),
		url.QueryEscape(driverConfig.RabbitMQ.Password),
		driverConfig.RabbitMQ.Host,
		driverConfig.RabbitMQ.Port,
	)
}
