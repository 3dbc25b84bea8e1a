package messaging

import (
	"fmt"
	"log"
	"patient-intake-service/internal/app/config"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const (
	mqttConnectTimeout = 10 * time.Second
	mqttClientIDPrefix = "patient-intake-"
)

func NewMQTTClient(driverConfig *config.DriverConfig) (mqtt.Client, error) {
	client := mqtt.NewClient(mqttOptions(driverConfig))

	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		client.Disconnect(0)
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: timed out", driverConfig.MQTT.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	log.Println("Successfully connected to MQTT broker")
	return client, nil
}

func mqttOptions(driverConfig *config.DriverConfig) *mqtt.ClientOptions {
	clientID := driverConfig.MQTT.ClientID
	if clientID == "" {
		// Ids must be unique per broker; a clash disconnects the older client.
		clientID = mqttClientIDPrefix + uuid.NewString()
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(driverConfig.MQTT.Broker)
	opts.SetClientID(clientID)
	if driverConfig.MQTT.Username != "" {
		opts.SetUsername(driverConfig.MQTT.Username)
	}
	if driverConfig.MQTT.Password != "" {
		opts.SetPassword(driverConfig.MQTT.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	return opts
}
