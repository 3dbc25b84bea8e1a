package config

import (
	"patient-intake-service/internal/pkg/constvars"
	"patient-intake-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		MQTT: MQTT{
			Broker:   utils.GetEnvString("MQTT_BROKER", "tcp://localhost:1883"),
			ClientID: utils.GetEnvString("MQTT_CLIENT_ID", ""),
			Username: utils.GetEnvString("MQTT_USERNAME", ""),
			Password: utils.GetEnvString("MQTT_PASSWORD", ""),
			QoS:      utils.GetEnvInt("MQTT_QOS", 1),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			AllowedOrigins:             utils.GetEnvCSV("APP_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 50),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
		},
		Realtime: AppRealtime{
			Driver:                  utils.GetEnvString("REALTIME_DRIVER", constvars.RealtimeDriverLocal),
			ChannelName:             utils.GetEnvString("REALTIME_CHANNEL_NAME", constvars.RealtimeChannelName),
			OutboxSize:              utils.GetEnvInt("REALTIME_OUTBOX_SIZE", 256),
			PublishTimeoutInSeconds: utils.GetEnvInt("REALTIME_PUBLISH_TIMEOUT_IN_SECONDS", 3),
		},
		Patient: AppPatient{
			DebounceInMilliseconds:        utils.GetEnvInt("PATIENT_DEBOUNCE_IN_MILLISECONDS", 300),
			SessionIdleTTLInMinutes:       utils.GetEnvInt("PATIENT_SESSION_IDLE_TTL_IN_MINUTES", 120),
			SessionSweepIntervalInSeconds: utils.GetEnvInt("PATIENT_SESSION_SWEEP_INTERVAL_IN_SECONDS", 60),
		},
		Staff: AppStaff{
			TickIntervalInSeconds:           utils.GetEnvInt("STAFF_TICK_INTERVAL_IN_SECONDS", 5),
			InactivityThresholdInSeconds:    utils.GetEnvInt("STAFF_INACTIVITY_THRESHOLD_IN_SECONDS", 30),
			StreamMinIntervalInMilliseconds: utils.GetEnvInt("STAFF_STREAM_MIN_INTERVAL_IN_MILLISECONDS", 250),
			StreamPingIntervalInSeconds:     utils.GetEnvInt("STAFF_STREAM_PING_INTERVAL_IN_SECONDS", 30),
		},
	}
}
