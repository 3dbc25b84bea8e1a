package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"patient-intake-service/internal/app/config"
	"patient-intake-service/internal/app/delivery/http/controllers"
	"patient-intake-service/internal/app/delivery/http/middlewares"
	"patient-intake-service/internal/app/delivery/http/routers"
	"patient-intake-service/internal/app/drivers/database"
	"patient-intake-service/internal/app/drivers/logger"
	"patient-intake-service/internal/app/drivers/messaging"
	"patient-intake-service/internal/app/services/core/patients"
	"patient-intake-service/internal/app/services/core/staff"
	"patient-intake-service/internal/app/services/shared/realtime"
	"patient-intake-service/internal/pkg/constvars"
	"patient-intake-service/internal/pkg/metrics"
	"patient-intake-service/internal/pkg/utils"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-chi/chi/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	redisClient := connectRedis(zapLogger, driverConfig, internalConfig)
	rabbitMQConnection := connectRabbitMQ(zapLogger, driverConfig, internalConfig)
	mqttClient := connectMQTT(zapLogger, driverConfig, internalConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Redis:          redisClient,
		RabbitMQ:       rabbitMQConnection,
		MQTT:           mqttClient,
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	bootstrapingTheApp(ctx, bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server listening", zap.String("port", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	zapLogger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	cancel()
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) {
	internalConfig := bootstrap.InternalConfig
	clock := utils.NewSystemClock()

	// Realtime transport
	transport := realtime.NewTransport(bootstrap.Logger, realtime.Options{
		Driver:         internalConfig.Realtime.Driver,
		ChannelName:    internalConfig.Realtime.ChannelName,
		OutboxSize:     internalConfig.Realtime.OutboxSize,
		PublishTimeout: time.Duration(internalConfig.Realtime.PublishTimeoutInSeconds) * time.Second,
		Redis:          bootstrap.Redis,
		RabbitMQ:       bootstrap.RabbitMQ,
		MQTT:           bootstrap.MQTT,
		MQTTQoS:        byte(bootstrap.DriverConfig.MQTT.QoS),
	})
	appMetrics := metrics.New()
	transport = realtime.Instrument(transport, appMetrics)
	bootstrap.Transport = transport

	// Staff view subscribes before any patient can publish
	staffViewUsecase := staff.NewStaffViewUsecase(bootstrap.Logger, transport, clock, internalConfig)
	bootstrap.StaffViewStop = staffViewUsecase.Start(ctx)

	// Patient sessions
	patientSessionUsecase := patients.NewPatientSessionUsecase(bootstrap.Logger, transport, clock, internalConfig)
	bootstrap.PatientsShutdown = patientSessionUsecase.Shutdown

	sweeper := patients.NewSweeper(
		bootstrap.Logger,
		patientSessionUsecase,
		clock,
		time.Duration(internalConfig.Patient.SessionSweepIntervalInSeconds)*time.Second,
	)
	bootstrap.SweeperStop = sweeper.Start(ctx)

	appMetrics.RegisterGauge("active_patient_sessions", "Open patient intake sessions.", func() float64 {
		return float64(patientSessionUsecase.ActiveSessions())
	})
	appMetrics.RegisterGauge("tracked_patients", "Patients known to the staff view.", func() float64 {
		return float64(staffViewUsecase.TrackedPatients())
	})

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, internalConfig, appMetrics)

	// Controllers
	healthController := controllers.NewHealthController(bootstrap.Logger, transport, patientSessionUsecase, staffViewUsecase)
	patientSessionController := controllers.NewPatientSessionController(bootstrap.Logger, patientSessionUsecase)
	staffController := controllers.NewStaffController(bootstrap.Logger, staffViewUsecase, internalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares,
		healthController,
		patientSessionController,
		staffController,
	)
}

// connectRedis returns nil when the redis driver is not selected or the
// server is unreachable; the transport then degrades to noop.
func connectRedis(log *zap.Logger, driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *redis.Client {
	if realtime.NormalizeDriver(internalConfig.Realtime.Driver) != constvars.RealtimeDriverRedis {
		return nil
	}
	client, err := database.NewRedisClient(driverConfig)
	if err != nil {
		log.Warn("Redis unavailable, realtime propagation disabled", zap.Error(err))
		return nil
	}
	return client
}

func connectRabbitMQ(log *zap.Logger, driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *amqp091.Connection {
	if realtime.NormalizeDriver(internalConfig.Realtime.Driver) != constvars.RealtimeDriverRabbitMQ {
		return nil
	}
	conn, err := messaging.NewRabbitMQ(driverConfig)
	if err != nil {
		log.Warn("RabbitMQ unavailable, realtime propagation disabled", zap.Error(err))
		return nil
	}
	return conn
}

func connectMQTT(log *zap.Logger, driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) mqtt.Client {
	if realtime.NormalizeDriver(internalConfig.Realtime.Driver) != constvars.RealtimeDriverMQTT {
		return nil
	}
	client, err := messaging.NewMQTTClient(driverConfig)
	if err != nil {
		log.Warn("MQTT broker unavailable, realtime propagation disabled", zap.Error(err))
		return nil
	}
	return client
}
