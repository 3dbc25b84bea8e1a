package routers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"patient-intake-service/internal/app/config"
	"patient-intake-service/internal/app/delivery/http/controllers"
	"patient-intake-service/internal/app/delivery/http/middlewares"
	"patient-intake-service/internal/app/services/core/staff"
	"patient-intake-service/internal/pkg/constvars"
	"patient-intake-service/internal/pkg/metrics"
	"patient-intake-service/internal/testutil"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestSetupRoutes(t *testing.T) {
	logger := zap.NewNop()
	cfg := staffTestConfig()
	cfg.App = config.App{
		EndpointPrefix:             "api",
		Version:                    "v1",
		MaxRequests:                100,
		RequestBodyLimitInMegabyte: 1,
		AllowedOrigins:             []string{"*"},
	}

	transport := testutil.NewRecordingTransport()
	view := staff.NewStaffViewUsecase(logger, transport, testutil.NewManualClock(staffTestNow), cfg)
	usecase := new(MockPatientSessionUsecase)
	usecase.On("ActiveSessions").Return(3)
	usecase.On("EndSession", mock.Anything, "p-1").Return(nil)

	appMetrics := metrics.New()
	router := chi.NewRouter()
	SetupRoutes(
		router,
		cfg,
		middlewares.NewMiddlewares(logger, cfg, appMetrics),
		controllers.NewHealthController(logger, transport, usecase, view),
		controllers.NewPatientSessionController(logger, usecase),
		controllers.NewStaffController(logger, view, cfg),
	)

	t.Run("Health reports transport driver", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		data := string(decodeEnvelope(t, rr).Data)
		assert.Contains(t, data, `"realtimeDriver":"recording"`)
		assert.Contains(t, data, `"activeSessions":3`)
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Client request id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/patient-sessions/p-1", nil)
		req.Header.Set(constvars.HeaderXRequestID, "req-123")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req.WithContext(context.Background()))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "req-123", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Unknown route", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v2/health", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Metrics are scraped by route pattern", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, `patient_intake_http_requests_total{method="GET",route="/api/v1/health",status="200"} 1`)
		assert.Contains(t, body, `route="/api/v1/patient-sessions/{patient_id}`)
	})
}
