package routers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"patient-intake-service/internal/app/config"
	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/app/delivery/http/controllers"
	"patient-intake-service/internal/app/delivery/http/middlewares"
	"patient-intake-service/internal/app/models"
	"patient-intake-service/internal/app/services/core/staff"
	"patient-intake-service/internal/pkg/dto/responses"
	"patient-intake-service/internal/pkg/utils"
	"patient-intake-service/internal/testutil"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var staffTestNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func staffTestConfig() *config.InternalConfig {
	return &config.InternalConfig{
		Staff: config.AppStaff{
			TickIntervalInSeconds:           5,
			InactivityThresholdInSeconds:    30,
			StreamMinIntervalInMilliseconds: 10,
			StreamPingIntervalInSeconds:     30,
		},
	}
}

func newStaffRouter(t *testing.T) (*chi.Mux, contracts.StaffViewUsecase, *testutil.RecordingTransport, func()) {
	t.Helper()
	logger := zap.NewNop()
	cfg := staffTestConfig()
	transport := testutil.NewRecordingTransport()
	view := staff.NewStaffViewUsecase(logger, transport, testutil.NewManualClock(staffTestNow), cfg)
	stop := view.Start(context.Background())

	router := chi.NewRouter()
	attachStaffRoutes(router, &middlewares.Middlewares{Log: logger, InternalConfig: cfg}, controllers.NewStaffController(logger, view, cfg))
	return router, view, transport, stop
}

func publishActive(transport *testutil.RecordingTransport, patientID, firstName string) {
	transport.Publish(context.Background(), models.PatientRealtimePayload{
		PatientID:     patientID,
		Data:          models.PatientFormData{FirstName: firstName},
		Status:        models.PatientStatusActive,
		LastUpdatedAt: utils.FormatTimestamp(staffTestNow),
	})
}

func TestStaffRouterListPatients(t *testing.T) {
	router, _, transport, stop := newStaffRouter(t)
	defer stop()

	publishActive(transport, "aaaa-1111", "Ann")
	publishActive(transport, "bbbb-2222", "Bob")

	t.Run("Filtered by name", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/patients?q=ann", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var list responses.StaffPatientList
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &list))
		assert.Equal(t, 2, list.Total)
		assert.Equal(t, 1, list.Visible)
		assert.Equal(t, "Ann", list.Patients[0].DisplayName)
		assert.Equal(t, "Active", list.Patients[0].StatusLabel)
	})

	t.Run("No match", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/patients?q=nobody", nil))

		var list responses.StaffPatientList
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &list))
		assert.Equal(t, 2, list.Total)
		assert.Equal(t, 0, list.Visible)
		assert.Empty(t, list.Patients)
	})
}

func readStreamMessage(t *testing.T, conn *websocket.Conn) responses.StaffStreamMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, body, err := conn.ReadMessage()
	require.NoError(t, err)
	var message responses.StaffStreamMessage
	require.NoError(t, json.Unmarshal(body, &message))
	return message
}

func TestStaffRouterStream(t *testing.T) {
	router, _, transport, stop := newStaffRouter(t)
	defer stop()

	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/stream?q=ann"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	initial := readStreamMessage(t, conn)
	assert.Equal(t, "snapshot", initial.Type)
	assert.Equal(t, 0, initial.Total)

	publishActive(transport, "bbbb-2222", "Bob")
	afterBob := readStreamMessage(t, conn)
	assert.Equal(t, 1, afterBob.Total)
	assert.Equal(t, 0, afterBob.Visible)

	publishActive(transport, "aaaa-1111", "Ann")
	afterAnn := readStreamMessage(t, conn)
	assert.Equal(t, 2, afterAnn.Total)
	require.Equal(t, 1, afterAnn.Visible)
	assert.Equal(t, "aaaa-1111", afterAnn.Patients[0].PatientID)
}

func TestStaffRouterStreamClosesWhenViewStops(t *testing.T) {
	router, _, _, stop := newStaffRouter(t)

	server := httptest.NewServer(router)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/stream", nil)
	require.NoError(t, err)
	defer conn.Close()

	readStreamMessage(t, conn)
	stop()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "expected going-away close, got %v", err)
}
