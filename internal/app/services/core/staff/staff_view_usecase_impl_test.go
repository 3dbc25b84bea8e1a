package staff

import (
	"context"
	"testing"
	"time"

	"patient-intake-service/internal/app/config"
	"patient-intake-service/internal/app/models"
	"patient-intake-service/internal/app/services/core/patients"
	"patient-intake-service/internal/pkg/dto/requests"
	"patient-intake-service/internal/pkg/utils"
	"patient-intake-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testStart = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func testConfig() *config.InternalConfig {
	return &config.InternalConfig{
		Patient: config.AppPatient{DebounceInMilliseconds: 300, SessionIdleTTLInMinutes: 120},
		Staff:   config.AppStaff{TickIntervalInSeconds: 5, InactivityThresholdInSeconds: 30},
	}
}

func newTestView() (*staffViewUsecase, *testutil.ManualClock, *testutil.RecordingTransport) {
	clock := testutil.NewManualClock(testStart)
	transport := testutil.NewRecordingTransport()
	view := NewStaffViewUsecase(zap.NewNop(), transport, clock, testConfig()).(*staffViewUsecase)
	return view, clock, transport
}

func activePayload(patientID, firstName string, at time.Time) models.PatientRealtimePayload {
	return models.PatientRealtimePayload{
		PatientID:     patientID,
		Data:          models.PatientFormData{FirstName: firstName},
		Status:        models.PatientStatusActive,
		LastUpdatedAt: utils.FormatTimestamp(at),
	}
}

func TestSubmittedPatientShowsOnStaffBoard(t *testing.T) {
	clock := testutil.NewManualClock(testStart)
	transport := testutil.NewRecordingTransport()
	view := NewStaffViewUsecase(zap.NewNop(), transport, clock, testConfig())
	stop := view.Start(context.Background())
	defer stop()

	sessions := patients.NewPatientSessionUsecase(zap.NewNop(), transport, clock, testConfig())
	session, err := sessions.StartSession(context.Background())
	require.NoError(t, err)

	_, err = sessions.UpdateFields(context.Background(), session.PatientID, &requests.UpdatePatientFields{Fields: map[string]string{
		"firstName":         "Ann",
		"lastName":          "Lee",
		"dateOfBirth":       "1990-01-01",
		"gender":            "Female",
		"phoneNumber":       "+66123456789",
		"email":             "ann@example.com",
		"address":           "1 Rd",
		"preferredLanguage": "English",
		"nationality":       "Thai",
	}})
	require.NoError(t, err)
	_, err = sessions.Submit(context.Background(), session.PatientID)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	board := view.ListPatients(context.Background(), "")

	require.Equal(t, 1, board.Total)
	require.Len(t, board.Patients, 1)
	card := board.Patients[0]
	assert.Equal(t, "Ann Lee", card.DisplayName)
	assert.Equal(t, "Submitted", card.StatusLabel)
	assert.Equal(t, models.StaffStatusSubmitted, card.ComputedStatus)
	assert.True(t, card.HasBasicData)
	assert.Equal(t, session.PatientID[:6], card.ShortID)
}

func TestApplyIsLastWriteWins(t *testing.T) {
	view, _, _ := newTestView()

	first := activePayload("p-1", "Ann", testStart)
	view.Apply(first)
	view.Apply(first)
	assert.Equal(t, 1, view.TrackedPatients())
	assert.Equal(t, first, view.entries["p-1"])

	view.Apply(activePayload("p-2", "Bob", testStart))
	older := activePayload("p-1", "Annie", testStart.Add(-time.Minute))
	view.Apply(older)

	assert.Equal(t, older, view.entries["p-1"], "older timestamp still wins when delivered last")
	assert.Equal(t, []string{"p-1", "p-2"}, view.order, "overwrite keeps first-seen order")
}

func TestApplyDropsPayloadWithoutPatientID(t *testing.T) {
	view, _, _ := newTestView()
	view.Apply(models.PatientRealtimePayload{Status: models.PatientStatusActive})
	assert.Equal(t, 0, view.TrackedPatients())
}

func TestListPatientsRecomputesStatusFromClock(t *testing.T) {
	view, clock, _ := newTestView()
	view.Apply(activePayload("p-1", "Ann", testStart))

	clock.Advance(29 * time.Second)
	assert.Equal(t, models.StaffStatusActive, view.ListPatients(context.Background(), "").Patients[0].ComputedStatus)

	clock.Advance(2 * time.Second)
	board := view.ListPatients(context.Background(), "")
	assert.Equal(t, models.StaffStatusInactive, board.Patients[0].ComputedStatus)
	assert.Equal(t, "Inactive", board.Patients[0].StatusLabel)
	assert.Equal(t, utils.FormatTimestamp(testStart.Add(31*time.Second)), board.GeneratedAt)
}

func TestListPatientsFiltering(t *testing.T) {
	view, _, _ := newTestView()
	view.Apply(activePayload("aaaa-1111", "Ann", testStart))
	view.Apply(activePayload("bbbb-2222", "", testStart))
	view.Apply(activePayload("cccc-3333", "Carl", testStart))
	before := map[string]models.PatientRealtimePayload{}
	for id, payload := range view.entries {
		before[id] = payload
	}

	t.Run("no match", func(t *testing.T) {
		board := view.ListPatients(context.Background(), "zzz")
		assert.Equal(t, 3, board.Total)
		assert.Equal(t, 0, board.Visible)
		assert.Empty(t, board.Patients)
		assert.Equal(t, before, view.entries)
	})

	t.Run("by name", func(t *testing.T) {
		board := view.ListPatients(context.Background(), " ANN ")
		require.Equal(t, 1, board.Visible)
		assert.Equal(t, "aaaa-1111", board.Patients[0].PatientID)
		assert.Equal(t, "ANN", board.Query)
	})

	t.Run("by id", func(t *testing.T) {
		board := view.ListPatients(context.Background(), "CCCC")
		require.Equal(t, 1, board.Visible)
		assert.Equal(t, "Carl", board.Patients[0].DisplayName)
		assert.Equal(t, 3, board.Patients[0].Position)
	})

	t.Run("by placeholder", func(t *testing.T) {
		board := view.ListPatients(context.Background(), "patient 2")
		require.Equal(t, 1, board.Visible)
		assert.Equal(t, "bbbb-2222", board.Patients[0].PatientID)
		assert.Equal(t, "Patient 2", board.Patients[0].DisplayName)
		assert.False(t, board.Patients[0].HasBasicData)
	})

	t.Run("blank shows all in order", func(t *testing.T) {
		board := view.ListPatients(context.Background(), "   ")
		require.Equal(t, 3, board.Visible)
		assert.Equal(t, "aaaa-1111", board.Patients[0].PatientID)
		assert.Equal(t, "bbbb-2222", board.Patients[1].PatientID)
		assert.Equal(t, "cccc-3333", board.Patients[2].PatientID)
	})
}

func TestWatchSignalsCoalesce(t *testing.T) {
	view, _, _ := newTestView()
	changes, cancel := view.Watch()

	view.Apply(activePayload("p-1", "Ann", testStart))
	view.Apply(activePayload("p-2", "Bob", testStart))
	view.notifyWatchers()

	_, open := <-changes
	assert.True(t, open)
	select {
	case <-changes:
		t.Fatal("signals should coalesce into one")
	default:
	}

	cancel()
	cancel()
	_, open = <-changes
	assert.False(t, open)
}

func TestStartSubscribesAndStopReleases(t *testing.T) {
	view, _, transport := newTestView()

	stop := view.Start(context.Background())
	assert.Equal(t, 1, transport.Subscribers())
	again := view.Start(context.Background())
	assert.Equal(t, 1, transport.Subscribers(), "second start reuses the subscription")

	transport.Publish(context.Background(), activePayload("p-1", "Ann", testStart))
	assert.Equal(t, 1, view.TrackedPatients())

	changes, _ := view.Watch()
	stop()
	again()

	assert.Equal(t, 0, transport.Subscribers())
	_, open := <-changes
	assert.False(t, open, "stop closes watchers")

	transport.Publish(context.Background(), activePayload("p-2", "Bob", testStart))
	assert.Equal(t, 1, view.TrackedPatients())
}
