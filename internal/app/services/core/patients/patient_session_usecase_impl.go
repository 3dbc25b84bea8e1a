package patients

import (
	"context"
	"patient-intake-service/internal/app/config"
	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/pkg/constvars"
	"patient-intake-service/internal/pkg/dto/requests"
	"patient-intake-service/internal/pkg/dto/responses"
	"patient-intake-service/internal/pkg/exceptions"
	"patient-intake-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultDebounceWindow = 300 * time.Millisecond
	defaultSessionIdleTTL = 2 * time.Hour
)

type patientSessionUsecase struct {
	Log       *zap.Logger
	Transport contracts.RealtimeTransport
	Clock     utils.Clock

	debounceWindow time.Duration
	idleTTL        time.Duration

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewPatientSessionUsecase(
	logger *zap.Logger,
	transport contracts.RealtimeTransport,
	clock utils.Clock,
	internalConfig *config.InternalConfig,
) contracts.PatientSessionUsecase {
	return &patientSessionUsecase{
		Log:            logger,
		Transport:      transport,
		Clock:          clock,
		debounceWindow: utils.DurationFromMilliseconds(internalConfig.Patient.DebounceInMilliseconds, defaultDebounceWindow),
		idleTTL:        time.Duration(internalConfig.Patient.SessionIdleTTLInMinutes) * time.Minute,
		sessions:       make(map[string]*session),
	}
}

func (uc *patientSessionUsecase) StartSession(ctx context.Context) (*responses.PatientSession, error) {
	requestID := utils.GetRequestID(ctx)

	uc.mu.Lock()
	patientID := utils.GeneratePatientID()
	for uc.sessions[patientID] != nil {
		patientID = utils.GeneratePatientID()
	}
	current := newSession(patientID, uc.debounceWindow, uc.Clock, uc.Transport, uc.Log)
	uc.sessions[patientID] = current
	total := len(uc.sessions)
	uc.mu.Unlock()

	utils.LogBusinessEvent(uc.Log, "patient_session_started", requestID,
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Int(constvars.LoggingSessionCountKey, total),
	)
	return current.snapshot()
}

func (uc *patientSessionUsecase) GetSession(ctx context.Context, patientID string) (*responses.PatientSession, error) {
	current, err := uc.find(patientID)
	if err != nil {
		return nil, err
	}
	return current.snapshot()
}

func (uc *patientSessionUsecase) UpdateFields(ctx context.Context, patientID string, request *requests.UpdatePatientFields) (*responses.PatientSession, error) {
	current, err := uc.find(patientID)
	if err != nil {
		return nil, err
	}

	var fields map[string]string
	if request != nil {
		fields = request.Fields
	}

	uc.Log.Debug("patientSessionUsecase.UpdateFields called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Int(constvars.LoggingFieldCountKey, len(fields)),
	)
	return current.edit(fields)
}

func (uc *patientSessionUsecase) Submit(ctx context.Context, patientID string) (*responses.PatientSession, error) {
	requestID := utils.GetRequestID(ctx)
	current, err := uc.find(patientID)
	if err != nil {
		return nil, err
	}

	response, err := current.submit(ctx)
	if err != nil {
		uc.Log.Info("patientSessionUsecase.Submit blocked by validation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "patient_form_submitted", requestID,
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return response, nil
}

func (uc *patientSessionUsecase) Reset(ctx context.Context, patientID string) (*responses.PatientSession, error) {
	current, err := uc.find(patientID)
	if err != nil {
		return nil, err
	}

	response, err := current.reset(ctx)
	if err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "patient_form_reset", utils.GetRequestID(ctx),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return response, nil
}

func (uc *patientSessionUsecase) EndSession(ctx context.Context, patientID string) error {
	uc.mu.Lock()
	current, ok := uc.sessions[patientID]
	if ok {
		delete(uc.sessions, patientID)
	}
	uc.mu.Unlock()

	if !ok {
		return exceptions.ErrPatientSessionNotFound(patientID)
	}
	current.close()

	utils.LogBusinessEvent(uc.Log, "patient_session_ended", utils.GetRequestID(ctx),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return nil
}

// SweepIdleSessions closes sessions with no operation for the idle TTL. A
// non-positive TTL disables sweeping.
func (uc *patientSessionUsecase) SweepIdleSessions(ctx context.Context, now time.Time) int {
	if uc.idleTTL <= 0 {
		return 0
	}

	uc.mu.Lock()
	var expired []*session
	for patientID, current := range uc.sessions {
		if current.idleFor(now) >= uc.idleTTL {
			expired = append(expired, current)
			delete(uc.sessions, patientID)
		}
	}
	remaining := len(uc.sessions)
	uc.mu.Unlock()

	for _, current := range expired {
		current.close()
	}

	if len(expired) > 0 {
		uc.Log.Info("patientSessionUsecase.SweepIdleSessions closed idle sessions",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Int(constvars.LoggingEntryCountKey, len(expired)),
			zap.Int(constvars.LoggingSessionCountKey, remaining),
		)
	}
	return len(expired)
}

func (uc *patientSessionUsecase) ActiveSessions() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return len(uc.sessions)
}

// Shutdown closes every session so no debounced publish fires afterwards.
func (uc *patientSessionUsecase) Shutdown() {
	uc.mu.Lock()
	sessions := uc.sessions
	uc.sessions = make(map[string]*session)
	uc.mu.Unlock()

	for _, current := range sessions {
		current.close()
	}
}

func (uc *patientSessionUsecase) find(patientID string) (*session, error) {
	if patientID == "" {
		return nil, exceptions.ErrURLParamMissing(constvars.URLParamPatientID)
	}
	uc.mu.RLock()
	current, ok := uc.sessions[patientID]
	uc.mu.RUnlock()
	if !ok {
		return nil, exceptions.ErrPatientSessionNotFound(patientID)
	}
	return current, nil
}
