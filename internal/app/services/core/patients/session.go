package patients

import (
	"context"
	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/app/models"
	"patient-intake-service/internal/pkg/constvars"
	"patient-intake-service/internal/pkg/dto/responses"
	"patient-intake-service/internal/pkg/exceptions"
	"patient-intake-service/internal/pkg/utils"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// session is one patient's form. All state changes happen under mu, and the
// transport is only called with mu held so payloads leave in change order.
type session struct {
	mu sync.Mutex

	id            string
	data          models.PatientFormData
	status        models.PatientStatus
	errors        map[string]string
	lastUpdatedAt time.Time
	submittedAt   time.Time
	lastActivity  time.Time
	closed        bool

	// generation invalidates debounce callbacks scheduled before the latest
	// edit, submit, reset or close.
	generation uint64
	debounce   utils.Timer

	debounceWindow time.Duration
	clock          utils.Clock
	transport      contracts.RealtimeTransport
	log            *zap.Logger
}

func newSession(id string, debounceWindow time.Duration, clock utils.Clock, transport contracts.RealtimeTransport, log *zap.Logger) *session {
	return &session{
		id:             id,
		status:         models.PatientStatusIdle,
		errors:         map[string]string{},
		lastActivity:   clock.Now(),
		debounceWindow: debounceWindow,
		clock:          clock,
		transport:      transport,
		log:            log,
	}
}

func (s *session) snapshot() (*responses.PatientSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, exceptions.ErrPatientSessionClosed(s.id)
	}
	return s.snapshotLocked(), nil
}

// edit applies every field in name order. Unknown names reject the whole
// edit before anything changes.
func (s *session) edit(fields map[string]string) (*responses.PatientSession, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if !models.IsKnownField(name) {
			return nil, exceptions.ErrUnknownFormField(name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, exceptions.ErrPatientSessionClosed(s.id)
	}

	s.lastActivity = s.clock.Now()
	if len(names) == 0 {
		return s.snapshotLocked(), nil
	}

	for _, name := range names {
		s.data.Set(name, fields[name])
		delete(s.errors, name)
	}

	if s.status == models.PatientStatusIdle {
		s.status = models.PatientStatusActive
	}
	if s.status != models.PatientStatusSubmitted {
		s.scheduleLocked()
	}
	return s.snapshotLocked(), nil
}

func (s *session) submit(ctx context.Context) (*responses.PatientSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, exceptions.ErrPatientSessionClosed(s.id)
	}
	s.lastActivity = s.clock.Now()

	if s.status == models.PatientStatusSubmitted {
		return s.snapshotLocked(), nil
	}

	if fieldErrors := validateForm(s.data); len(fieldErrors) > 0 {
		s.errors = fieldErrors
		return nil, exceptions.ErrFormValidation(copyErrors(fieldErrors))
	}

	s.cancelDebounceLocked()
	now := s.clock.Now()
	s.errors = map[string]string{}
	s.status = models.PatientStatusSubmitted
	s.lastUpdatedAt = now
	s.submittedAt = now
	s.publishLocked(ctx)
	return s.snapshotLocked(), nil
}

func (s *session) reset(ctx context.Context) (*responses.PatientSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, exceptions.ErrPatientSessionClosed(s.id)
	}

	s.cancelDebounceLocked()
	now := s.clock.Now()
	s.data = models.PatientFormData{}
	s.errors = map[string]string{}
	s.status = models.PatientStatusIdle
	s.lastUpdatedAt = now
	s.submittedAt = time.Time{}
	s.lastActivity = now
	s.publishLocked(ctx)
	return s.snapshotLocked(), nil
}

// close cancels any pending publish. It reports false when already closed.
func (s *session) close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.closed = true
	s.cancelDebounceLocked()
	return true
}

func (s *session) idleFor(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActivity)
}

func (s *session) scheduleLocked() {
	s.cancelDebounceLocked()
	generation := s.generation
	s.debounce = s.clock.AfterFunc(s.debounceWindow, func() {
		s.flush(generation)
	})
}

func (s *session) cancelDebounceLocked() {
	s.generation++
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
}

// flush is the debounce callback.
func (s *session) flush(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || generation != s.generation {
		return
	}
	s.debounce = nil
	if s.status == models.PatientStatusSubmitted || !s.data.HasAnyValue() {
		return
	}

	s.status = models.PatientStatusActive
	s.lastUpdatedAt = s.clock.Now()
	s.publishLocked(context.Background())
}

func (s *session) publishLocked(ctx context.Context) {
	payload := models.PatientRealtimePayload{
		PatientID:     s.id,
		Data:          s.data,
		Status:        s.status,
		LastUpdatedAt: utils.FormatTimestamp(s.lastUpdatedAt),
	}
	s.transport.Publish(ctx, payload)

	s.log.Debug("patientSession published snapshot",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingPatientIDKey, s.id),
		zap.String(constvars.LoggingPatientStatusKey, string(s.status)),
	)
}

func (s *session) snapshotLocked() *responses.PatientSession {
	response := &responses.PatientSession{
		PatientID:   s.id,
		Data:        s.data,
		Status:      s.status,
		StatusLabel: s.status.Label(),
	}
	if !s.lastUpdatedAt.IsZero() {
		response.LastUpdatedAt = utils.FormatTimestamp(s.lastUpdatedAt)
	}
	if !s.submittedAt.IsZero() {
		response.SubmittedAt = utils.FormatTimestamp(s.submittedAt)
	}
	if len(s.errors) > 0 {
		response.Errors = copyErrors(s.errors)
	}
	return response
}

func copyErrors(fieldErrors map[string]string) map[string]string {
	out := make(map[string]string, len(fieldErrors))
	for field, message := range fieldErrors {
		out[field] = message
	}
	return out
}
