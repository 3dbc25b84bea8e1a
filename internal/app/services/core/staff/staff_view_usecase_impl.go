package staff

import (
	"context"
	"patient-intake-service/internal/app/config"
	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/app/models"
	"patient-intake-service/internal/pkg/constvars"
	"patient-intake-service/internal/pkg/dto/responses"
	"patient-intake-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTickInterval        = 5 * time.Second
	defaultInactivityThreshold = 30 * time.Second
)

// staffViewUsecase owns the latest payload per patient. Entries keep the
// order in which patients were first seen.
type staffViewUsecase struct {
	Log       *zap.Logger
	Transport contracts.RealtimeTransport
	Clock     utils.Clock

	tickInterval time.Duration
	threshold    time.Duration

	mu      sync.RWMutex
	entries map[string]models.PatientRealtimePayload
	order   []string

	watchMu     sync.Mutex
	watchers    map[int]chan struct{}
	nextWatcher int

	startOnce sync.Once
	stopOnce  sync.Once
	stopFunc  func()
}

func NewStaffViewUsecase(
	logger *zap.Logger,
	transport contracts.RealtimeTransport,
	clock utils.Clock,
	internalConfig *config.InternalConfig,
) contracts.StaffViewUsecase {
	return &staffViewUsecase{
		Log:          logger,
		Transport:    transport,
		Clock:        clock,
		tickInterval: utils.DurationFromSeconds(internalConfig.Staff.TickIntervalInSeconds, defaultTickInterval),
		threshold:    utils.DurationFromSeconds(internalConfig.Staff.InactivityThresholdInSeconds, defaultInactivityThreshold),
		entries:      make(map[string]models.PatientRealtimePayload),
		watchers:     make(map[int]chan struct{}),
	}
}

// Start subscribes to the transport and begins the status tick. The
// returned stop unsubscribes, halts the tick and closes every watcher;
// calling Start again returns the same stop.
func (uc *staffViewUsecase) Start(ctx context.Context) (stop func()) {
	uc.startOnce.Do(func() {
		unsubscribe := uc.Transport.Subscribe(uc.Apply)
		ticker := time.NewTicker(uc.tickInterval)
		done := make(chan struct{})
		stopped := make(chan struct{})

		go func() {
			defer close(stopped)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-done:
					return
				case <-ticker.C:
					uc.notifyWatchers()
				}
			}
		}()

		uc.Log.Info("Staff view started",
			zap.String(constvars.LoggingRealtimeDriverKey, uc.Transport.Driver()),
			zap.Duration("tick_interval", uc.tickInterval),
		)

		uc.stopFunc = func() {
			uc.stopOnce.Do(func() {
				unsubscribe()
				close(done)
				<-stopped
				uc.closeWatchers()
			})
		}
	})
	return uc.stopFunc
}

// Apply stores payload as the latest state of its patient, replacing any
// earlier payload unconditionally.
func (uc *staffViewUsecase) Apply(payload models.PatientRealtimePayload) {
	if payload.PatientID == "" {
		uc.Log.Warn(constvars.ErrDevRealtimeEmptyPatientID)
		return
	}

	uc.mu.Lock()
	if _, ok := uc.entries[payload.PatientID]; !ok {
		uc.order = append(uc.order, payload.PatientID)
	}
	uc.entries[payload.PatientID] = payload
	tracked := len(uc.order)
	uc.mu.Unlock()

	uc.Log.Debug("staffView received payload",
		zap.String(constvars.LoggingPatientIDKey, payload.PatientID),
		zap.String(constvars.LoggingPatientStatusKey, string(payload.Status)),
		zap.Int(constvars.LoggingEntryCountKey, tracked),
	)
	uc.notifyWatchers()
}

func (uc *staffViewUsecase) ListPatients(ctx context.Context, query string) *responses.StaffPatientList {
	now := uc.Clock.Now()
	term := NormalizeQuery(query)

	uc.mu.RLock()
	patients := make([]models.StaffViewEntry, 0, len(uc.order))
	for index, patientID := range uc.order {
		entry := buildEntry(uc.entries[patientID], index+1, now, uc.threshold)
		if MatchesQuery(entry, term) {
			patients = append(patients, entry)
		}
	}
	total := len(uc.order)
	uc.mu.RUnlock()

	uc.Log.Debug("staffView listed patients",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingQueryKey, term),
		zap.Int(constvars.LoggingEntryCountKey, total),
		zap.Int(constvars.LoggingVisibleCountKey, len(patients)),
	)

	return &responses.StaffPatientList{
		Total:       total,
		Visible:     len(patients),
		Query:       strings.TrimSpace(query),
		GeneratedAt: utils.FormatTimestamp(now),
		Patients:    patients,
	}
}

// Watch returns a channel that receives a signal whenever the view may have
// changed. Signals coalesce; the channel is closed on cancel or view stop.
func (uc *staffViewUsecase) Watch() (<-chan struct{}, func()) {
	changes := make(chan struct{}, 1)

	uc.watchMu.Lock()
	id := uc.nextWatcher
	uc.nextWatcher++
	uc.watchers[id] = changes
	uc.watchMu.Unlock()

	return changes, func() {
		uc.watchMu.Lock()
		defer uc.watchMu.Unlock()
		if current, ok := uc.watchers[id]; ok {
			delete(uc.watchers, id)
			close(current)
		}
	}
}

func (uc *staffViewUsecase) TrackedPatients() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return len(uc.order)
}

func (uc *staffViewUsecase) notifyWatchers() {
	uc.watchMu.Lock()
	defer uc.watchMu.Unlock()
	for _, changes := range uc.watchers {
		select {
		case changes <- struct{}{}:
		default:
		}
	}
}

func (uc *staffViewUsecase) closeWatchers() {
	uc.watchMu.Lock()
	defer uc.watchMu.Unlock()
	for id, changes := range uc.watchers {
		delete(uc.watchers, id)
		close(changes)
	}
}
