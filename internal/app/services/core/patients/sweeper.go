package patients

import (
	"context"
	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper periodically closes abandoned patient sessions.
type Sweeper struct {
	log      *zap.Logger
	usecase  contracts.PatientSessionUsecase
	clock    utils.Clock
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewSweeper(log *zap.Logger, usecase contracts.PatientSessionUsecase, clock utils.Clock, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		log:      log,
		usecase:  usecase,
		clock:    clock,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start begins the ticker loop. It returns a stop function that waits for
// the loop to exit.
func (w *Sweeper) Start(ctx context.Context) (stop func()) {
	ticker := time.NewTicker(w.interval)
	stopped := make(chan struct{})

	w.log.Info("Patient session sweeper started", zap.Duration("interval", w.interval))

	go func() {
		defer close(stopped)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			case <-ticker.C:
				w.runOnce(ctx)
			}
		}
	}()

	return func() {
		w.stopOnce.Do(func() { close(w.stop) })
		<-stopped
	}
}

func (w *Sweeper) runOnce(ctx context.Context) int {
	return w.usecase.SweepIdleSessions(ctx, w.clock.Now())
}
