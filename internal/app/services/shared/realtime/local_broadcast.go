package realtime

import (
	"context"
	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/app/models"
	"patient-intake-service/internal/pkg/constvars"
	"sync"

	"go.uber.org/zap"
)

const defaultLocalSubscriberCapacity = 128

// localBroadcast fans payloads out to subscribers in the same process. Each
// subscriber has its own buffered queue drained by one goroutine, so a slow
// handler never blocks the publisher or the other subscribers.
type localBroadcast struct {
	log      *zap.Logger
	channel  string
	capacity int

	mu          sync.RWMutex
	subscribers map[*localSubscriber]struct{}
	closed      bool
}

type localSubscriber struct {
	queue   chan models.PatientRealtimePayload
	handler contracts.RealtimeHandler
	done    chan struct{}
}

func NewLocalBroadcast(log *zap.Logger, channel string, capacity int) contracts.RealtimeTransport {
	if capacity <= 0 {
		capacity = defaultLocalSubscriberCapacity
	}
	return &localBroadcast{
		log:         log,
		channel:     channel,
		capacity:    capacity,
		subscribers: make(map[*localSubscriber]struct{}),
	}
}

func (b *localBroadcast) Driver() string {
	return constvars.RealtimeDriverLocal
}

func (b *localBroadcast) Publish(_ context.Context, payload models.PatientRealtimePayload) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for sub := range b.subscribers {
		b.deliver(sub, payload)
	}
}

// deliver must run under at least the read lock so the queue cannot be
// closed concurrently.
func (b *localBroadcast) deliver(sub *localSubscriber, payload models.PatientRealtimePayload) {
	select {
	case sub.queue <- payload:
		return
	default:
	}

	// Full: make room by dropping the oldest queued payload.
	select {
	case dropped := <-sub.queue:
		b.log.Warn("local broadcast queue full, dropping oldest payload",
			zap.String(constvars.LoggingChannelKey, b.channel),
			zap.String(constvars.LoggingPatientIDKey, dropped.PatientID),
		)
	default:
	}
	select {
	case sub.queue <- payload:
	default:
		b.log.Warn("local broadcast queue full, dropping payload",
			zap.String(constvars.LoggingChannelKey, b.channel),
			zap.String(constvars.LoggingPatientIDKey, payload.PatientID),
		)
	}
}

func (b *localBroadcast) Subscribe(handler contracts.RealtimeHandler) contracts.UnsubscribeFunc {
	sub := &localSubscriber{
		queue:   make(chan models.PatientRealtimePayload, b.capacity),
		handler: handler,
		done:    make(chan struct{}),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return func() {}
	}
	b.subscribers[sub] = struct{}{}
	b.mu.Unlock()

	go sub.run()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(sub) })
	}
}

// remove waits for the subscriber goroutine, so it must not be called from
// inside that subscriber's handler.
func (b *localBroadcast) remove(sub *localSubscriber) {
	b.mu.Lock()
	if _, ok := b.subscribers[sub]; !ok {
		b.mu.Unlock()
		return
	}
	delete(b.subscribers, sub)
	close(sub.queue)
	b.mu.Unlock()
	<-sub.done
}

func (s *localSubscriber) run() {
	defer close(s.done)
	for payload := range s.queue {
		s.handler(payload)
	}
}

func (b *localBroadcast) Close() error {
	b.mu.Lock()
	b.closed = true
	subs := make([]*localSubscriber, 0, len(b.subscribers))
	for sub := range b.subscribers {
		subs = append(subs, sub)
		delete(b.subscribers, sub)
		close(sub.queue)
	}
	b.mu.Unlock()

	for _, sub := range subs {
		<-sub.done
	}
	return nil
}
