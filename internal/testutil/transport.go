package testutil

import (
	"context"
	"sync"

	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/app/models"
)

// RecordingTransport keeps every published payload and delivers it
// synchronously to current subscribers, the publisher's own included.
type RecordingTransport struct {
	mu          sync.Mutex
	published   []models.PatientRealtimePayload
	subscribers map[int]contracts.RealtimeHandler
	nextID      int
	closed      bool
}

func NewRecordingTransport() *RecordingTransport {
	return &RecordingTransport{subscribers: make(map[int]contracts.RealtimeHandler)}
}

func (t *RecordingTransport) Publish(_ context.Context, payload models.PatientRealtimePayload) {
	t.mu.Lock()
	t.published = append(t.published, payload)
	handlers := make([]contracts.RealtimeHandler, 0, len(t.subscribers))
	for id := 0; id < t.nextID; id++ {
		if handler, ok := t.subscribers[id]; ok {
			handlers = append(handlers, handler)
		}
	}
	t.mu.Unlock()

	for _, handler := range handlers {
		handler(payload)
	}
}

func (t *RecordingTransport) Subscribe(handler contracts.RealtimeHandler) contracts.UnsubscribeFunc {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subscribers[id] = handler
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subscribers, id)
			t.mu.Unlock()
		})
	}
}

func (t *RecordingTransport) Driver() string {
	return "recording"
}

func (t *RecordingTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// Published returns a copy of every payload seen so far.
func (t *RecordingTransport) Published() []models.PatientRealtimePayload {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.PatientRealtimePayload, len(t.published))
	copy(out, t.published)
	return out
}

// Last returns the most recent payload, or false when nothing was published.
func (t *RecordingTransport) Last() (models.PatientRealtimePayload, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.published) == 0 {
		return models.PatientRealtimePayload{}, false
	}
	return t.published[len(t.published)-1], true
}

func (t *RecordingTransport) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subscribers)
}

func (t *RecordingTransport) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
