package realtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"patient-intake-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type collector struct {
	mu       sync.Mutex
	payloads []models.PatientRealtimePayload
}

func (c *collector) handle(payload models.PatientRealtimePayload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads = append(c.payloads, payload)
}

func (c *collector) ids() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.payloads))
	for _, payload := range c.payloads {
		ids = append(ids, payload.PatientID)
	}
	return ids
}

func TestLocalBroadcastDeliversToEverySubscriber(t *testing.T) {
	transport := NewLocalBroadcast(zap.NewNop(), "test", 8)
	defer transport.Close()

	first, second := &collector{}, &collector{}
	defer transport.Subscribe(first.handle)()
	defer transport.Subscribe(second.handle)()

	transport.Publish(context.Background(), models.PatientRealtimePayload{PatientID: "a"})
	transport.Publish(context.Background(), models.PatientRealtimePayload{PatientID: "b"})

	assert.Eventually(t, func() bool { return len(first.ids()) == 2 && len(second.ids()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, first.ids())
	assert.Equal(t, []string{"a", "b"}, second.ids())
}

func TestLocalBroadcastUnsubscribeIsIdempotent(t *testing.T) {
	transport := NewLocalBroadcast(zap.NewNop(), "test", 8)
	defer transport.Close()

	received := &collector{}
	unsubscribe := transport.Subscribe(received.handle)

	transport.Publish(context.Background(), models.PatientRealtimePayload{PatientID: "a"})
	assert.Eventually(t, func() bool { return len(received.ids()) == 1 }, time.Second, 5*time.Millisecond)

	unsubscribe()
	unsubscribe()

	transport.Publish(context.Background(), models.PatientRealtimePayload{PatientID: "b"})
	assert.Equal(t, []string{"a"}, received.ids())
}

func TestLocalBroadcastCloseReleasesSubscribers(t *testing.T) {
	transport := NewLocalBroadcast(zap.NewNop(), "test", 8)
	received := &collector{}
	unsubscribe := transport.Subscribe(received.handle)

	assert.NoError(t, transport.Close())
	unsubscribe()

	transport.Publish(context.Background(), models.PatientRealtimePayload{PatientID: "a"})
	late := transport.Subscribe(received.handle)
	late()
	assert.Empty(t, received.ids())
}

func TestLocalBroadcastDropsOldestWhenQueueIsFull(t *testing.T) {
	transport := NewLocalBroadcast(zap.NewNop(), "test", 1)
	defer transport.Close()

	release := make(chan struct{})
	received := &collector{}
	started := make(chan struct{}, 1)
	defer transport.Subscribe(func(payload models.PatientRealtimePayload) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		received.handle(payload)
	})()

	transport.Publish(context.Background(), models.PatientRealtimePayload{PatientID: "blocking"})
	<-started
	transport.Publish(context.Background(), models.PatientRealtimePayload{PatientID: "old"})
	transport.Publish(context.Background(), models.PatientRealtimePayload{PatientID: "new"})
	close(release)

	assert.Eventually(t, func() bool { return len(received.ids()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"blocking", "new"}, received.ids())
}
