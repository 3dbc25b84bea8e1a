package realtime

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestOutboxDrainsOnClose(t *testing.T) {
	var mu sync.Mutex
	var sent []string
	box := newOutbox(zap.NewNop(), "test", 4, time.Second, func(_ context.Context, body []byte) error {
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, string(body))
		return nil
	})

	assert.True(t, box.enqueue([]byte("one")))
	assert.True(t, box.enqueue([]byte("two")))
	box.close()
	box.close()

	assert.Equal(t, []string{"one", "two"}, sent)
	assert.False(t, box.enqueue([]byte("late")))
}

func TestOutboxDropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	box := newOutbox(zap.NewNop(), "test", 1, time.Second, func(context.Context, []byte) error {
		once.Do(func() { close(started) })
		<-release
		return errors.New("broker down")
	})

	assert.True(t, box.enqueue([]byte("in-flight")))
	<-started
	assert.True(t, box.enqueue([]byte("queued")))
	assert.False(t, box.enqueue([]byte("dropped")))

	close(release)
	box.close()
}
