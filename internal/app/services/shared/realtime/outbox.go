package realtime

import (
	"context"
	"patient-intake-service/internal/pkg/constvars"
	"sync"
	"time"

	"go.uber.org/zap"
)

type publishFunc func(ctx context.Context, body []byte) error

// outbox hands encoded payloads to a single sender goroutine so callers of
// Publish never wait on the network. When it is full new payloads are dropped.
type outbox struct {
	log     *zap.Logger
	driver  string
	queue   chan []byte
	publish publishFunc
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func newOutbox(log *zap.Logger, driver string, size int, timeout time.Duration, publish publishFunc) *outbox {
	if size <= 0 {
		size = 1
	}
	o := &outbox{
		log:     log,
		driver:  driver,
		queue:   make(chan []byte, size),
		publish: publish,
		timeout: timeout,
	}
	o.wg.Add(1)
	go o.run()
	return o
}

func (o *outbox) enqueue(body []byte) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return false
	}
	select {
	case o.queue <- body:
		return true
	default:
		o.log.Warn("realtime outbox full, dropping payload",
			zap.String(constvars.LoggingRealtimeDriverKey, o.driver),
			zap.Int(constvars.LoggingOutboxSizeKey, cap(o.queue)),
		)
		return false
	}
}

func (o *outbox) run() {
	defer o.wg.Done()
	for body := range o.queue {
		ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
		if err := o.publish(ctx, body); err != nil {
			o.log.Error("realtime publish failed",
				zap.String(constvars.LoggingRealtimeDriverKey, o.driver),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// close stops accepting payloads and waits until the queued ones are sent.
func (o *outbox) close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	close(o.queue)
	o.mu.Unlock()
	o.wg.Wait()
}
