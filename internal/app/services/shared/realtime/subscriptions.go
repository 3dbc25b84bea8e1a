package realtime

import (
	"patient-intake-service/internal/app/contracts"
	"sync"
)

// subscriptionSet tracks live subscriptions so a transport can release all
// of them on Close. Each release runs exactly once.
type subscriptionSet struct {
	mu     sync.Mutex
	nextID int
	active map[int]func()
	closed bool
}

func newSubscriptionSet() *subscriptionSet {
	return &subscriptionSet{active: make(map[int]func())}
}

// add registers release and returns the idempotent unsubscribe for it. It
// returns false when the set is already closed, in which case release has
// been run.
func (s *subscriptionSet) add(release func()) (contracts.UnsubscribeFunc, bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		release()
		return func() {}, false
	}
	id := s.nextID
	s.nextID++

	var once sync.Once
	run := func() { once.Do(release) }
	s.active[id] = run
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.active, id)
		s.mu.Unlock()
		run()
	}, true
}

func (s *subscriptionSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

func (s *subscriptionSet) closeAll() {
	s.mu.Lock()
	s.closed = true
	releases := make([]func(), 0, len(s.active))
	for id, run := range s.active {
		releases = append(releases, run)
		delete(s.active, id)
	}
	s.mu.Unlock()

	for _, run := range releases {
		run()
	}
}
