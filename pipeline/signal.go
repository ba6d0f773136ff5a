package pipeline

import (
	"sync/atomic"
	"time"
)

// signal is a counting semaphore for the transport-to-coordinator
// completion path. Signal is safe to call from the transport's transfer
// context (an interrupt handler on hardware): it never blocks and never
// allocates. Wait consumes one pending signal, blocking up to timeout.
type signal struct {
	n  atomic.Int32
	ch chan struct{}
}

func newSignal() *signal {
	return &signal{ch: make(chan struct{}, 1)}
}

func (s *signal) Signal() {
	s.n.Add(1)
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// TryWait consumes a pending signal without blocking.
func (s *signal) TryWait() bool {
	for {
		n := s.n.Load()
		if n <= 0 {
			return false
		}
		if s.n.CompareAndSwap(n, n-1) {
			return true
		}
	}
}

// Wait consumes a pending signal, blocking at most timeout (zero means
// forever).
func (s *signal) Wait(timeout time.Duration) bool {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		if s.TryWait() {
			return true
		}
		if deadline.IsZero() {
			<-s.ch
			continue
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		t := time.NewTimer(remaining)
		select {
		case <-s.ch:
			t.Stop()
		case <-t.C:
			// One more try: the signal may have landed between the
			// last TryWait and the timer firing.
			return s.TryWait()
		}
	}
}
