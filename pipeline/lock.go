package pipeline

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"time"
)

// APILock serializes every touch of the scene graph and the render
// buffers: the frame loop holds it across a render pass, and any external
// caller building or mutating visual objects must hold it too.
//
// The lock is reentrant. The frame loop and application setup code both
// need it, sometimes nested, so the goroutine holding it may acquire it
// again without deadlocking itself.
type APILock struct {
	mu       sync.Mutex
	owner    uint64
	depth    int
	released chan struct{}
}

func NewAPILock() *APILock {
	return &APILock{released: make(chan struct{})}
}

// Lock acquires the lock, waiting as long as it takes.
func (l *APILock) Lock() {
	l.LockTimeout(0)
}

// LockTimeout acquires the lock, waiting at most d (zero means forever).
// Returning false is a caller error: something held the lock past its
// budget, and the caller must log it rather than silently block.
func (l *APILock) LockTimeout(d time.Duration) bool {
	me := goid()

	var deadline time.Time
	if d > 0 {
		deadline = time.Now().Add(d)
	}

	for {
		l.mu.Lock()
		if l.owner == 0 || l.owner == me {
			l.owner = me
			l.depth++
			l.mu.Unlock()
			return true
		}
		released := l.released
		l.mu.Unlock()

		if deadline.IsZero() {
			<-released
			continue
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		t := time.NewTimer(remaining)
		select {
		case <-released:
			t.Stop()
		case <-t.C:
			return false
		}
	}
}

// Unlock releases one level of the lock. The last release wakes all
// waiters. Unlocking a lock not held by the caller panics: that is a
// programming error, not a runtime condition.
func (l *APILock) Unlock() {
	me := goid()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.owner != me || l.depth == 0 {
		panic("pipeline: unlock of lock not held by this goroutine")
	}
	l.depth--
	if l.depth == 0 {
		l.owner = 0
		close(l.released)
		l.released = make(chan struct{})
	}
}

// goid extracts the current goroutine's id from its stack header. The
// runtime offers no cheaper portable way to identify a goroutine, and the
// lock is taken at frame rate, not per pixel, so the cost is acceptable.
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}
