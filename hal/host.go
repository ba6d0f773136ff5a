//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	panel  *hostPanel
	touch  *hostTouch
	t      *hostTime
}

// New returns a host HAL implementation: a simulated 240x240 round panel
// with an asynchronous transfer queue, mouse-as-touch input and a stepped
// timebase driven by the window (or RunHeadless).
func New() HAL {
	logger := &hostLogger{w: os.Stdout}
	return &hostHAL{
		logger: logger,
		led:    &hostLED{logger: logger},
		panel:  newHostPanel(240, 240),
		touch:  &hostTouch{},
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger     { return h.logger }
func (h *hostHAL) LED() LED           { return h.led }
func (h *hostHAL) Display() Transport { return h.panel }
func (h *hostHAL) Touch() Touch       { return h.touch }
func (h *hostHAL) Time() Time         { return h.t }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	logger *hostLogger
	on     bool
}

func (l *hostLED) High() {
	if !l.on {
		l.on = true
		l.logger.WriteLineString("LED: on")
	}
}

func (l *hostLED) Low() {
	if l.on {
		l.on = false
		l.logger.WriteLineString("LED: off")
	}
}

// hostTouch holds the last mouse sample published by the window.
type hostTouch struct {
	mu sync.Mutex
	st TouchState
}

func (t *hostTouch) Read() (TouchState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.st, nil
}

func (t *hostTouch) set(st TouchState) {
	t.mu.Lock()
	t.st = st
	t.mu.Unlock()
}

type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64     { return t.ch }
func (t *hostTime) TickPeriodMillis() uint64 { return 1 }

// step converts wall-clock progress since the last call into 1ms ticks.
func (t *hostTime) step() {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.stepN(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	const tickDur = time.Millisecond
	ticks := uint64(t.acc / tickDur)
	if ticks == 0 {
		return
	}
	t.acc = t.acc % tickDur
	t.stepN(ticks)
}

func (t *hostTime) stepN(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
