// Package hal is the only contact point between the pipeline and the
// outside world. Each platform (XIAO round display hardware, host
// simulation) provides the same narrow interfaces.
package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrBusy reports that the transport's transfer queue is full. The
	// caller decides whether to retry or drop the frame.
	ErrBusy = errors.New("transport busy")
)

// Transport owns the physical bus and the panel's pixel-streaming
// protocol. WriteRect hands off a corrected pixel buffer for asynchronous
// transmission; the buffer must not be touched again until the completion
// handler has fired for it.
//
// Completions are reported strictly in submission order. The handler runs
// in the transport's transfer context (interrupt context on hardware) and
// must only signal, never block or allocate.
type Transport interface {
	// Size returns the panel resolution.
	Size() (w, h int)

	// Configure sets the bus clock rate. Implementations may round to
	// the nearest rate the bus supports. Fails only on bus faults, which
	// are fatal at init time.
	Configure(busClockHz uint32) error

	// WriteRect submits pix for the inclusive target rectangle. It
	// returns ErrBusy without side effects when the transfer queue is
	// full; any other error is a bus fault.
	WriteRect(x1, y1, x2, y2 int, pix []byte) error

	// SetCompletionHandler registers the completion callback. Must be
	// called before the first WriteRect.
	SetCompletionHandler(fn func())
}

// TouchState is one sample from the touch controller.
type TouchState struct {
	X, Y    int16
	Pressed bool
}

// Touch polls the touch controller. Coordinate transforms (axis swap,
// mirroring) are the driver's responsibility; the pipeline sees logical
// screen coordinates. A read timeout returns an error and callers treat it
// as "no touch".
type Touch interface {
	Read() (TouchState, error)
}

// Time provides the base tick stream consumed by the pipeline's tick
// service. The tick duration is platform-defined.
type Time interface {
	Ticks() <-chan uint64
	TickPeriodMillis() uint64
}

// HAL bundles the platform's devices.
type HAL interface {
	Logger() Logger
	LED() LED
	Display() Transport
	Touch() Touch
	Time() Time
}
