// Package pipeline schedules the render-transmit loop: it claims frame
// buffers, has the scene rasterized into them tile by tile, corrects the
// pixels for the panel's wire encoding, and hands them to the transport
// for asynchronous transmission, overlapping the next render with the
// in-flight transfer when double buffering is enabled.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync/atomic"
	"time"

	"halo/gfx/fb"
	"halo/gfx/pixswap"
	"halo/hal"
)

// State tracks a buffer through the render-transmit cycle. A buffer is
// owned by the renderer in Rendering/Correcting and by the transport in
// Transmitting/AwaitingCompletion; ownership flips back to the renderer
// only after the coordinator observes the completion signal.
type State uint8

const (
	StateIdle State = iota
	StateRendering
	StateCorrecting
	StateTransmitting
	StateAwaitingCompletion
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRendering:
		return "rendering"
	case StateCorrecting:
		return "correcting"
	case StateTransmitting:
		return "transmitting"
	case StateAwaitingCompletion:
		return "awaiting-completion"
	default:
		return "unknown"
	}
}

// Scene is the pipeline's view of the widget layer. All four methods are
// called with the API lock held.
type Scene interface {
	// Render rasterizes the scene into v's tile. The view clips writes
	// to the tile, so a renderer cannot expand a partial region.
	Render(v *fb.View)

	// Dirty returns the accumulated region needing redraw and resets
	// the accumulation.
	Dirty() (image.Rectangle, bool)

	// Advance moves animations and timers forward by dt.
	Advance(dt time.Duration)

	// HandleTouch delivers one touch sample.
	HandleTouch(x, y int16, pressed bool)
}

// TouchPoller reads the touch controller once. Registered by the host
// application; invoked once per loop iteration.
type TouchPoller func() (x, y int16, pressed bool)

// Stats are cumulative pipeline counters.
type Stats struct {
	Frames         uint64
	Renders        uint64
	DroppedRegions uint64
}

// Coordinator drives the frame loop. Construct with New, then Start; all
// exported methods except Stop are also safe to call directly from tests
// or a host harness without starting the loop.
type Coordinator struct {
	cfg   Config
	tr    hal.Transport
	scene Scene
	clock *Clock
	log   hal.Logger

	lock *APILock
	pool *fb.Pool

	states    []atomic.Uint32
	completed *signal
	pending   []int // buffer indices with in-flight transfers, oldest first
	next      int   // next buffer to claim; alternates under double buffering

	poll    TouchPoller
	lastNow time.Duration

	frames  atomic.Uint64
	renders atomic.Uint64
	dropped atomic.Uint64

	stop chan struct{}
	done chan struct{}
}

// New allocates the frame buffers and binds the coordinator to the
// transport. Allocation or bus configuration failure is fatal: the caller
// must abort startup, there is nothing to render into.
func New(cfg Config, tr hal.Transport, scene Scene, clock *Clock, log hal.Logger) (*Coordinator, error) {
	cfg.setDefaults()

	pool, err := fb.Alloc(fb.Config{
		Width:          cfg.Width,
		Height:         cfg.Height,
		StripRows:      cfg.StripRows,
		Region:         cfg.Region,
		DoubleBuffered: cfg.DoubleBuffered,
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: buffer allocation: %w", err)
	}

	if err := tr.Configure(cfg.BusClockHz); err != nil {
		return nil, fmt.Errorf("pipeline: bus configuration: %w", err)
	}

	c := &Coordinator{
		cfg:       cfg,
		tr:        tr,
		scene:     scene,
		clock:     clock,
		log:       log,
		lock:      NewAPILock(),
		pool:      pool,
		states:    make([]atomic.Uint32, len(pool.Buffers())),
		completed: newSignal(),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}

	// The handler runs in the transport's transfer context and must only
	// signal, which is exactly all it does.
	tr.SetCompletionHandler(c.completed.Signal)

	if cfg.StripRows == cfg.Height {
		c.logf("pipeline: full-frame buffers (%d bytes) in %s memory",
			pool.Buffers()[0].SizeBytes(), cfg.Region)
	} else {
		c.logf("pipeline: %d-row strip buffers (%d bytes) in %s memory",
			cfg.StripRows, pool.Buffers()[0].SizeBytes(), cfg.Region)
	}
	if cfg.DoubleBuffered {
		c.logf("pipeline: double buffering enabled")
	}
	c.logf("pipeline: bus %d MHz, swap=%v invert=%v word-parallel=%v",
		cfg.BusClockHz/1_000_000, cfg.SwapBytes, cfg.InvertColors, cfg.WordParallel)

	return c, nil
}

// Lock returns the API lock. Any external caller creating or mutating
// visual objects must hold it.
func (c *Coordinator) Lock() *APILock { return c.lock }

// SetTouchPoller registers the input polling function.
func (c *Coordinator) SetTouchPoller(p TouchPoller) { c.poll = p }

// BufferState reports buffer i's current pipeline state.
func (c *Coordinator) BufferState(i int) State {
	return State(c.states[i].Load())
}

// BufferCount returns the number of allocated frame buffers.
func (c *Coordinator) BufferCount() int { return len(c.pool.Buffers()) }

// Stats returns the cumulative counters.
func (c *Coordinator) Stats() Stats {
	return Stats{
		Frames:         c.frames.Load(),
		Renders:        c.renders.Load(),
		DroppedRegions: c.dropped.Load(),
	}
}

// Start launches the frame loop on its own goroutine.
func (c *Coordinator) Start() {
	go c.Run()
}

// Stop halts the frame loop and waits for it to exit.
func (c *Coordinator) Stop() {
	close(c.stop)
	<-c.done
}

// Run executes the frame loop on the calling goroutine until Stop. Most
// callers want Start; Run exists so the caller can own the goroutine and
// wrap it (panic reporting, affinity experiments).
func (c *Coordinator) Run() {
	defer close(c.done)

	if c.cfg.Affinity == AffinityPinned {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}

	c.logf("pipeline: loop running (stack budget %d KiB, pinned=%v)",
		c.cfg.TaskStackBytes>>10, c.cfg.Affinity == AffinityPinned)

	for {
		select {
		case <-c.stop:
			return
		default:
		}

		c.pollTouch()
		c.RenderCycle()

		// Bounded yield between iterations so lower-priority work
		// (touch polling on a shared bus especially) gets bus time
		// even under sustained rendering load.
		time.Sleep(c.cfg.TickPeriod)
	}
}

func (c *Coordinator) pollTouch() {
	if c.poll == nil {
		return
	}
	x, y, pressed := c.poll()
	c.lock.Lock()
	c.scene.HandleTouch(x, y, pressed)
	c.lock.Unlock()
}

// RenderCycle performs one full pass: advance animations, collect the
// dirty region, and render-correct-transmit each tile it spans. Holds the
// API lock for the duration of the pass.
func (c *Coordinator) RenderCycle() {
	c.collectCompletions()

	c.lock.Lock()
	defer c.lock.Unlock()

	if c.clock != nil {
		now := c.clock.Now()
		c.scene.Advance(now - c.lastNow)
		c.lastNow = now
	}

	dirty, ok := c.scene.Dirty()
	if c.cfg.Refresh == RefreshFull {
		// The naive policy redraws everything each cycle; the scene's
		// accumulation was still consumed above so it cannot grow
		// without bound.
		dirty, ok = c.pool.Frame(), true
	}
	if !ok {
		return
	}

	for _, tile := range c.pool.Tiles(dirty) {
		if !c.renderTile(tile) {
			// Region dropped; pick up with the next dirty region on
			// the next cycle rather than stalling the loop here.
			return
		}
	}
	c.frames.Add(1)
}

// renderTile runs one tile through the state machine. Reports false when
// the tile (and thus the region) was dropped.
func (c *Coordinator) renderTile(tile image.Rectangle) bool {
	idx, ok := c.claim()
	if !ok {
		c.dropped.Add(1)
		c.logf("pipeline: no buffer became free within %v, dropping region at %v",
			c.cfg.CompletionTimeout, tile)
		return false
	}
	buf := c.pool.Buffers()[idx]

	v, err := fb.NewView(buf, tile)
	if err != nil {
		c.setState(idx, StateIdle)
		c.dropped.Add(1)
		c.logf("pipeline: %v", err)
		return false
	}

	c.scene.Render(v)
	c.renders.Add(1)

	c.setState(idx, StateCorrecting)
	pixswap.Correct(v.Bytes(), pixswap.Opts{
		SwapBytes:    c.cfg.SwapBytes,
		InvertColors: c.cfg.InvertColors,
		WordParallel: c.cfg.WordParallel,
	})

	c.setState(idx, StateTransmitting)
	for attempt := 0; ; attempt++ {
		err = c.tr.WriteRect(tile.Min.X, tile.Min.Y, tile.Max.X-1, tile.Max.Y-1, v.Bytes())
		if err == nil {
			break
		}
		if errors.Is(err, hal.ErrBusy) && attempt < c.cfg.SubmitRetries {
			// Queue full: one in-flight transfer finishing frees a
			// slot. Wait for it, bounded.
			if c.awaitCompletion() {
				continue
			}
		}
		c.setState(idx, StateIdle)
		c.dropped.Add(1)
		c.logf("pipeline: submit failed for tile %v: %v, dropping region", tile, err)
		return false
	}

	// The submit call returns before the bus transfer does; from here
	// the transport owns the buffer until its completion signal.
	c.setState(idx, StateAwaitingCompletion)
	c.pending = append(c.pending, idx)
	return true
}

// claim takes the next buffer in rotation for rendering, waiting on the
// completion signal while the transport still owns it.
func (c *Coordinator) claim() (int, bool) {
	idx := c.next
	for c.BufferState(idx) != StateIdle {
		if !c.awaitCompletion() {
			return 0, false
		}
	}
	c.next = (idx + 1) % len(c.states)
	c.setState(idx, StateRendering)
	return idx, true
}

// awaitCompletion blocks for one completion signal, bounded by the
// configured timeout, and applies it.
func (c *Coordinator) awaitCompletion() bool {
	if !c.completed.Wait(c.cfg.CompletionTimeout) {
		return false
	}
	c.observeCompletion()
	return true
}

// collectCompletions applies all completion signals that arrived since the
// last cycle. The signal may land before or after the originating submit
// call returned; the counting signal makes both orders equivalent.
func (c *Coordinator) collectCompletions() {
	for c.completed.TryWait() {
		c.observeCompletion()
	}
}

// observeCompletion returns the oldest in-flight buffer to the renderer.
// Completions arrive in submission order per the transport contract.
func (c *Coordinator) observeCompletion() {
	if len(c.pending) == 0 {
		return
	}
	idx := c.pending[0]
	c.pending = c.pending[1:]
	c.setState(idx, StateIdle)
}

func (c *Coordinator) setState(i int, s State) {
	c.states[i].Store(uint32(s))
}

func (c *Coordinator) logf(format string, args ...any) {
	if c.log == nil {
		return
	}
	c.log.WriteLineString(fmt.Sprintf(format, args...))
}
