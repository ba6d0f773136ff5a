package pipeline

import (
	"time"

	"halo/gfx/fb"
)

// RefreshPolicy selects which regions get rasterized each cycle.
type RefreshPolicy uint8

const (
	// RefreshFull redraws the entire frame every cycle, changed or not.
	// Simple, predictable, wasteful: the naive baseline.
	RefreshFull RefreshPolicy = iota
	// RefreshPartial redraws only the regions the scene reports dirty,
	// clipped to the frame, never expanded.
	RefreshPartial
)

// Affinity controls whether the frame loop is pinned to an OS thread.
// Pinning keeps the loop on one core; leaving it unpinned lets the
// scheduler move it away from the core servicing bus interrupts, which
// under high interrupt frequency is itself a legitimate strategy.
type Affinity uint8

const (
	AffinityNone Affinity = iota
	AffinityPinned
)

// Config is the pipeline's full configuration surface.
type Config struct {
	Width  int
	Height int

	// StripRows is the buffer extent in rows; zero means full frame.
	// See fb.Config for the tradeoff this knob controls.
	StripRows      int
	DoubleBuffered bool
	Region         fb.Region

	Refresh RefreshPolicy

	// SwapBytes converts the rasterizer's little-endian pixels to the
	// panel's big-endian wire order. InvertColors additionally
	// complements pixel values for panels running in inversion mode;
	// whether a given glass needs it is a hardware property, so it is
	// validated (logged) at init rather than guessed at compile time.
	SwapBytes    bool
	InvertColors bool
	// WordParallel selects the two-pixels-per-word correction path.
	WordParallel bool

	BusClockHz uint32

	// TickPeriod is both the tick service period and the frame loop's
	// yield between iterations. The yield is a fairness mechanism, not
	// an optimization: without it, sustained rendering starves tasks
	// sharing a bus (touch polling most visibly).
	TickPeriod time.Duration

	// SubmitRetries bounds how often a busy transport is retried before
	// the region is dropped.
	SubmitRetries int
	// CompletionTimeout bounds every wait on the transport's completion
	// signal. On expiry the frame is dropped, never retried forever.
	CompletionTimeout time.Duration

	Affinity Affinity

	// TaskStackBytes documents the stack the render task needs: the
	// rasterizer recurses with depth bound by scene complexity, not by
	// anything the pipeline controls. On TinyGo builds this value must
	// be passed to the linker (-stack-size); on host builds goroutine
	// stacks grow on demand and the value is informational.
	TaskStackBytes int
}

func (c *Config) setDefaults() {
	if c.Width == 0 {
		c.Width = 240
	}
	if c.Height == 0 {
		c.Height = 240
	}
	if c.StripRows <= 0 || c.StripRows > c.Height {
		c.StripRows = c.Height
	}
	if c.BusClockHz == 0 {
		c.BusClockHz = 80_000_000
	}
	if c.TickPeriod == 0 {
		c.TickPeriod = 2 * time.Millisecond
	}
	if c.SubmitRetries == 0 {
		c.SubmitRetries = 3
	}
	if c.CompletionTimeout == 0 {
		c.CompletionTimeout = 250 * time.Millisecond
	}
	if c.TaskStackBytes == 0 {
		c.TaskStackBytes = 64 << 10
	}
}

// Preset names the measured pipeline configurations, in the order they
// were profiled. Each is a point on the strip-height/placement tradeoff:
// total frame latency is roughly renders_per_frame*render_cost +
// transmit_cost, with renders_per_frame = ceil(height/StripRows).
type Preset uint8

const (
	// PresetNaive: single full-frame buffer in internal SRAM, full
	// refresh, scalar byte swap, 20MHz bus. One render pass, no
	// render/transmit overlap. The baseline.
	PresetNaive Preset = iota + 1
	// PresetFastBus: the same shape at an 80MHz bus clock.
	PresetFastBus
	// PresetStrips: 20-row strips, double buffered in internal SRAM,
	// partial refresh. Gains overlap but pays 12 render passes per
	// full-frame region; measured net throughput can fall below the
	// non-overlapped baseline.
	PresetStrips
	// PresetExternal: full-frame double buffering in external PSRAM.
	// One render pass and overlap, but every transmitted byte pays the
	// external bus latency.
	PresetExternal
	// PresetHalfFrame: 120-row strips, double buffered in internal
	// SRAM, word-parallel correction, unpinned loop. Two render passes,
	// overlap, fastest per-byte path: the best measured net throughput.
	PresetHalfFrame
)

// Config returns the preset's pipeline configuration. All presets target
// the round display glass, which wants byte swap and inversion.
func (p Preset) Config() Config {
	c := Config{
		Width:        240,
		Height:       240,
		SwapBytes:    true,
		InvertColors: true,
		Affinity:     AffinityPinned,
	}

	switch p {
	case PresetNaive:
		c.BusClockHz = 20_000_000
		c.Refresh = RefreshFull
		c.TaskStackBytes = 32 << 10
	case PresetFastBus:
		c.Refresh = RefreshFull
	case PresetStrips:
		c.StripRows = 20
		c.DoubleBuffered = true
		c.Refresh = RefreshPartial
	case PresetExternal:
		c.Region = fb.RegionExternal
		c.DoubleBuffered = true
		c.Refresh = RefreshPartial
		c.WordParallel = true
	case PresetHalfFrame:
		c.StripRows = 120
		c.DoubleBuffered = true
		c.Refresh = RefreshPartial
		c.WordParallel = true
		c.Affinity = AffinityNone
	}

	c.setDefaults()
	return c
}

func (p Preset) String() string {
	switch p {
	case PresetNaive:
		return "naive"
	case PresetFastBus:
		return "fast-bus"
	case PresetStrips:
		return "strips"
	case PresetExternal:
		return "external"
	case PresetHalfFrame:
		return "half-frame"
	default:
		return "unknown"
	}
}
