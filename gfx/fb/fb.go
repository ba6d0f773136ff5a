// Package fb provides the frame buffer pool for the render-transmit
// pipeline: fixed-format RGB565 pixel buffers, placed once at startup in a
// chosen memory region and reused for the lifetime of the device.
package fb

import (
	"errors"
	"fmt"
	"image"
)

// BytesPerPixel is fixed: RGB565, two bytes per pixel.
const BytesPerPixel = 2

// Region selects where a frame buffer lives.
type Region uint8

const (
	// RegionInternal is on-chip SRAM: lowest access latency, tight capacity.
	RegionInternal Region = iota
	// RegionExternal is off-chip PSRAM: large, but every access pays the
	// external bus latency.
	RegionExternal
)

func (r Region) String() string {
	switch r {
	case RegionInternal:
		return "internal"
	case RegionExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Capacity budgets per region. The internal figure is the usable share of
// on-chip SRAM after the runtime takes its cut; the external figure is the
// full PSRAM part. Exceeding a budget at Alloc time is a fatal
// misconfiguration, not a transient error.
const (
	internalBudget = 200 << 10
	externalBudget = 8 << 20
)

// ErrRegionFull reports that the requested buffers do not fit the region.
var ErrRegionFull = errors.New("fb: region capacity exceeded")

// Buffer is one pixel buffer, sized to the full frame or a horizontal strip
// of it. Region is chosen at allocation and never changes.
type Buffer struct {
	Pix    []byte
	Width  int // pixels per full-width row
	Rows   int // buffer extent in rows
	Region Region
}

// SizeBytes returns the buffer capacity in bytes.
func (b *Buffer) SizeBytes() int { return b.Width * b.Rows * BytesPerPixel }

// Bounds returns the buffer extent as a rectangle anchored at the origin.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.Width, b.Rows) }

// Config describes the buffer strategy: count, extent and placement.
type Config struct {
	Width  int
	Height int

	// StripRows is the buffer extent in rows. Zero means full frame.
	// Shrinking it multiplies the number of render passes per dirty
	// region by ceil(height/StripRows); growing it costs memory. This is
	// the highest-leverage knob in the pipeline.
	StripRows int

	Region         Region
	DoubleBuffered bool
}

// Pool owns the frame buffers. Allocated once at startup, freed never.
type Pool struct {
	cfg  Config
	bufs []*Buffer
}

// Alloc allocates one or two buffers per cfg. It fails if the region budget
// cannot hold them; callers must treat that as fatal.
func Alloc(cfg Config) (*Pool, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("fb: invalid frame geometry %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.StripRows <= 0 || cfg.StripRows > cfg.Height {
		cfg.StripRows = cfg.Height
	}

	budget := internalBudget
	if cfg.Region == RegionExternal {
		budget = externalBudget
	}

	count := 1
	if cfg.DoubleBuffered {
		count = 2
	}
	size := cfg.Width * cfg.StripRows * BytesPerPixel
	if size*count > budget {
		return nil, fmt.Errorf("fb: %d x %d bytes in %s region: %w",
			count, size, cfg.Region, ErrRegionFull)
	}

	p := &Pool{cfg: cfg}
	for i := 0; i < count; i++ {
		p.bufs = append(p.bufs, &Buffer{
			Pix:    make([]byte, size),
			Width:  cfg.Width,
			Rows:   cfg.StripRows,
			Region: cfg.Region,
		})
	}
	return p, nil
}

// Buffers returns the allocated buffers. Ownership of each buffer is
// arbitrated by the pipeline, not the pool.
func (p *Pool) Buffers() []*Buffer { return p.bufs }

// StripRows returns the per-buffer extent in rows.
func (p *Pool) StripRows() int { return p.cfg.StripRows }

// Frame returns the full frame rectangle.
func (p *Pool) Frame() image.Rectangle {
	return image.Rect(0, 0, p.cfg.Width, p.cfg.Height)
}

// Tiles splits a dirty region into buffer-sized tiles, clipped to the
// frame. Each tile spans the region's full width and at most StripRows
// rows, so a region of height h costs ceil(h/StripRows) render passes.
func (p *Pool) Tiles(dirty image.Rectangle) []image.Rectangle {
	dirty = dirty.Intersect(p.Frame())
	if dirty.Empty() {
		return nil
	}

	var tiles []image.Rectangle
	for y := dirty.Min.Y; y < dirty.Max.Y; y += p.cfg.StripRows {
		y2 := y + p.cfg.StripRows
		if y2 > dirty.Max.Y {
			y2 = dirty.Max.Y
		}
		tiles = append(tiles, image.Rect(dirty.Min.X, y, dirty.Max.X, y2))
	}
	return tiles
}
