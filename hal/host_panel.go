//go:build !tinygo

package hal

import (
	"fmt"
	"sync"
	"time"
)

// hostPanel simulates the round LCD and its SPI transfer queue. Writes go
// through a bounded queue serviced by a transfer goroutine, which plays the
// role of the DMA engine: it delays according to the configured bus clock,
// copies the wire bytes into the panel memory, and then fires the
// completion handler from its own goroutine, exactly like a completion
// interrupt would.
//
// The panel is modeled in inversion mode (the round display's glass wants
// complemented colors), so the window must undo both the byte order and the
// inversion when presenting. A pipeline configured without the matching
// corrections shows up as garbage colors, same as on hardware.
const hostQueueDepth = 10

type hostXfer struct {
	x1, y1, x2, y2 int
	pix            []byte
}

type hostPanel struct {
	w, h     int
	inverted bool

	mu   sync.Mutex
	vram []byte // wire-format pixels, row-major

	clockHz uint32
	queue   chan hostXfer
	done    func()
	once    sync.Once
}

func newHostPanel(w, h int) *hostPanel {
	return &hostPanel{
		w:        w,
		h:        h,
		inverted: true,
		vram:     make([]byte, w*h*2),
		clockHz:  80_000_000,
		queue:    make(chan hostXfer, hostQueueDepth),
	}
}

func (p *hostPanel) Size() (int, int) { return p.w, p.h }

func (p *hostPanel) Configure(busClockHz uint32) error {
	if busClockHz == 0 {
		return fmt.Errorf("host panel: zero bus clock")
	}
	p.clockHz = busClockHz
	return nil
}

func (p *hostPanel) SetCompletionHandler(fn func()) { p.done = fn }

func (p *hostPanel) WriteRect(x1, y1, x2, y2 int, pix []byte) error {
	if x1 < 0 || y1 < 0 || x2 >= p.w || y2 >= p.h || x2 < x1 || y2 < y1 {
		return fmt.Errorf("host panel: rect (%d,%d)-(%d,%d) out of range", x1, y1, x2, y2)
	}
	need := (x2 - x1 + 1) * (y2 - y1 + 1) * 2
	if len(pix) < need {
		return fmt.Errorf("host panel: %d pixel bytes for rect needing %d", len(pix), need)
	}

	p.once.Do(func() { go p.transferLoop() })

	select {
	case p.queue <- hostXfer{x1, y1, x2, y2, pix[:need]}:
		return nil
	default:
		return ErrBusy
	}
}

func (p *hostPanel) transferLoop() {
	for x := range p.queue {
		p.delay(len(x.pix))

		p.mu.Lock()
		rw := (x.x2 - x.x1 + 1) * 2
		for y := x.y1; y <= x.y2; y++ {
			dst := p.vram[y*p.w*2+x.x1*2:]
			src := x.pix[(y-x.y1)*rw:]
			copy(dst[:rw], src[:rw])
		}
		p.mu.Unlock()

		if p.done != nil {
			p.done()
		}
	}
}

// delay approximates the bus occupancy of n bytes at the configured clock.
func (p *hostPanel) delay(n int) {
	d := time.Duration(n) * 8 * time.Second / time.Duration(p.clockHz)
	if d > 0 {
		time.Sleep(d)
	}
}

// snapshotRGB sets dst (RGBA, 4 bytes per pixel) to what the glass shows:
// wire bytes are big-endian and, in inversion mode, complemented.
func (p *hostPanel) snapshotRGB(dst []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := 0; i+1 < len(p.vram) && i/2*4+3 < len(dst); i += 2 {
		px := uint16(p.vram[i])<<8 | uint16(p.vram[i+1])
		if p.inverted {
			px = ^px
		}
		r, g, b := unpack565(px)
		j := i / 2 * 4
		dst[j+0] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
}
