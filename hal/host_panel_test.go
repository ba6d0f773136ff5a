//go:build !tinygo

package hal

import (
	"errors"
	"testing"
	"time"
)

func TestHostPanelRejectsBadRects(t *testing.T) {
	p := newHostPanel(240, 240)

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		n              int
	}{
		{"negative origin", -1, 0, 10, 10, 1000},
		{"beyond width", 0, 0, 240, 10, 1000},
		{"beyond height", 0, 0, 10, 240, 1000},
		{"inverted rect", 10, 10, 5, 5, 1000},
		{"short pixel data", 0, 0, 9, 9, 10*10*2 - 1},
	}
	for _, tt := range tests {
		err := p.WriteRect(tt.x1, tt.y1, tt.x2, tt.y2, make([]byte, tt.n))
		if err == nil {
			t.Errorf("%s: WriteRect accepted", tt.name)
		}
		if errors.Is(err, ErrBusy) {
			t.Errorf("%s: got ErrBusy, want validation error", tt.name)
		}
	}
}

func TestHostPanelConfigureRejectsZeroClock(t *testing.T) {
	p := newHostPanel(240, 240)
	if err := p.Configure(0); err == nil {
		t.Fatal("Configure(0) accepted")
	}
	if err := p.Configure(80_000_000); err != nil {
		t.Fatalf("Configure: %v", err)
	}
}

func TestHostPanelCompletionDeliversPixels(t *testing.T) {
	p := newHostPanel(240, 240)
	if err := p.Configure(80_000_000); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	completed := make(chan struct{}, hostQueueDepth)
	p.SetCompletionHandler(func() { completed <- struct{}{} })

	// One red pixel as the glass wants it: big-endian and complemented.
	px := ^uint16(0xF800)
	if err := p.WriteRect(0, 0, 0, 0, []byte{byte(px >> 8), byte(px)}); err != nil {
		t.Fatalf("WriteRect: %v", err)
	}

	select {
	case <-completed:
	case <-time.After(time.Second):
		t.Fatal("completion handler not called")
	}

	dst := make([]byte, 240*240*4)
	p.snapshotRGB(dst)
	if got, want := [3]byte{dst[0], dst[1], dst[2]}, [3]byte{0xFF, 0, 0}; got != want {
		t.Fatalf("displayed pixel = %v, want %v", got, want)
	}
}

func TestHostPanelQueueOverflowIsBusy(t *testing.T) {
	p := newHostPanel(240, 240)
	// One bit per second: the first transfer parks the loop for good,
	// leaving the queue to fill up behind it.
	if err := p.Configure(1); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	pix := []byte{0x00, 0x00}
	if err := p.WriteRect(0, 0, 0, 0, pix); err != nil {
		t.Fatalf("first WriteRect: %v", err)
	}
	// Let the loop take the first transfer off the queue.
	time.Sleep(20 * time.Millisecond)

	for i := 0; i < hostQueueDepth; i++ {
		if err := p.WriteRect(0, 0, 0, 0, pix); err != nil {
			t.Fatalf("WriteRect %d: %v", i, err)
		}
	}
	if err := p.WriteRect(0, 0, 0, 0, pix); !errors.Is(err, ErrBusy) {
		t.Fatalf("WriteRect on full queue = %v, want ErrBusy", err)
	}
}
