package pipeline

import (
	"testing"
	"time"
)

type fakeTicks struct {
	ch     chan uint64
	period uint64
}

func (f *fakeTicks) Ticks() <-chan uint64     { return f.ch }
func (f *fakeTicks) TickPeriodMillis() uint64 { return f.period }

func TestClockAdvancesWithTicks(t *testing.T) {
	src := &fakeTicks{ch: make(chan uint64), period: 2}
	c := NewClock(src)
	defer c.Stop()

	if got, want := c.Now(), time.Duration(0); got != want {
		t.Fatalf("Now before ticks = %v, want %v", got, want)
	}

	for i := uint64(1); i <= 5; i++ {
		src.ch <- i
	}

	deadline := time.Now().Add(time.Second)
	want := 10 * time.Millisecond
	for c.Now() != want {
		if time.Now().After(deadline) {
			t.Fatalf("Now = %v, want %v", c.Now(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestClockIndependentOfFrameRate(t *testing.T) {
	// Tick delivery keeps time moving even when nothing renders; the
	// clock never consults the render loop.
	src := &fakeTicks{ch: make(chan uint64, 16), period: 1}
	c := NewClock(src)
	defer c.Stop()

	for i := uint64(1); i <= 7; i++ {
		src.ch <- i
	}

	deadline := time.Now().Add(time.Second)
	want := 7 * time.Millisecond
	for c.Now() != want {
		if time.Now().After(deadline) {
			t.Fatalf("Now = %v, want %v", c.Now(), want)
		}
		time.Sleep(time.Millisecond)
	}
}
