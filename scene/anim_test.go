package scene

import (
	"testing"
	"time"
)

func TestCubicBezierEndpoints(t *testing.T) {
	if got := CubicBezier(0, 0.42, 0, 0.58, 1); got != 0 {
		t.Fatalf("CubicBezier(0) = %v, want 0", got)
	}
	if got := CubicBezier(1, 0.42, 0, 0.58, 1); got != 1 {
		t.Fatalf("CubicBezier(1) = %v, want 1", got)
	}
}

func TestCubicBezierMonotonic(t *testing.T) {
	prev := float32(0)
	for i := 0; i <= 100; i++ {
		v := EaseInOut(float32(i) / 100)
		if v < prev {
			t.Fatalf("EaseInOut not monotonic at %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}

func TestCubicBezierSymmetricMidpoint(t *testing.T) {
	got := EaseInOut(0.5)
	if got < 0.49 || got > 0.51 {
		t.Fatalf("EaseInOut(0.5) = %v, want ~0.5", got)
	}
}

func TestAnimationPingPong(t *testing.T) {
	a := Animation{From: 0, To: 10, Duration: 100 * time.Millisecond}

	steps := []struct {
		dt   time.Duration
		want int16
	}{
		{50 * time.Millisecond, 5},
		{50 * time.Millisecond, 10}, // hit the end, reversed
		{50 * time.Millisecond, 5},
		{50 * time.Millisecond, 0}, // back at the start
	}
	for i, s := range steps {
		if got := a.Advance(s.dt); got != s.want {
			t.Fatalf("step %d: Advance = %d, want %d", i, got, s.want)
		}
	}
}

func TestAnimationZeroDuration(t *testing.T) {
	a := Animation{From: 3, To: 7}
	if got, want := a.Advance(time.Second), int16(7); got != want {
		t.Fatalf("Advance = %d, want %d", got, want)
	}
}
