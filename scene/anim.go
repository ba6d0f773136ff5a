package scene

import "time"

// CubicBezier evaluates the easing curve with control points (x1,y1) and
// (x2,y2) at progress t, returning the eased progress. The x polynomial is
// inverted by bisection; 16 steps resolve finer than one part in 32768,
// far below a pixel of travel or a step of opacity.
func CubicBezier(t, x1, y1, x2, y2 float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	lo, hi := float32(0), float32(1)
	u := t
	for i := 0; i < 16; i++ {
		u = (lo + hi) / 2
		if bez(u, x1, x2) < t {
			lo = u
		} else {
			hi = u
		}
	}
	return bez(u, y1, y2)
}

func bez(u, c1, c2 float32) float32 {
	inv := 1 - u
	return 3*inv*inv*u*c1 + 3*inv*u*u*c2 + u*u*u
}

// EaseInOut is the hover animation's curve: slow at both extremes.
func EaseInOut(t float32) float32 {
	return CubicBezier(t, 0.42, 0, 0.58, 1)
}

// Animation interpolates between From and To over Duration, reversing
// direction each time an end is reached. Advance it with the scene clock,
// not the frame counter, so a slow frame skips ahead instead of slowing
// the motion down.
type Animation struct {
	From, To int16
	Duration time.Duration
	Ease     func(float32) float32

	elapsed time.Duration
	back    bool
}

// Advance moves the animation forward by dt and returns the current value.
func (a *Animation) Advance(dt time.Duration) int16 {
	if a.Duration <= 0 {
		return a.To
	}
	a.elapsed += dt
	for a.elapsed >= a.Duration {
		a.elapsed -= a.Duration
		a.back = !a.back
	}
	t := float32(a.elapsed) / float32(a.Duration)
	if a.back {
		t = 1 - t
	}
	if a.Ease != nil {
		t = a.Ease(t)
	}
	return a.From + int16(float32(a.To-a.From)*t)
}
