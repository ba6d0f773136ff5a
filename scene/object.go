// Package scene is a small retained-mode widget layer: objects with
// position, scale, rotation and opacity, dirty-rectangle accumulation and
// tick-driven animation. It produces pixels only when the pipeline asks it
// to render a tile; everything else is bookkeeping.
//
// The stage is not internally synchronized. All mutation and rendering
// happen under the pipeline's API lock, which the frame loop holds across
// a render pass and hands to callers mutating objects from outside.
package scene

import (
	"image"
	"image/color"
	"math"

	"halo/gfx/fb"
)

// Props are the retained visual properties every object carries.
type Props struct {
	X, Y     int16
	Scale    float32 // 1.0 is natural size
	Rotation float32 // radians, object-defined pivot
	Opacity  uint8   // 0xff is opaque
	Hidden   bool
}

// Object is one retained element on the stage.
type Object interface {
	Props() *Props
	// Bounds returns the screen-space box the object can touch at its
	// current properties. Used for dirty-rect accumulation and tile
	// culling, so overestimating is safe and underestimating leaves
	// stale pixels behind.
	Bounds() image.Rectangle
	Draw(v *fb.View)
}

// scaled applies the object scale to a natural-size extent.
func (p *Props) scaled(n int16) int16 {
	if p.Scale == 0 || p.Scale == 1 {
		return n
	}
	return int16(float32(n) * p.Scale)
}

// shade attenuates a color toward the black background per the opacity.
// True alpha blending needs the destination pixel, which a one-pass
// renderer over a dark stage does not; attenuation reads the same.
func shade(c color.RGBA, opacity uint8) color.RGBA {
	if opacity == 0xff {
		return c
	}
	o := uint16(opacity)
	return color.RGBA{
		R: uint8(uint16(c.R) * o / 255),
		G: uint8(uint16(c.G) * o / 255),
		B: uint8(uint16(c.B) * o / 255),
		A: 0xff,
	}
}

// rotate maps a point around a pivot by rad radians.
func rotate(x, y, cx, cy int16, rad float32) (int16, int16) {
	if rad == 0 {
		return x, y
	}
	s, c := math.Sincos(float64(rad))
	dx, dy := float64(x-cx), float64(y-cy)
	return cx + int16(dx*c-dy*s), cy + int16(dx*s+dy*c)
}
