package scene

import (
	"image"
	"image/color"

	"tinygo.org/x/tinydraw"

	"halo/gfx/fb"
)

// The demo sprites. Each is a handful of tinydraw primitives around an
// (X, Y) anchor, with Rotation animating one articulated part (wing, tail)
// and Scale sizing the whole body.

var (
	colGreen  = color.RGBA{R: 0x2e, G: 0xb8, B: 0x72, A: 0xff}
	colTeal   = color.RGBA{R: 0x1a, G: 0x8a, B: 0x9a, A: 0xff}
	colOrange = color.RGBA{R: 0xe8, G: 0x8a, B: 0x2d, A: 0xff}
	colGray   = color.RGBA{R: 0x9a, G: 0x9a, B: 0xa2, A: 0xff}
	colDark   = color.RGBA{R: 0x2a, G: 0x2a, B: 0x30, A: 0xff}
	colBlue   = color.RGBA{R: 0x2d, G: 0x6c, B: 0xc8, A: 0xff}
	colWhite  = color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
	colBlack  = color.RGBA{R: 0x10, G: 0x10, B: 0x12, A: 0xff}
)

// Hummingbird: teal body, orange beak, one green wing flapping via
// Rotation around the shoulder.
type Hummingbird struct {
	props Props
}

func NewHummingbird(x, y int16) *Hummingbird {
	return &Hummingbird{props: Props{X: x, Y: y, Scale: 1, Opacity: 0xff}}
}

func (h *Hummingbird) Props() *Props { return &h.props }

func (h *Hummingbird) Bounds() image.Rectangle {
	r := int(h.props.scaled(44))
	return image.Rect(int(h.props.X)-r, int(h.props.Y)-r, int(h.props.X)+r, int(h.props.Y)+r)
}

func (h *Hummingbird) Draw(v *fb.View) {
	if h.props.Hidden {
		return
	}
	p := &h.props
	x, y := p.X, p.Y
	op := p.Opacity

	// Body and head.
	tinydraw.FilledCircle(v, x, y, p.scaled(14), shade(colTeal, op))
	tinydraw.FilledCircle(v, x+p.scaled(12), y-p.scaled(10), p.scaled(8), shade(colTeal, op))
	// Beak.
	bx := x + p.scaled(19)
	by := y - p.scaled(11)
	tinydraw.FilledTriangle(v,
		bx, by-p.scaled(2),
		bx, by+p.scaled(2),
		bx+p.scaled(16), by,
		shade(colOrange, op))
	// Eye.
	tinydraw.FilledCircle(v, x+p.scaled(14), y-p.scaled(12), p.scaled(2), shade(colBlack, op))
	// Wing, flapping around the shoulder.
	sx, sy := x-p.scaled(2), y-p.scaled(4)
	t1x, t1y := rotate(sx-p.scaled(8), sy-p.scaled(26), sx, sy, p.Rotation)
	t2x, t2y := rotate(sx-p.scaled(20), sy-p.scaled(18), sx, sy, p.Rotation)
	tinydraw.FilledTriangle(v, sx, sy, t1x, t1y, t2x, t2y, shade(colGreen, op))
	// Tail.
	tinydraw.FilledTriangle(v,
		x-p.scaled(12), y,
		x-p.scaled(26), y+p.scaled(8),
		x-p.scaled(24), y-p.scaled(4),
		shade(colTeal, op))
}

// Raccoon: gray head, triangular ears, the dark eye mask.
type Raccoon struct {
	props Props
}

func NewRaccoon(x, y int16) *Raccoon {
	return &Raccoon{props: Props{X: x, Y: y, Scale: 1, Opacity: 0xff}}
}

func (r *Raccoon) Props() *Props { return &r.props }

func (r *Raccoon) Bounds() image.Rectangle {
	e := int(r.props.scaled(36))
	return image.Rect(int(r.props.X)-e, int(r.props.Y)-e, int(r.props.X)+e, int(r.props.Y)+e)
}

func (r *Raccoon) Draw(v *fb.View) {
	if r.props.Hidden {
		return
	}
	p := &r.props
	x, y := p.X, p.Y
	op := p.Opacity

	// Ears first so the head overlaps their base.
	for _, side := range []int16{-1, 1} {
		ex := x + side*p.scaled(16)
		tinydraw.FilledTriangle(v,
			ex-p.scaled(8), y-p.scaled(14),
			ex+p.scaled(8), y-p.scaled(14),
			ex, y-p.scaled(30),
			shade(colGray, op))
	}
	// Head.
	tinydraw.FilledCircle(v, x, y, p.scaled(22), shade(colGray, op))
	// Eye mask. Rotation tilts it, which is all the articulation a
	// raccoon needs.
	m1x, m1y := rotate(x-p.scaled(20), y-p.scaled(8), x, y, p.Rotation)
	m2x, m2y := rotate(x+p.scaled(20), y-p.scaled(8), x, y, p.Rotation)
	m3x, m3y := rotate(x, y+p.scaled(4), x, y, p.Rotation)
	tinydraw.FilledTriangle(v, m1x, m1y, m2x, m2y, m3x, m3y, shade(colDark, op))
	// Eyes and snout.
	tinydraw.FilledCircle(v, x-p.scaled(8), y-p.scaled(4), p.scaled(3), shade(colWhite, op))
	tinydraw.FilledCircle(v, x+p.scaled(8), y-p.scaled(4), p.scaled(3), shade(colWhite, op))
	tinydraw.FilledCircle(v, x, y+p.scaled(10), p.scaled(4), shade(colBlack, op))
}

// Whale: blue body, white belly, tail fluke waving via Rotation.
type Whale struct {
	props Props
}

func NewWhale(x, y int16) *Whale {
	return &Whale{props: Props{X: x, Y: y, Scale: 1, Opacity: 0xff}}
}

func (w *Whale) Props() *Props { return &w.props }

func (w *Whale) Bounds() image.Rectangle {
	e := int(w.props.scaled(52))
	return image.Rect(int(w.props.X)-e, int(w.props.Y)-e, int(w.props.X)+e, int(w.props.Y)+e)
}

func (w *Whale) Draw(v *fb.View) {
	if w.props.Hidden {
		return
	}
	p := &w.props
	x, y := p.X, p.Y
	op := p.Opacity

	// Body: a fat circle with a smaller one for the brow.
	tinydraw.FilledCircle(v, x, y, p.scaled(24), shade(colBlue, op))
	tinydraw.FilledCircle(v, x+p.scaled(14), y-p.scaled(6), p.scaled(16), shade(colBlue, op))
	// Belly.
	tinydraw.FilledCircle(v, x, y+p.scaled(12), p.scaled(18), shade(colWhite, op))
	// Tail fluke around its joint.
	jx, jy := x-p.scaled(24), y
	f1x, f1y := rotate(jx-p.scaled(18), jy-p.scaled(14), jx, jy, p.Rotation)
	f2x, f2y := rotate(jx-p.scaled(18), jy+p.scaled(10), jx, jy, p.Rotation)
	tinydraw.FilledTriangle(v, jx, jy, f1x, f1y, f2x, f2y, shade(colBlue, op))
	// Eye and spout.
	tinydraw.FilledCircle(v, x+p.scaled(20), y-p.scaled(8), p.scaled(2), shade(colBlack, op))
	tinydraw.Line(v, x+p.scaled(12), y-p.scaled(20), x+p.scaled(8), y-p.scaled(30), shade(colTeal, op))
	tinydraw.Line(v, x+p.scaled(14), y-p.scaled(20), x+p.scaled(18), y-p.scaled(30), shade(colTeal, op))
}
