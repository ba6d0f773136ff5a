package fb

import (
	"fmt"
	"image"
	"image/color"
)

// Pack565 packs 8-bit channels into an RGB565 pixel.
func Pack565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// Unpack565 expands an RGB565 pixel back to 8-bit channels.
func Unpack565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// View exposes one tile of a buffer as a drawing target addressed in screen
// coordinates. Pixels land packed at the tile's width, little-endian, which
// is the rasterizer's native encoding; wire-order correction happens later.
//
// View implements the displayer method set consumed by the tinyfont and
// tinydraw packages. Drawing outside the tile is clipped, never expanded.
type View struct {
	buf  *Buffer
	area image.Rectangle
}

// NewView binds buf to a screen-space tile. The tile must fit the buffer's
// capacity.
func NewView(buf *Buffer, area image.Rectangle) (*View, error) {
	need := area.Dx() * area.Dy() * BytesPerPixel
	if need > buf.SizeBytes() {
		return nil, fmt.Errorf("fb: tile %v (%d bytes) exceeds buffer capacity %d",
			area, need, buf.SizeBytes())
	}
	return &View{buf: buf, area: area}, nil
}

// Area returns the screen-space rectangle this view covers.
func (v *View) Area() image.Rectangle { return v.area }

// Buffer returns the backing buffer.
func (v *View) Buffer() *Buffer { return v.buf }

// Bytes returns the packed pixel data for the tile.
func (v *View) Bytes() []byte {
	return v.buf.Pix[:v.area.Dx()*v.area.Dy()*BytesPerPixel]
}

// Size reports the drawable extent in screen coordinates.
func (v *View) Size() (x, y int16) {
	return int16(v.area.Max.X), int16(v.area.Max.Y)
}

// SetPixel writes one pixel, given in screen coordinates.
func (v *View) SetPixel(x, y int16, c color.RGBA) {
	if !(image.Point{int(x), int(y)}.In(v.area)) {
		return
	}
	px := Pack565(c.R, c.G, c.B)
	off := (int(y)-v.area.Min.Y)*v.area.Dx()*BytesPerPixel + (int(x)-v.area.Min.X)*BytesPerPixel
	v.buf.Pix[off] = byte(px)
	v.buf.Pix[off+1] = byte(px >> 8)
}

// Display satisfies the displayer interface; the pipeline owns transmission.
func (v *View) Display() error { return nil }

// FillRGB floods the whole tile with a single color.
func (v *View) FillRGB(r, g, b uint8) {
	px := Pack565(r, g, b)
	lo, hi := byte(px), byte(px>>8)
	p := v.Bytes()
	for i := 0; i < len(p); i += 2 {
		p[i] = lo
		p[i+1] = hi
	}
}
