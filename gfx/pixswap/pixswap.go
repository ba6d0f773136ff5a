// Package pixswap corrects freshly rendered RGB565 buffers for the panel's
// wire encoding: the rasterizer emits little-endian pixels, the panel wants
// big-endian, and some panel variants additionally want the color value
// complemented. Both transforms run in place on the hot path, so the word
// loop packs two pixels per 32-bit word and swaps both at once.
package pixswap

import "encoding/binary"

// Opts selects which corrections apply. Whether InvertColors is needed is a
// property of the panel model, validated at init; applying it to a panel
// that does not want it produces a photographic negative.
type Opts struct {
	SwapBytes    bool
	InvertColors bool

	// WordParallel uses the two-pixels-per-word path. The scalar path is
	// kept selectable for the naive baseline and as the tail handler.
	WordParallel bool
}

// Correct applies the configured transforms to p in place. It is total over
// any byte length: a trailing pixel that does not fill a word goes through
// the scalar path, and a stray trailing byte is still inverted.
func Correct(p []byte, o Opts) {
	if !o.SwapBytes && !o.InvertColors {
		return
	}
	if !o.SwapBytes {
		invert(p)
		return
	}
	if o.WordParallel {
		swapWords(p, o.InvertColors)
		return
	}
	swapScalar(p, o.InvertColors)
}

// swapScalar swaps one 16-bit pixel at a time.
func swapScalar(p []byte, inv bool) {
	n := len(p) &^ 1
	if inv {
		for i := 0; i < n; i += 2 {
			p[i], p[i+1] = ^p[i+1], ^p[i]
		}
	} else {
		for i := 0; i < n; i += 2 {
			p[i], p[i+1] = p[i+1], p[i]
		}
	}
	if n < len(p) && inv {
		p[n] = ^p[n]
	}
}

// swapWords swaps the bytes of two packed pixels per 32-bit word. The masks
// respect the 16-bit pixel boundaries, so the pixels never bleed into each
// other: high bytes move right, low bytes move left, each within its own
// half of the word. The loop is unrolled four words deep to amortize the
// loop overhead over 8 pixels.
func swapWords(p []byte, inv bool) {
	i := 0
	n := len(p)

	for ; i+16 <= n; i += 16 {
		w0 := binary.LittleEndian.Uint32(p[i:])
		w1 := binary.LittleEndian.Uint32(p[i+4:])
		w2 := binary.LittleEndian.Uint32(p[i+8:])
		w3 := binary.LittleEndian.Uint32(p[i+12:])
		w0 = w0&0xFF00FF00>>8 | w0&0x00FF00FF<<8
		w1 = w1&0xFF00FF00>>8 | w1&0x00FF00FF<<8
		w2 = w2&0xFF00FF00>>8 | w2&0x00FF00FF<<8
		w3 = w3&0xFF00FF00>>8 | w3&0x00FF00FF<<8
		if inv {
			w0, w1, w2, w3 = ^w0, ^w1, ^w2, ^w3
		}
		binary.LittleEndian.PutUint32(p[i:], w0)
		binary.LittleEndian.PutUint32(p[i+4:], w1)
		binary.LittleEndian.PutUint32(p[i+8:], w2)
		binary.LittleEndian.PutUint32(p[i+12:], w3)
	}

	for ; i+4 <= n; i += 4 {
		w := binary.LittleEndian.Uint32(p[i:])
		w = w&0xFF00FF00>>8 | w&0x00FF00FF<<8
		if inv {
			w = ^w
		}
		binary.LittleEndian.PutUint32(p[i:], w)
	}

	// Trailing pixel (and any stray byte) takes the scalar path.
	swapScalar(p[i:], inv)
}

// invert complements every byte; used when only polarity correction is
// configured.
func invert(p []byte) {
	i := 0
	for ; i+4 <= len(p); i += 4 {
		binary.LittleEndian.PutUint32(p[i:], ^binary.LittleEndian.Uint32(p[i:]))
	}
	for ; i < len(p); i++ {
		p[i] = ^p[i]
	}
}
