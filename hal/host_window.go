//go:build !tinygo && cgo

package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"halo/internal/buildinfo"
)

// RunWindow starts a desktop window that presents the simulated panel and
// feeds mouse state to the touch boundary. It blocks until the window
// closes.
func RunWindow(newApp func(HAL) func() error) error {
	h := New().(*hostHAL)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("halo (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.panel.w*2, h.panel.h*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	img   *image.RGBA
	fbImg *ebiten.Image
	mask  []bool
	step  func() error
}

func (g *hostGame) Update() error {
	g.pollMouse()
	g.h.t.step()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) pollMouse() {
	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	w, h := g.h.panel.w, g.h.panel.h
	if x < 0 || y < 0 || x >= w || y >= h {
		pressed = false
	}
	g.h.touch.set(TouchState{X: int16(x), Y: int16(y), Pressed: pressed})
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	p := g.h.panel
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, p.w, p.h))
		g.fbImg = ebiten.NewImage(p.w, p.h)
		g.mask = roundMask(p.w, p.h)
	}

	p.snapshotRGB(g.img.Pix)

	// The glass is round; blank the corners the panel cannot show.
	for i, in := range g.mask {
		if !in {
			j := i * 4
			g.img.Pix[j+0] = 0
			g.img.Pix[j+1] = 0
			g.img.Pix[j+2] = 0
		}
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.panel.w, g.h.panel.h
}

func roundMask(w, h int) []bool {
	mask := make([]bool, w*h)
	cx, cy := float64(w-1)/2, float64(h-1)/2
	r2 := cx * cx
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			mask[y*w+x] = dx*dx+dy*dy <= r2
		}
	}
	return mask
}
