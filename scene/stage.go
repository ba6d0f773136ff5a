package scene

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"halo/gfx/fb"
	"halo/hal"
)

var colBackground = color.RGBA{R: 0x08, G: 0x10, B: 0x18, A: 0xff}

// Stage is the retained scene graph: three demo sprites cycled by tap,
// one visible at a time, hovering on an eased loop with a caption below.
type Stage struct {
	w, h int
	log  hal.Logger

	demos []Object
	names []string
	title *Label
	extra []Object

	active int
	baseY  int16
	hover  Animation
	flap   Animation

	dirty      image.Rectangle
	hasDirty   bool
	wasPressed bool
}

// New builds the demo stage for a w x h panel.
func New(w, h int, log hal.Logger) *Stage {
	cx, cy := int16(w/2), int16(h/2)

	s := &Stage{
		w:     w,
		h:     h,
		log:   log,
		baseY: cy,
		demos: []Object{
			NewHummingbird(cx, cy),
			NewRaccoon(cx, cy),
			NewWhale(cx, cy),
		},
		names: []string{"hummingbird", "raccoon", "whale"},
		hover: Animation{From: -10, To: 10, Duration: 1600 * time.Millisecond, Ease: EaseInOut},
		flap:  Animation{From: -35, To: 25, Duration: 260 * time.Millisecond, Ease: EaseInOut},
	}
	for i, d := range s.demos {
		d.Props().Hidden = i != s.active
	}

	s.title = NewLabel(s.names[s.active], 0, int16(h)-24, colWhite)
	s.centerTitle()

	s.Invalidate(image.Rect(0, 0, w, h))
	return s
}

// Add places an extra object on top of the demo layer.
func (s *Stage) Add(o Object) {
	s.extra = append(s.extra, o)
	s.Invalidate(o.Bounds())
}

// Invalidate accumulates a region to redraw, clipped to the stage.
func (s *Stage) Invalidate(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, s.w, s.h))
	if r.Empty() {
		return
	}
	if s.hasDirty {
		s.dirty = s.dirty.Union(r)
	} else {
		s.dirty = r
		s.hasDirty = true
	}
}

// Dirty returns the accumulated redraw region and resets it.
func (s *Stage) Dirty() (image.Rectangle, bool) {
	d, ok := s.dirty, s.hasDirty
	s.dirty, s.hasDirty = image.Rectangle{}, false
	return d, ok
}

// Render draws every object overlapping the view's tile. The view clips
// per pixel; culling here just skips whole objects.
func (s *Stage) Render(v *fb.View) {
	v.FillRGB(colBackground.R, colBackground.G, colBackground.B)
	area := v.Area()
	for _, o := range s.demos {
		if !o.Props().Hidden && o.Bounds().Overlaps(area) {
			o.Draw(v)
		}
	}
	if s.title.Bounds().Overlaps(area) {
		s.title.Draw(v)
	}
	for _, o := range s.extra {
		if !o.Props().Hidden && o.Bounds().Overlaps(area) {
			o.Draw(v)
		}
	}
}

// Advance drives the hover and articulation animations.
func (s *Stage) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	o := s.demos[s.active]
	old := o.Bounds()

	o.Props().Y = s.baseY + s.hover.Advance(dt)
	o.Props().Rotation = float32(s.flap.Advance(dt)) * math.Pi / 180

	s.Invalidate(old.Union(o.Bounds()))
}

// HandleTouch consumes one touch sample; a press edge cycles the scene.
func (s *Stage) HandleTouch(x, y int16, pressed bool) {
	if pressed && !s.wasPressed {
		s.Next()
	}
	s.wasPressed = pressed
}

// Next switches to the next demo sprite.
func (s *Stage) Next() {
	old := s.demos[s.active]
	old.Props().Hidden = true
	s.Invalidate(old.Bounds())

	s.active = (s.active + 1) % len(s.demos)
	cur := s.demos[s.active]
	cur.Props().Hidden = false
	cur.Props().Y = s.baseY
	s.Invalidate(cur.Bounds())

	s.Invalidate(s.title.Bounds())
	s.title.SetText(s.names[s.active])
	s.centerTitle()
	s.Invalidate(s.title.Bounds())

	if s.log != nil {
		s.log.WriteLineString(fmt.Sprintf("scene: %s", s.names[s.active]))
	}
}

// ActiveName returns the visible sprite's caption.
func (s *Stage) ActiveName() string { return s.names[s.active] }

func (s *Stage) centerTitle() {
	b := s.title.Bounds()
	s.title.Props().X += int16((s.w - b.Dx()) / 2 - b.Min.X)
}
