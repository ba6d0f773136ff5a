package scene

import (
	"image"
	"testing"
	"time"

	"halo/gfx/fb"
)

func TestNewStageStartsFullyDirty(t *testing.T) {
	s := New(240, 240, nil)

	d, ok := s.Dirty()
	if !ok {
		t.Fatal("new stage reported no dirty region")
	}
	if got, want := d, image.Rect(0, 0, 240, 240); got != want {
		t.Fatalf("dirty = %v, want %v", got, want)
	}
	if _, ok := s.Dirty(); ok {
		t.Fatal("dirty region not reset after read")
	}
}

func TestAdvanceDirtiesSpriteRegionOnly(t *testing.T) {
	s := New(240, 240, nil)
	s.Dirty() // consume the initial full invalidation

	s.Advance(16 * time.Millisecond)

	d, ok := s.Dirty()
	if !ok {
		t.Fatal("animation produced no dirty region")
	}
	if d.Dy() >= 240 {
		t.Fatalf("dirty %v spans the full frame, want the sprite region", d)
	}
	if !d.Overlaps(s.demos[s.active].Bounds()) {
		t.Fatalf("dirty %v misses the active sprite at %v", d, s.demos[s.active].Bounds())
	}
}

func TestAdvanceZeroIsNoop(t *testing.T) {
	s := New(240, 240, nil)
	s.Dirty()
	s.Advance(0)
	if _, ok := s.Dirty(); ok {
		t.Fatal("zero advance dirtied the stage")
	}
}

func TestTapCyclesSprites(t *testing.T) {
	s := New(240, 240, nil)

	if got, want := s.ActiveName(), "hummingbird"; got != want {
		t.Fatalf("initial scene = %q, want %q", got, want)
	}

	s.HandleTouch(120, 120, true)
	if got, want := s.ActiveName(), "raccoon"; got != want {
		t.Fatalf("after tap = %q, want %q", got, want)
	}

	// Holding is not another tap.
	s.HandleTouch(121, 120, true)
	if got, want := s.ActiveName(), "raccoon"; got != want {
		t.Fatalf("while held = %q, want %q", got, want)
	}

	s.HandleTouch(0, 0, false)
	s.HandleTouch(50, 60, true)
	if got, want := s.ActiveName(), "whale"; got != want {
		t.Fatalf("second tap = %q, want %q", got, want)
	}

	s.HandleTouch(0, 0, false)
	s.HandleTouch(50, 60, true)
	if got, want := s.ActiveName(), "hummingbird"; got != want {
		t.Fatalf("third tap = %q, want %q (wraparound)", got, want)
	}
}

func TestCycleShowsExactlyOneSprite(t *testing.T) {
	s := New(240, 240, nil)
	for cycle := 0; cycle < 4; cycle++ {
		visible := 0
		for _, d := range s.demos {
			if !d.Props().Hidden {
				visible++
			}
		}
		if got, want := visible, 1; got != want {
			t.Fatalf("cycle %d: visible sprites = %d, want %d", cycle, got, want)
		}
		s.Next()
	}
}

func TestRenderDrawsSpriteOverBackground(t *testing.T) {
	s := New(240, 240, nil)

	pool, err := fb.Alloc(fb.Config{Width: 240, Height: 240})
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	v, err := fb.NewView(pool.Buffers()[0], image.Rect(0, 0, 240, 240))
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}

	s.Render(v)

	bgLo := byte(fb.Pack565(colBackground.R, colBackground.G, colBackground.B))
	bgHi := byte(fb.Pack565(colBackground.R, colBackground.G, colBackground.B) >> 8)

	p := v.Bytes()
	// A corner pixel is background; the anchor pixel is sprite body.
	if p[0] != bgLo || p[1] != bgHi {
		t.Fatalf("corner pixel = %02x%02x, want background %02x%02x", p[1], p[0], bgHi, bgLo)
	}
	center := (120*240 + 120) * fb.BytesPerPixel
	if p[center] == bgLo && p[center+1] == bgHi {
		t.Fatal("center pixel still background, sprite not drawn")
	}
}

func TestRenderCullsToTile(t *testing.T) {
	s := New(240, 240, nil)

	pool, err := fb.Alloc(fb.Config{Width: 240, Height: 240, StripRows: 20})
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	// Top strip: the centered sprite does not reach it, so the tile is
	// pure background after a render.
	v, err := fb.NewView(pool.Buffers()[0], image.Rect(0, 0, 240, 20))
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}

	s.Render(v)

	bgLo := byte(fb.Pack565(colBackground.R, colBackground.G, colBackground.B))
	bgHi := byte(fb.Pack565(colBackground.R, colBackground.G, colBackground.B) >> 8)
	p := v.Bytes()
	for i := 0; i < len(p); i += 2 {
		if p[i] != bgLo || p[i+1] != bgHi {
			t.Fatalf("pixel %d = %02x%02x, want background", i/2, p[i+1], p[i])
		}
	}
}
