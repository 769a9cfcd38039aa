package floorplan

import (
	"math/rand"
	"testing"

	"github.com/tdewolff/test"
)

func TestToRenderRect(t *testing.T) {
	viewBox := Rect{0, 0, 100, 100}
	canonical := Size{200, 200}
	current := Size{200, 200}

	a := ToRenderRect(Rect{0, 0, 50, 50}, viewBox, canonical, current)
	test.T(t, a, RenderRect{0, 0, 50, 50})

	b := ToRenderRect(Rect{50, 50, 50, 50}, viewBox, canonical, current)
	test.T(t, b, RenderRect{50, 50, 50, 50})

	// resizing the current surface never changes percentages
	c := ToRenderRect(Rect{50, 50, 50, 50}, viewBox, canonical, Size{720, 405})
	test.T(t, c, RenderRect{50, 50, 50, 50})
}

func TestToRenderRectOffsetViewBox(t *testing.T) {
	viewBox := Rect{-50, -50, 100, 100}
	r := ToRenderRect(Rect{-50, -50, 25, 50}, viewBox, Size{400, 400}, Size{100, 100})
	test.T(t, r, RenderRect{0, 0, 25, 50})
}

// The canonical-size stage must be eliminable: composing all three stages
// equals scaling viewBox coordinates directly onto the current surface.
func TestToRenderRectCompositionInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(99))
	for i := 0; i < 100; i++ {
		viewBox := Rect{rnd.Float64()*100 - 50, rnd.Float64()*100 - 50, 1 + rnd.Float64()*1000, 1 + rnd.Float64()*1000}
		canonical := Size{1 + rnd.Float64()*2000, 1 + rnd.Float64()*2000}
		current := Size{1 + rnd.Float64()*2000, 1 + rnd.Float64()*2000}
		bounds := Rect{
			viewBox.X + rnd.Float64()*viewBox.W,
			viewBox.Y + rnd.Float64()*viewBox.H,
			rnd.Float64() * viewBox.W,
			rnd.Float64() * viewBox.H,
		}

		got := ToRenderRect(bounds, viewBox, canonical, current)
		direct := RenderRect{
			X: (bounds.X - viewBox.X) / viewBox.W * 100.0,
			Y: (bounds.Y - viewBox.Y) / viewBox.H * 100.0,
			W: bounds.W / viewBox.W * 100.0,
			H: bounds.H / viewBox.H * 100.0,
		}
		test.Float(t, got.X, direct.X)
		test.Float(t, got.Y, direct.Y)
		test.Float(t, got.W, direct.W)
		test.Float(t, got.H, direct.H)
	}
}
