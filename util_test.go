package floorplan

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestPoint(t *testing.T) {
	p := Point{3, 4}
	test.T(t, p.Add(Point{1, 2}), Point{4, 6})
	test.T(t, p.Sub(Point{1, 2}), Point{2, 2})
	test.T(t, p.Mul(2.0), Point{6, 8})
	test.T(t, p.Equals(Point{3, 4}), true)
	test.T(t, p.Equals(Point{3, 4.1}), false)
	test.T(t, p.Equals(p.Add(Point{Epsilon / 2.0, 0.0})), true)
	test.String(t, p.String(), "[3; 4]")
}

func TestRect(t *testing.T) {
	r := Rect{0, 0, 5, 5}
	test.T(t, r.Move(Point{3, 3}), Rect{3, 3, 5, 5})
	test.T(t, r.Add(Rect{5, 5, 5, 5}), Rect{0, 0, 10, 10})
	test.T(t, r.Add(Rect{5, 5, 0, 5}), r)
	test.T(t, Rect{5, 5, 0, 5}.Add(r), r)
	test.Float(t, r.Area(), 25.0)

	test.T(t, r.Intersects(Rect{4, 4, 5, 5}), true)
	test.T(t, r.Intersects(Rect{5, 5, 5, 5}), true) // touching edges intersect
	test.T(t, r.Intersects(Rect{6, 0, 5, 5}), false)

	test.T(t, r.Contains(Point{2, 2}), true)
	test.T(t, r.Contains(Point{5, 5}), true) // edges are inside
	test.T(t, r.Contains(Point{5.1, 5}), false)
	test.String(t, r.String(), "[0; 0]--[5; 5]")
}

func TestMatrix(t *testing.T) {
	p := Point{3, 4}
	test.T(t, Identity.Translate(2.0, 2.0).Dot(p), Point{5.0, 6.0})
	test.T(t, Identity.Scale(2.0, 2.0).Dot(p), Point{6.0, 8.0})
	test.T(t, Identity.Shear(1.0, 0.0).Dot(p), Point{7.0, 4.0})
	rotated := Identity.Rotate(90.0).Dot(p)
	test.Float(t, rotated.X, -4.0)
	test.Float(t, rotated.Y, 3.0)

	// right-to-left evaluation: scale first, then translate
	translated := Identity.Translate(10.0, 0.0).Scale(2.0, 2.0).Dot(p)
	test.T(t, translated, Point{16.0, 8.0})

	test.T(t, Identity.Translate(4.0, 5.0).IsTranslation(), true)
	test.T(t, Identity.Rotate(30.0).IsTranslation(), false)
	test.T(t, Identity.Scale(2.0, 1.0).IsTranslation(), false)
	test.T(t, Identity.Translate(4.0, 5.0).Pos(), Point{4.0, 5.0})
}

func TestBoundsOf(t *testing.T) {
	test.T(t, boundsOf(nil), Rect{})
	test.T(t, boundsOf([]Point{{2, 3}}), Rect{2, 3, 0, 0})
	test.T(t, boundsOf([]Point{{2, 3}, {-1, 8}, {5, 0}}), Rect{-1, 0, 6, 8})
}
