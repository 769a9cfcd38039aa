package floorplan

import (
	"testing"

	"github.com/tdewolff/test"
)

func rectShape(id string, bounds Rect) *Shape {
	return &Shape{
		ID:   id,
		Kind: KindRect,
		Points: []Point{
			{bounds.X, bounds.Y},
			{bounds.X + bounds.W, bounds.Y},
			{bounds.X + bounds.W, bounds.Y + bounds.H},
			{bounds.X, bounds.Y + bounds.H},
		},
		Bounds: bounds,
	}
}

func TestSignatureDeterminism(t *testing.T) {
	s := rectShape("A", Rect{0, 0, 30, 20})
	test.String(t, s.Signature(), s.Signature())

	// identical geometry with different identity yields the same signature
	q := rectShape("B", Rect{50, 80, 30, 20})
	q.Label = "Conference B"
	test.String(t, q.Signature(), s.Signature())
}

func TestSignatureFormat(t *testing.T) {
	s := rectShape("A", Rect{0, 0, 30, 20})
	test.String(t, s.Signature(), "rect-ar1.5-v0-c7") // 4/600*1000 rounds to 7

	degenerate := &Shape{ID: "D", Kind: KindPath, Points: []Point{{1, 1}}, Bounds: Rect{1, 1, 0, 0}}
	test.String(t, degenerate.Signature(), "path-degenerate")
}

func TestSignatureVertexBucket(t *testing.T) {
	many := &Shape{Kind: KindPolygon, Bounds: Rect{0, 0, 10, 10}}
	for i := 0; i < 1234; i++ {
		many.Points = append(many.Points, Point{float64(i % 10), float64(i / 10)})
	}
	// bucketed in bands of ten and capped at 100
	test.String(t, many.Signature(), "polygon-ar1-v100-c12340")

	small := &Shape{Kind: KindPolygon, Bounds: Rect{0, 0, 10, 10},
		Points: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {5, 5}, {2, 2}, {3, 3}, {4, 4}, {6, 6}}}
	test.String(t, small.Signature(), "polygon-ar1-v0-c90")
}

func TestGroupBySignatureKeepsDegenerate(t *testing.T) {
	// sub-unit noise is excluded from rendering but never from group
	// bookkeeping
	noise := &Shape{ID: "N", Kind: KindPath, Points: []Point{{1, 1}}, Bounds: Rect{1, 1, 0, 0}, Degenerate: true}
	shapes := []*Shape{
		rectShape("A", Rect{0, 0, 10, 10}),
		noise,
	}
	groups := GroupBySignature(shapes)
	test.T(t, len(groups), 2)
	test.String(t, groups[1].Signature, "path-degenerate")
	test.T(t, groups[1].IDs, []string{"N"})
}

func TestGroupBySignature(t *testing.T) {
	shapes := []*Shape{
		rectShape("A", Rect{0, 0, 10, 10}),
		rectShape("B", Rect{20, 0, 30, 20}),
		rectShape("C", Rect{40, 40, 10, 10}),
		rectShape("D", Rect{0, 50, 10, 10}),
	}
	groups := GroupBySignature(shapes)
	test.T(t, len(groups), 2)
	// first-discovery order
	test.String(t, groups[0].Signature, shapes[0].Signature())
	test.T(t, groups[0].IDs, []string{"A", "C", "D"})
	test.T(t, groups[1].IDs, []string{"B"})
}
