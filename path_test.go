package floorplan

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestParsePathDataBounds(t *testing.T) {
	var tests = []struct {
		d      string
		bounds Rect
	}{
		{"M0,0 L10,0 L10,10 L0,10 Z", Rect{0, 0, 10, 10}},
		{"M5,5 l10,0 l0,10 l-10,0 Z", Rect{5, 5, 10, 10}},
		{"M5,5 L15,5 L15,15 L5,15 Z", Rect{5, 5, 10, 10}},
		{"M1,1 H5 V5 H1 Z", Rect{1, 1, 4, 4}},
		{"M1,1 h4 v4 h-4 z", Rect{1, 1, 4, 4}},
		{"M0,0 10,10 20,0", Rect{0, 0, 20, 10}},        // implicit LineTo after MoveTo
		{"m0,0 10,10 10,-10", Rect{0, 0, 20, 10}},      // implicit relative LineTo
		{"M0,0 C10,20 20,20 30,0", Rect{0, 0, 30, 20}}, // control points bound conservatively
		{"M0,0 Q15,30 30,0", Rect{0, 0, 30, 30}},
		{"M0,0 S10,10 20,0 T40,0", Rect{0, 0, 40, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.d, func(t *testing.T) {
			test.T(t, boundsOf(ParsePathData(tt.d)), tt.bounds)
		})
	}
}

func TestParsePathDataRelativeAbsoluteEquivalence(t *testing.T) {
	abs := ParsePathData("M5,5 L15,5 L15,15 L5,15 Z")
	rel := ParsePathData("M5,5 l10,0 l0,10 l-10,0 Z")
	test.T(t, boundsOf(abs), boundsOf(rel))
	test.T(t, len(abs), len(rel))
	for i := range abs {
		test.T(t, abs[i], rel[i])
	}
}

func TestParsePathDataClose(t *testing.T) {
	points := ParsePathData("M2,3 L10,3 L10,8 Z")
	test.T(t, len(points), 4)
	test.T(t, points[3], Point{2, 3}) // Z returns to the subpath start

	// a new subpath after Z starts from its own MoveTo
	points = ParsePathData("M0,0 L1,0 Z M10,10 l1,0 Z")
	test.T(t, points[len(points)-1], Point{10, 10})
}

func TestParsePathDataArcEndpoint(t *testing.T) {
	points := ParsePathData("M0,0 A5,5 0 0 1 10,0")
	test.T(t, len(points), 2)
	test.T(t, points[1], Point{10, 0})

	points = ParsePathData("M0,0 a5,5 0 0 1 10,0")
	test.T(t, points[1], Point{10, 0})
}

func TestParsePathDataSkipsBadCommands(t *testing.T) {
	// an unknown command letter and its arguments are skipped, the rest of
	// the path survives
	points := ParsePathData("M0,0 L10,0 X99 7 L10,10")
	test.T(t, len(points), 3)
	test.T(t, points[2], Point{10, 10})

	// truncated arguments end the parse without panicking
	points = ParsePathData("M0,0 L")
	test.T(t, len(points), 1)

	// numbers before any command are ignored
	points = ParsePathData("42 M1,2")
	test.T(t, len(points), 1)
	test.T(t, points[0], Point{1, 2})
}

func TestParsePathDataEmpty(t *testing.T) {
	test.T(t, len(ParsePathData("")), 0)
	test.T(t, len(ParsePathData("   ")), 0)
}
