package floorplan

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for coordinate comparisons.
const Epsilon = 1e-10

// equal returns true if a and b are equal with tolerance Epsilon.
func equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

////////////////////////////////////////////////////////////////

// Point is a coordinate in SVG user space.
type Point struct {
	X, Y float64
}

// Add adds Q to P.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul multiplies x and y by f.
func (p Point) Mul(f float64) Point {
	return Point{f * p.X, f * p.Y}
}

// Equals returns true if P and Q are equal with tolerance Epsilon.
func (p Point) Equals(q Point) bool {
	return equal(p.X, q.X) && equal(p.Y, q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("[%g; %g]", p.X, p.Y)
}

////////////////////////////////////////////////////////////////

// Rect is an axis-aligned rectangle with a top-left origin, as in the SVG
// coordinate system.
type Rect struct {
	X, Y, W, H float64
}

// Add returns the union of both rectangles.
func (r Rect) Add(q Rect) Rect {
	if q.W == 0.0 || q.H == 0.0 {
		return r
	} else if r.W == 0.0 || r.H == 0.0 {
		return q
	}
	x0 := math.Min(r.X, q.X)
	y0 := math.Min(r.Y, q.Y)
	x1 := math.Max(r.X+r.W, q.X+q.W)
	y1 := math.Max(r.Y+r.H, q.Y+q.H)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Intersects returns true if both rectangles overlap, including touching
// edges.
func (r Rect) Intersects(q Rect) bool {
	return r.X <= q.X+q.W && q.X <= r.X+r.W && r.Y <= q.Y+q.H && q.Y <= r.Y+r.H
}

// Contains returns true if the point lies within the rectangle, including
// its edges.
func (r Rect) Contains(p Point) bool {
	return r.X <= p.X && p.X <= r.X+r.W && r.Y <= p.Y && p.Y <= r.Y+r.H
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 {
	return r.W * r.H
}

// Move translates the rectangle by p.
func (r Rect) Move(p Point) Rect {
	r.X += p.X
	r.Y += p.Y
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g; %g]--[%g; %g]", r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// boundsOf returns the axis-aligned bounding box of a point set. An empty
// set yields the zero rectangle.
func boundsOf(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	x0, y0 := points[0].X, points[0].Y
	x1, y1 := x0, y0
	for _, p := range points[1:] {
		x0 = math.Min(x0, p.X)
		y0 = math.Min(y0, p.Y)
		x1 = math.Max(x1, p.X)
		y1 = math.Max(y1, p.Y)
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

////////////////////////////////////////////////////////////////

// Matrix is used for affine transformations. Concatenated transformations
// evaluate right-to-left, so Identity.Translate(10,0).Scale(2,2) first
// scales and then translates.
type Matrix [2][3]float64

// Identity is the identity affine transformation matrix.
var Identity = Matrix{
	{1.0, 0.0, 0.0},
	{0.0, 1.0, 0.0},
}

func (m Matrix) Mul(q Matrix) Matrix {
	return Matrix{{
		m[0][0]*q[0][0] + m[0][1]*q[1][0],
		m[0][0]*q[0][1] + m[0][1]*q[1][1],
		m[0][0]*q[0][2] + m[0][1]*q[1][2] + m[0][2],
	}, {
		m[1][0]*q[0][0] + m[1][1]*q[1][0],
		m[1][0]*q[0][1] + m[1][1]*q[1][1],
		m[1][0]*q[0][2] + m[1][1]*q[1][2] + m[1][2],
	}}
}

func (m Matrix) Dot(p Point) Point {
	return Point{
		m[0][0]*p.X + m[0][1]*p.Y + m[0][2],
		m[1][0]*p.X + m[1][1]*p.Y + m[1][2],
	}
}

func (m Matrix) Translate(x, y float64) Matrix {
	return m.Mul(Matrix{
		{1.0, 0.0, x},
		{0.0, 1.0, y},
	})
}

func (m Matrix) Scale(x, y float64) Matrix {
	return m.Mul(Matrix{
		{x, 0.0, 0.0},
		{0.0, y, 0.0},
	})
}

// Rotate rotates by rot degrees counter clockwise.
func (m Matrix) Rotate(rot float64) Matrix {
	sintheta, costheta := math.Sincos(rot * math.Pi / 180.0)
	return m.Mul(Matrix{
		{costheta, -sintheta, 0.0},
		{sintheta, costheta, 0.0},
	})
}

func (m Matrix) Shear(x, y float64) Matrix {
	return m.Mul(Matrix{
		{1.0, x, 0.0},
		{y, 1.0, 0.0},
	})
}

// IsTranslation returns true if the matrix only translates, ie. it has no
// scale, rotation, or skew component.
func (m Matrix) IsTranslation() bool {
	return equal(m[0][0], 1.0) && equal(m[0][1], 0.0) && equal(m[1][0], 0.0) && equal(m[1][1], 1.0)
}

// Pos returns the translation component of the matrix.
func (m Matrix) Pos() Point {
	return Point{m[0][2], m[1][2]}
}

func (m Matrix) String() string {
	return fmt.Sprintf("[%g, %g, %g; %g, %g, %g; 0, 0, 1]", m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2])
}
