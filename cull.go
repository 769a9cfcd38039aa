package floorplan

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// Viewport is the current pan/zoom interaction state over a rendering
// surface of WxH pixels. A content point c maps to screen space as
// c*Zoom + Pan.
type Viewport struct {
	PanX, PanY float64
	Zoom       float64
	W, H       float64
}

type shapeEntry struct {
	shape *Shape
	ord   int
	bb    rtreego.Rect
}

func (e *shapeEntry) Bounds() rtreego.Rect {
	return e.bb
}

// Culler bounds the interactive render set: given the current viewport it
// returns only the shapes whose bounds intersect the padded visible window,
// so documents with 10,000+ elements never mount everything at once. The
// shape set is indexed once in an R-tree; the last query is memoized
// against (pan, zoom, size) so unrelated state changes such as hover do not
// re-run it.
type Culler struct {
	tree  *rtreego.Rtree
	count int

	memoOK      bool
	memoVp      Viewport
	memoPadding float64
	memoVisible []*Shape
}

// NewCuller indexes the renderable (non-degenerate) shapes.
func NewCuller(shapes []*Shape) *Culler {
	entries := []rtreego.Spatial{}
	for i, s := range shapes {
		if s.Degenerate {
			continue
		}
		bb, err := rtreego.NewRect(
			rtreego.Point{s.Bounds.X, s.Bounds.Y},
			[]float64{math.Max(s.Bounds.W, Epsilon), math.Max(s.Bounds.H, Epsilon)},
		)
		if err != nil {
			continue
		}
		entries = append(entries, &shapeEntry{shape: s, ord: i, bb: bb})
	}
	return &Culler{
		tree:  rtreego.NewTree(2, 25, 50, entries...),
		count: len(entries),
	}
}

// Visible returns the shapes intersecting the viewport extended by padding
// screen pixels on every side, in document order. Shapes straddling the
// window edge are included; the padding avoids pop-in at the edge while
// panning.
func (c *Culler) Visible(vp Viewport, padding float64) []*Shape {
	if c.memoOK && c.memoVp == vp && c.memoPadding == padding {
		return c.memoVisible
	}

	window := c.contentWindow(vp, padding)
	searchRect, err := rtreego.NewRect(
		rtreego.Point{window.X, window.Y},
		[]float64{math.Max(window.W, Epsilon), math.Max(window.H, Epsilon)},
	)
	if err != nil {
		return nil
	}

	hits := c.tree.SearchIntersect(searchRect)
	entries := make([]*shapeEntry, 0, len(hits))
	for _, hit := range hits {
		e := hit.(*shapeEntry)
		// the index stores zero-extent bounds inflated by Epsilon, so verify
		// against the exact boxes
		if e.shape.Bounds.Intersects(window) {
			entries = append(entries, e)
		}
	}
	// document order keeps iteration reproducible
	for i := 1; i < len(entries); i++ {
		for j := i; 0 < j && entries[j].ord < entries[j-1].ord; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	visible := make([]*Shape, len(entries))
	for i, e := range entries {
		visible[i] = e.shape
	}

	c.memoOK = true
	c.memoVp = vp
	c.memoPadding = padding
	c.memoVisible = visible
	return visible
}

// contentWindow maps the padded screen viewport into content space.
func (c *Culler) contentWindow(vp Viewport, padding float64) Rect {
	zoom := vp.Zoom
	if zoom < Epsilon {
		zoom = Epsilon
	}
	origin := Point{-padding - vp.PanX, -padding - vp.PanY}.Mul(1.0 / zoom)
	far := Point{vp.W + padding - vp.PanX, vp.H + padding - vp.PanY}.Mul(1.0 / zoom)
	size := far.Sub(origin)
	return Rect{origin.X, origin.Y, size.X, size.Y}
}

// HitTest returns the topmost shape under the screen point (x,y), or nil.
// Topmost follows document order, matching SVG paint order.
func (c *Culler) HitTest(vp Viewport, x, y float64) *Shape {
	zoom := vp.Zoom
	if zoom < Epsilon {
		zoom = Epsilon
	}
	pt := Point{x, y}.Sub(Point{vp.PanX, vp.PanY}).Mul(1.0 / zoom)

	probe, err := rtreego.NewRect(rtreego.Point{pt.X, pt.Y}, []float64{Epsilon, Epsilon})
	if err != nil {
		return nil
	}
	var top *shapeEntry
	for _, hit := range c.tree.SearchIntersect(probe) {
		e := hit.(*shapeEntry)
		if e.shape.Bounds.Contains(pt) && (top == nil || top.ord < e.ord) {
			top = e
		}
	}
	if top == nil {
		return nil
	}
	return top.shape
}

// Len returns the number of indexed shapes.
func (c *Culler) Len() int {
	return c.count
}

////////////////////////////////////////////////////////////////

// Camera owns the viewport state machine: Idle until a pointer goes down
// over empty canvas, Dragging until it is released or leaves, with pan
// updating on every move while dragging. Zoom changes independently via
// ZoomBy and is clamped to [MinZoom,MaxZoom]. The host decides whether a
// pointer-down hit a shape and only forwards canvas hits here.
type Camera struct {
	Viewport
	MinZoom, MaxZoom float64

	viewBox      Rect
	dragging     bool
	lastX, lastY float64
}

const (
	defaultMinZoom = 0.25
	defaultMaxZoom = 8.0
	zoomStep       = 1.2
)

// NewCamera creates a camera fitted to the container; Reset restores this
// fit after any interaction, and loading a new document warrants a new
// camera.
func NewCamera(viewBox Rect, container Size) *Camera {
	c := &Camera{
		MinZoom: defaultMinZoom,
		MaxZoom: defaultMaxZoom,
		viewBox: viewBox,
	}
	c.Viewport.W = container.W
	c.Viewport.H = container.H
	c.Reset()
	return c
}

// Reset restores the fit-to-container zoom and centering pan computed from
// the viewBox against the container size.
func (c *Camera) Reset() {
	c.dragging = false
	zoom := math.Min(c.Viewport.W/c.viewBox.W, c.Viewport.H/c.viewBox.H)
	if zoom < Epsilon {
		zoom = 1.0
	}
	c.Zoom = zoom
	c.PanX = (c.Viewport.W-c.viewBox.W*zoom)/2.0 - c.viewBox.X*zoom
	c.PanY = (c.Viewport.H-c.viewBox.H*zoom)/2.0 - c.viewBox.Y*zoom
}

// Resize updates the container size, keeping the current pan and zoom.
func (c *Camera) Resize(container Size) {
	c.Viewport.W = container.W
	c.Viewport.H = container.H
}

func (c *Camera) Dragging() bool {
	return c.dragging
}

func (c *Camera) PointerDown(x, y float64) {
	c.dragging = true
	c.lastX, c.lastY = x, y
}

func (c *Camera) PointerMove(x, y float64) {
	if !c.dragging {
		return
	}
	c.PanX += x - c.lastX
	c.PanY += y - c.lastY
	c.lastX, c.lastY = x, y
}

func (c *Camera) PointerUp() {
	c.dragging = false
}

func (c *Camera) PointerLeave() {
	c.dragging = false
}

// Transform returns the content-to-screen affine transformation of the
// current pan and zoom.
func (c *Camera) Transform() Matrix {
	return Identity.Translate(c.PanX, c.PanY).Scale(c.Zoom, c.Zoom)
}

// ContentToScreen maps a content point to screen pixels.
func (c *Camera) ContentToScreen(p Point) Point {
	return c.Transform().Dot(p)
}

// ScreenToContent maps a screen point back into content space.
func (c *Camera) ScreenToContent(p Point) Point {
	return p.Sub(Point{c.PanX, c.PanY}).Mul(1.0 / c.Zoom)
}

// ZoomBy scales the zoom by factor about the screen point (x,y), so the
// content under the cursor stays put. The result is clamped to
// [MinZoom,MaxZoom].
func (c *Camera) ZoomBy(factor, x, y float64) {
	zoom := math.Min(math.Max(c.Zoom*factor, c.MinZoom), c.MaxZoom)
	if equal(zoom, c.Zoom) {
		return
	}
	scale := zoom / c.Zoom
	c.PanX = x - (x-c.PanX)*scale
	c.PanY = y - (y-c.PanY)*scale
	c.Zoom = zoom
}

func (c *Camera) ZoomIn() {
	c.ZoomBy(zoomStep, c.Viewport.W/2.0, c.Viewport.H/2.0)
}

func (c *Camera) ZoomOut() {
	c.ZoomBy(1.0/zoomStep, c.Viewport.W/2.0, c.Viewport.H/2.0)
}
