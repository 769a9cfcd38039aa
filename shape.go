package floorplan

// Kind designates the SVG element a shape was extracted from.
type Kind int

const (
	KindRect Kind = iota
	KindPath
	KindPolygon
	KindPolyline
	KindCircle
	KindEllipse
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindPath:
		return "path"
	case KindPolygon:
		return "polygon"
	case KindPolyline:
		return "polyline"
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	case KindLine:
		return "line"
	}
	return "unknown"
}

// Shape is one normalized graphical primitive extracted from a floor-plan
// document. Points are in SVG user space with any ancestor translate
// applied; Bounds is their axis-aligned bounding box.
type Shape struct {
	ID     string
	Kind   Kind
	Points []Point
	Bounds Rect
	Fill   string
	Label  string

	// Attr passes through source attributes not otherwise modeled.
	Attr map[string]string

	// Degenerate marks shapes smaller than one user-space unit in both
	// axes; they are kept for statistics and classification but excluded
	// from the renderable set.
	Degenerate bool
}

// Area returns the area of the shape's bounding box.
func (s *Shape) Area() float64 {
	return s.Bounds.Area()
}

// Warning is a non-fatal condition detected during extraction, attached to
// the shape it concerns.
type Warning struct {
	ShapeID string
	Message string
}

// Statistics summarizes one parse. It is diagnostic only and never affects
// behavior.
type Statistics struct {
	Total      int
	Degenerate int
	ByKind     map[Kind]int
}

// Document is the aggregate result of parsing one floor-plan SVG.
type Document struct {
	ViewBox  Rect
	Shapes   []*Shape // document order, including degenerate shapes
	Warnings []Warning
	Stats    Statistics
}

// Renderable returns the shapes that take part in rendering and
// interaction, excluding degenerate ones.
func (doc *Document) Renderable() []*Shape {
	shapes := make([]*Shape, 0, len(doc.Shapes))
	for _, s := range doc.Shapes {
		if !s.Degenerate {
			shapes = append(shapes, s)
		}
	}
	return shapes
}

// Bounds returns the union of the renderable shapes' bounding boxes. It can
// be tighter or looser than the viewBox, depending on how the plan was
// authored.
func (doc *Document) Bounds() Rect {
	bounds := Rect{}
	for _, s := range doc.Shapes {
		if !s.Degenerate {
			bounds = bounds.Add(s.Bounds)
		}
	}
	return bounds
}

// ShapeByID returns the shape with the given id, or nil.
func (doc *Document) ShapeByID(id string) *Shape {
	for _, s := range doc.Shapes {
		if s.ID == id {
			return s
		}
	}
	return nil
}
