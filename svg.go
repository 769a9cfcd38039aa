package floorplan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// ErrMalformedDocument is returned when a document misses a usable viewBox;
// every downstream coordinate depends on it, so no partial result is
// produced.
var ErrMalformedDocument = errors.New("malformed floor-plan document")

// ellipseSegments is the number of perimeter samples for circles and
// ellipses, enough for bounding-box and hit-testing purposes.
const ellipseSegments = 32

// Options configures floor-plan extraction.
type Options struct {
	// ExtendToBottom lists shape ids or labels whose bottom edge is snapped
	// to the bottom edge of the viewBox after extraction, for regions that
	// must visually reach the layout boundary regardless of their authored
	// geometry. Matching is exact, never heuristic.
	ExtendToBottom []string

	// Logger receives diagnostics. The engine never logs through globals;
	// a nil logger discards.
	Logger *slog.Logger
}

func (opts *Options) logger() *slog.Logger {
	if opts == nil || opts.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return opts.Logger
}

// docFrame is one open element on the parser's tag stack.
type docFrame struct {
	tag         string
	offset      Point // accumulated translate of this frame and its ancestors
	unsupported bool  // a non-translate transform component was seen on the lineage
	shape       *Shape
}

type docParser struct {
	z    *parse.Input
	opts *Options
	log  *slog.Logger

	doc     *Document
	stack   []docFrame
	intitle bool
}

func (p *docParser) frame() *docFrame {
	return &p.stack[len(p.stack)-1]
}

// parseTransform interprets an SVG transform attribute. Only the translate
// component is applied to geometry; any scale, rotation, or skew component
// is detected so it can be surfaced as a warning.
func (p *docParser) parseTransform(v string) Matrix {
	i, j := 0, 0
	m := Identity
	var fun string
	for i < len(v) {
		if v[i] == '(' {
			fun = strings.ToLower(strings.TrimSpace(v[j:i]))
			j = i + 1
		} else if v[i] == ')' {
			d := parsePointList(v[j:i])
			switch fun {
			case "matrix":
				if len(d) == 6 {
					m = m.Mul(Matrix{{d[0], d[2], d[4]}, {d[1], d[3], d[5]}})
				}
			case "translate":
				if len(d) == 1 {
					m = m.Translate(d[0], 0.0)
				} else if len(d) == 2 {
					m = m.Translate(d[0], d[1])
				}
			case "scale":
				if len(d) == 1 {
					m = m.Scale(d[0], d[0])
				} else if len(d) == 2 {
					m = m.Scale(d[0], d[1])
				}
			case "rotate":
				if len(d) == 1 {
					m = m.Rotate(d[0])
				}
			case "skewx":
				if len(d) == 1 {
					m = m.Shear(math.Tan(d[0]*math.Pi/180.0), 0.0)
				}
			case "skewy":
				if len(d) == 1 {
					m = m.Shear(0.0, math.Tan(d[0]*math.Pi/180.0))
				}
			}
			j = i + 1
		}
		i++
	}
	return m
}

// parsePointList parses a whitespace or comma separated list of numbers as
// used by the points and transform attributes. Bad items are dropped.
func parsePointList(v string) []float64 {
	v = strings.ReplaceAll(v, "\n", ",")
	v = strings.ReplaceAll(v, "\t", ",")
	v = strings.ReplaceAll(v, " ", ",")

	vals := []float64{}
	for _, item := range strings.Split(v, ",") {
		if 0 < len(item) {
			if val, err := strconv.ParseFloat(item, 64); err == nil {
				vals = append(vals, val)
			}
		}
	}
	return vals
}

func attrFloat(attrs map[string]string, key string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(attrs[key]), 64)
	return f
}

// fillOf resolves the fill color from the inline style or the fill
// attribute.
func fillOf(attrs map[string]string) string {
	if style, ok := attrs["style"]; ok {
		for _, item := range strings.Split(style, ";") {
			if keyVal := strings.Split(item, ":"); len(keyVal) == 2 && strings.TrimSpace(keyVal[0]) == "fill" {
				return strings.TrimSpace(keyVal[1])
			}
		}
	}
	return strings.TrimSpace(attrs["fill"])
}

// ellipsePoints samples the perimeter of an ellipse centered at (cx,cy).
func ellipsePoints(cx, cy, rx, ry float64) []Point {
	pts := make([]Point, ellipseSegments)
	for i := range pts {
		theta := 2.0 * math.Pi * float64(i) / float64(ellipseSegments)
		pts[i] = Point{cx + rx*math.Cos(theta), cy + ry*math.Sin(theta)}
	}
	return pts
}

// extract turns one supported element into a point set. A nil result means
// the element is skipped.
func extract(tag string, attrs map[string]string) ([]Point, Kind, bool) {
	switch tag {
	case "rect":
		x, y := attrFloat(attrs, "x"), attrFloat(attrs, "y")
		w, h := attrFloat(attrs, "width"), attrFloat(attrs, "height")
		return []Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}, KindRect, true
	case "path":
		return ParsePathData(attrs["d"]), KindPath, true
	case "polygon", "polyline":
		vals := parsePointList(attrs["points"])
		pts := make([]Point, 0, len(vals)/2)
		for i := 0; i+1 < len(vals); i += 2 {
			pts = append(pts, Point{vals[i], vals[i+1]})
		}
		kind := KindPolygon
		if tag == "polyline" {
			kind = KindPolyline
		}
		return pts, kind, true
	case "circle":
		r := attrFloat(attrs, "r")
		return ellipsePoints(attrFloat(attrs, "cx"), attrFloat(attrs, "cy"), r, r), KindCircle, true
	case "ellipse":
		return ellipsePoints(attrFloat(attrs, "cx"), attrFloat(attrs, "cy"), attrFloat(attrs, "rx"), attrFloat(attrs, "ry")), KindEllipse, true
	case "line":
		return []Point{
			{attrFloat(attrs, "x1"), attrFloat(attrs, "y1")},
			{attrFloat(attrs, "x2"), attrFloat(attrs, "y2")},
		}, KindLine, true
	}
	return nil, 0, false
}

// modeled attributes are not repeated in Shape.Attr.
var modeledAttrs = map[string]bool{
	"id": true, "d": true, "points": true, "x": true, "y": true,
	"width": true, "height": true, "cx": true, "cy": true, "r": true,
	"rx": true, "ry": true, "x1": true, "y1": true, "x2": true, "y2": true,
	"fill": true, "style": true, "transform": true,
}

// ParseFloorPlan parses a floor-plan SVG document into its interactive
// shapes. The document must declare a viewBox with positive size or
// ErrMalformedDocument is returned. One bad element never fails the whole
// parse: unsupported elements and commands are skipped, and non-translate
// ancestor transforms are surfaced as warnings on the affected shapes while
// their translate component is still applied. The context is checked
// periodically so that parsing very large documents stays cancellable.
func ParseFloorPlan(ctx context.Context, r io.Reader, opts *Options) (*Document, error) {
	z := parse.NewInput(r)
	defer z.Restore()

	p := docParser{
		z:    z,
		opts: opts,
		log:  opts.logger(),
		doc:  &Document{Stats: Statistics{ByKind: map[Kind]int{}}},
	}

	l := xml.NewLexer(z)
	elements := 0
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return nil, l.Err()
			}
			if len(p.stack) != 0 || p.doc.ViewBox.W <= 0.0 {
				return nil, fmt.Errorf("%w: missing svg root", ErrMalformedDocument)
			}
			p.finish()
			return p.doc, nil
		case xml.StartTagToken:
			elements++
			if elements%512 == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}

			attrs := map[string]string{}
			for {
				tt, _ = l.Next()
				if tt != xml.AttributeToken {
					break
				}
				val := l.AttrVal()
				if 1 < len(val) && (val[0] == '\'' || val[0] == '"') && val[0] == val[len(val)-1] {
					val = val[1 : len(val)-1]
				}
				attrs[string(l.Text())] = string(val)
			}

			tag := string(data[1:])
			if len(p.stack) == 0 {
				if tag != "svg" {
					return nil, fmt.Errorf("%w: %v", ErrMalformedDocument,
						parse.NewErrorLexer(z, "expected svg root, got <%s>", tag))
				}
				vb, err := parseViewBox(attrs["viewBox"])
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, parse.NewErrorLexer(z, "%v", err))
				}
				p.doc.ViewBox = vb
				p.stack = append(p.stack, docFrame{tag: tag})
				if tt != xml.StartTagCloseVoidToken {
					continue
				}
				p.pop()
				continue
			}

			frame := docFrame{
				tag:         tag,
				offset:      p.frame().offset,
				unsupported: p.frame().unsupported,
			}
			if v, ok := attrs["transform"]; ok {
				m := p.parseTransform(v)
				frame.offset = frame.offset.Add(m.Pos())
				if !m.IsTranslation() {
					frame.unsupported = true
				}
			}

			if tag == "title" {
				p.intitle = true
			} else if pts, kind, ok := extract(tag, attrs); ok {
				if len(pts) == 0 {
					p.log.Debug("skipping empty element", "tag", tag)
				} else {
					frame.shape = p.addShape(kind, pts, attrs, frame)
				}
			}

			p.stack = append(p.stack, frame)
			if tt == xml.StartTagCloseVoidToken {
				p.pop()
				if tag == "title" {
					// a self-closing title has no text to capture
					p.intitle = false
				}
			}
		case xml.TextToken:
			if p.intitle {
				if s := p.openShape(); s != nil {
					s.Label = strings.TrimSpace(string(data))
				}
			}
		case xml.EndTagToken:
			if string(data[2:len(data)-1]) == "title" {
				p.intitle = false
			}
			p.pop()
		}
	}
}

func (p *docParser) pop() {
	if 0 < len(p.stack) {
		p.stack = p.stack[:len(p.stack)-1]
	}
}

// openShape returns the shape of the nearest open shape element, if any.
func (p *docParser) openShape() *Shape {
	for i := len(p.stack) - 1; 0 <= i; i-- {
		if p.stack[i].shape != nil {
			return p.stack[i].shape
		}
	}
	return nil
}

func (p *docParser) addShape(kind Kind, pts []Point, attrs map[string]string, frame docFrame) *Shape {
	if frame.offset.X != 0.0 || frame.offset.Y != 0.0 {
		for i := range pts {
			pts[i] = pts[i].Add(frame.offset)
		}
	}

	id := attrs["id"]
	if id == "" {
		id = fmt.Sprintf("%s-%d", kind, len(p.doc.Shapes))
	}

	var extra map[string]string
	for key, val := range attrs {
		if !modeledAttrs[key] {
			if extra == nil {
				extra = map[string]string{}
			}
			extra[key] = val
		}
	}

	bounds := boundsOf(pts)
	s := &Shape{
		ID:         id,
		Kind:       kind,
		Points:     pts,
		Bounds:     bounds,
		Fill:       fillOf(attrs),
		Attr:       extra,
		Degenerate: bounds.W < 1.0 && bounds.H < 1.0,
	}
	p.doc.Shapes = append(p.doc.Shapes, s)
	if frame.unsupported {
		p.doc.Warnings = append(p.doc.Warnings, Warning{
			ShapeID: id,
			Message: "unsupported transform: only the translate component was applied",
		})
	}
	return s
}

// finish applies boundary overrides and fills in statistics. Overrides run
// after the whole document is read because labels arrive as nested title
// elements.
func (p *docParser) finish() {
	if p.opts != nil && 0 < len(p.opts.ExtendToBottom) {
		match := map[string]bool{}
		for _, key := range p.opts.ExtendToBottom {
			match[key] = true
		}
		bottom := p.doc.ViewBox.Y + p.doc.ViewBox.H
		for _, s := range p.doc.Shapes {
			if (match[s.ID] || s.Label != "" && match[s.Label]) && s.Bounds.Y < bottom {
				s.Bounds.H = bottom - s.Bounds.Y
			}
		}
	}

	for _, s := range p.doc.Shapes {
		p.doc.Stats.Total++
		p.doc.Stats.ByKind[s.Kind]++
		if s.Degenerate {
			p.doc.Stats.Degenerate++
		}
	}
	p.log.Debug("parsed floor plan",
		"shapes", p.doc.Stats.Total,
		"degenerate", p.doc.Stats.Degenerate,
		"warnings", len(p.doc.Warnings))
}

func parseViewBox(v string) (Rect, error) {
	vals := strings.Fields(v)
	if len(vals) != 4 {
		return Rect{}, fmt.Errorf("missing or bad viewBox %q", v)
	}
	var f [4]float64
	for i := range vals {
		var err error
		if f[i], err = strconv.ParseFloat(vals[i], 64); err != nil {
			return Rect{}, fmt.Errorf("bad viewBox %q", v)
		}
	}
	if f[2] <= 0.0 || f[3] <= 0.0 {
		return Rect{}, fmt.Errorf("viewBox size must be positive")
	}
	return Rect{f[0], f[1], f[2], f[3]}, nil
}
