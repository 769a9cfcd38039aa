package floorplan

import (
	"fmt"
	"math"
)

// Signature derives a stable grouping key from the shape's geometry alone:
// kind, bounding box, and point count. Identical geometry always yields the
// same signature, regardless of id or label, so visually similar shapes can
// share a color without semantic labels. Room identity never derives from
// the signature.
func (s *Shape) Signature() string {
	if s.Bounds.W == 0.0 || s.Bounds.H == 0.0 {
		return fmt.Sprintf("%s-degenerate", s.Kind)
	}

	aspectRatio := math.Round(s.Bounds.W/s.Bounds.H*10.0) / 10.0

	// bands of 10 vertices, capped, so near-identical polygons group
	// together despite small vertex-count noise
	vertexBucket := len(s.Points) / 10 * 10
	if 100 < vertexBucket {
		vertexBucket = 100
	}

	density := math.Round(float64(len(s.Points)) / s.Area() * 1000.0)
	return fmt.Sprintf("%s-ar%g-v%d-c%d", s.Kind, aspectRatio, vertexBucket, int(density))
}

// ShapeGroup is the set of shapes sharing one signature.
type ShapeGroup struct {
	Signature string
	IDs       []string
}

// GroupBySignature groups shapes by signature, in first-discovery order.
// Groups are recomputed from scratch whenever the shape set changes; they
// are never carried across parses.
func GroupBySignature(shapes []*Shape) []*ShapeGroup {
	byKey := map[string]*ShapeGroup{}
	groups := []*ShapeGroup{}
	for _, s := range shapes {
		key := s.Signature()
		g, ok := byKey[key]
		if !ok {
			g = &ShapeGroup{Signature: key}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.IDs = append(g.IDs, s.ID)
	}
	return groups
}
