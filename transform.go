package floorplan

// Size is a rendering surface size in pixels.
type Size struct {
	W, H float64
}

// RenderRect is a screen-space rectangle in percentages of the rendering
// surface, so a percent-positioned overlay stays aligned under container
// resizes without recomputing the parse.
type RenderRect struct {
	X, Y, W, H float64
}

// ToRenderRect maps a bounding box in viewBox coordinates onto the current
// rendering surface. Three scale stages compose: viewBox units to the
// canonical raster the plan image was authored against, canonical to the
// currently displayed raster size, and finally pixels to percentages of the
// current surface. The composition is equivalent to a single direct
// viewBox-to-current scale; the intermediate stage only exists because the
// authored viewBox units need not match the image's native pixel size.
func ToRenderRect(bounds, viewBox Rect, canonical, current Size) RenderRect {
	// stage 1: viewBox -> canonical raster
	b := bounds.Move(Point{-viewBox.X, -viewBox.Y})
	sx := canonical.W / viewBox.W
	sy := canonical.H / viewBox.H
	x := b.X * sx
	y := b.Y * sy
	w := b.W * sx
	h := b.H * sy

	// stage 2: canonical -> currently rendered raster
	rx := current.W / canonical.W
	ry := current.H / canonical.H
	x *= rx
	y *= ry
	w *= rx
	h *= ry

	// stage 3: pixels -> percentages of the current surface
	return RenderRect{
		X: x / current.W * 100.0,
		Y: y / current.H * 100.0,
		W: w / current.W * 100.0,
		H: h / current.H * 100.0,
	}
}
