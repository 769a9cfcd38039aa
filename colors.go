package floorplan

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// goldenRatioConjugate steps the hue so that any number of generated colors
// stays well distributed over the wheel.
const goldenRatioConjugate = 0.61803398874989485

// AssignColors builds a signature→color map covering every group exactly
// once. The largest groups are generated first (ties broken by discovery
// order) so the visually dominant groups get the most distinct hues. Hues
// step by the golden-ratio conjugate from a seeded starting point, with
// saturation in [0.6,0.8] and lightness in [0.5,0.7] so all colors carry
// similar visual weight. A fixed seed reproduces the exact same palette;
// different seeds only rotate it, the relative hue spacing between any two
// groups is invariant.
func AssignColors(groups []*ShapeGroup, seed int64) map[string]color.RGBA {
	ordered := make([]*ShapeGroup, len(groups))
	copy(ordered, groups)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[j].IDs) < len(ordered[i].IDs)
	})

	rnd := rand.New(rand.NewSource(seed))
	hue := rnd.Float64()

	colors := make(map[string]color.RGBA, len(ordered))
	for _, g := range ordered {
		hue = math.Mod(hue+goldenRatioConjugate, 1.0)
		saturation := 0.6 + 0.2*rnd.Float64()
		lightness := 0.5 + 0.2*rnd.Float64()
		r, gg, b := colorful.Hsl(hue*360.0, saturation, lightness).RGB255()
		colors[g.Signature] = color.RGBA{r, gg, b, 255}
	}
	return colors
}

// CSSColor formats a color as a CSS hexadecimal color such as #ff0000, or
// rgba() when not fully opaque.
func CSSColor(col color.RGBA) string {
	if col.A == 255 {
		buf := make([]byte, 7)
		buf[0] = '#'
		hex.Encode(buf[1:], []byte{col.R, col.G, col.B})
		return string(buf)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", col.R, col.G, col.B, float64(col.A)/255.0)
}
