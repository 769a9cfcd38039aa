package floorplan

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/tdewolff/test"
)

func TestAssignColorsTotality(t *testing.T) {
	groups := []*ShapeGroup{}
	for i := 0; i < 50; i++ {
		groups = append(groups, &ShapeGroup{
			Signature: fmt.Sprintf("rect-ar1-v0-c%d", i),
			IDs:       make([]string, 1+i%5),
		})
	}
	colors := AssignColors(groups, 1)
	test.T(t, len(colors), 50)
	for _, g := range groups {
		if _, ok := colors[g.Signature]; !ok {
			t.Fatalf("no color assigned for %s", g.Signature)
		}
	}
}

func TestAssignColorsDeterministic(t *testing.T) {
	groups := []*ShapeGroup{
		{Signature: "a", IDs: []string{"1", "2", "3"}},
		{Signature: "b", IDs: []string{"4"}},
		{Signature: "c", IDs: []string{"5", "6"}},
	}
	first := AssignColors(groups, 42)
	second := AssignColors(groups, 42)
	test.T(t, first, second)

	// a different seed rotates the palette but still covers every key
	other := AssignColors(groups, 7)
	test.T(t, len(other), len(first))
}

func TestAssignColorsDistinct(t *testing.T) {
	groups := []*ShapeGroup{
		{Signature: "a", IDs: []string{"1"}},
		{Signature: "b", IDs: []string{"2"}},
		{Signature: "c", IDs: []string{"3"}},
		{Signature: "d", IDs: []string{"4"}},
	}
	colors := AssignColors(groups, 3)
	seen := map[color.RGBA]bool{}
	for _, col := range colors {
		test.T(t, col.A, uint8(255))
		seen[col] = true
	}
	test.T(t, len(seen), 4)
}

func TestAssignColorsEmpty(t *testing.T) {
	test.T(t, len(AssignColors(nil, 1)), 0)
}

func TestCSSColor(t *testing.T) {
	test.String(t, CSSColor(color.RGBA{255, 0, 0, 255}), "#ff0000")
	test.String(t, CSSColor(color.RGBA{0, 255, 255, 255}), "#00ffff")
	test.String(t, CSSColor(color.RGBA{255, 255, 51, 102}), "rgba(255,255,51,0.4)")
}
