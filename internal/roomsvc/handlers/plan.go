package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	floorplan "github.com/SabinGhost19/SpaceFlow-sub000"
)

type PlanHandler struct {
	seed int64
}

func NewPlanHandler(seed int64) *PlanHandler {
	return &PlanHandler{seed: seed}
}

type planResponse struct {
	ViewBox  floorplan.Rect          `json:"viewBox"`
	Shapes   []*floorplan.Shape      `json:"shapes"`
	Groups   []*floorplan.ShapeGroup `json:"groups"`
	Colors   map[string]string       `json:"colors"`
	Stats    floorplan.Statistics    `json:"stats"`
	Warnings []floorplan.Warning     `json:"warnings"`
}

// Parse accepts an SVG floor plan as multipart/form-data and returns its
// extracted shapes, signature groups and group colors.
func (h *PlanHandler) Parse(c fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "file required in multipart/form-data"})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer f.Close()

	doc, err := floorplan.ParseFloorPlan(c.Context(), f, nil)
	if err != nil {
		if errors.Is(err, floorplan.ErrMalformedDocument) {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	groups := floorplan.GroupBySignature(doc.Shapes)
	rgba := floorplan.AssignColors(groups, h.seed)
	colors := make(map[string]string, len(rgba))
	for sig, col := range rgba {
		colors[sig] = floorplan.CSSColor(col)
	}

	return c.JSON(planResponse{
		ViewBox:  doc.ViewBox,
		Shapes:   doc.Shapes,
		Groups:   groups,
		Colors:   colors,
		Stats:    doc.Stats,
		Warnings: doc.Warnings,
	})
}
