package handlers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	floorplan "github.com/SabinGhost19/SpaceFlow-sub000"
	"github.com/SabinGhost19/SpaceFlow-sub000/internal/roomsvc/repository"
)

type RoomHandler struct {
	repo *repository.Repository
}

func NewRoomHandler(repo *repository.Repository) *RoomHandler {
	return &RoomHandler{repo: repo}
}

// ListRooms returns every room keyed by its floor-plan shape id.
func (h *RoomHandler) ListRooms(c fiber.Ctx) error {
	rooms, err := h.repo.ListRooms(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if rooms == nil {
		rooms = []floorplan.Room{}
	}
	return c.JSON(rooms)
}

func (h *RoomHandler) GetRoom(c fiber.Ctx) error {
	detail, err := h.repo.GetRoom(c.Context(), c.Params("key"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "room not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(detail)
}

// Bookings returns the room's bookings in the requested date window,
// defaulting to the coming week.
func (h *RoomHandler) Bookings(c fiber.Ctx) error {
	from := time.Now()
	to := from.AddDate(0, 0, 7)
	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "from must be YYYY-MM-DD"})
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "to must be YYYY-MM-DD"})
		}
		to = t
	}

	bookings, err := h.repo.BookingsForRoom(c.Context(), c.Params("key"), from, to, c.Query("status"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if bookings == nil {
		bookings = []floorplan.Booking{}
	}
	return c.JSON(bookings)
}

func (h *RoomHandler) Availability(c fiber.Ctx) error {
	date := c.Query("date")
	start := c.Query("start")
	end := c.Query("end")
	if date == "" || start == "" || end == "" {
		return c.Status(400).JSON(fiber.Map{"error": "date, start and end are required"})
	}

	available, err := h.repo.CheckAvailability(c.Context(), c.Params("key"), date, start, end)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"available": available})
}

func (h *RoomHandler) CreateBooking(c fiber.Ctx) error {
	var booking floorplan.Booking
	if err := json.Unmarshal(c.Body(), &booking); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid booking payload"})
	}
	booking.RoomKey = c.Params("key")
	if booking.Date == "" || booking.StartTime == "" || booking.EndTime == "" {
		return c.Status(400).JSON(fiber.Map{"error": "date, startTime and endTime are required"})
	}

	if err := h.repo.CreateBooking(c.Context(), &booking); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "room not found"})
		}
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(booking)
}
