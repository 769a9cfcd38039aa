package main

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/SabinGhost19/SpaceFlow-sub000/internal/roomsvc/config"
	"github.com/SabinGhost19/SpaceFlow-sub000/internal/roomsvc/handlers"
	"github.com/SabinGhost19/SpaceFlow-sub000/internal/roomsvc/repository"
)

func main() {
	cfg := config.Load()

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("init db: %v", err)
	}

	roomHandler := handlers.NewRoomHandler(repo)
	planHandler := handlers.NewPlanHandler(cfg.ColorSeed)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "SpaceFlow Room Service",
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	app.Get("/api/rooms", roomHandler.ListRooms)
	app.Get("/api/rooms/:key", roomHandler.GetRoom)
	app.Get("/api/rooms/:key/bookings", roomHandler.Bookings)
	app.Get("/api/rooms/:key/availability", roomHandler.Availability)
	app.Post("/api/rooms/:key/bookings", roomHandler.CreateBooking)

	app.Post("/api/floorplan/parse", planHandler.Parse)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Room Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
