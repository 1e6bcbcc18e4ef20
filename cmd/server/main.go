package main // Entry point package

import (
	"context" // Context for background jobs
	"log"     // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/hotel-reservation/internal/booking"    // Booking engine
	"github.com/iliyamo/hotel-reservation/internal/config"     // Internal config loader
	"github.com/iliyamo/hotel-reservation/internal/database"   // MySQL connector
	"github.com/iliyamo/hotel-reservation/internal/handler"    // HTTP handlers
	"github.com/iliyamo/hotel-reservation/internal/queue"      // RabbitMQ publisher/consumer
	"github.com/iliyamo/hotel-reservation/internal/repository" // Data access layer
	"github.com/iliyamo/hotel-reservation/internal/router"     // Internal router setup
	"github.com/iliyamo/hotel-reservation/internal/scheduler"  // Background completion sweep
)

func main() {
	// Load .env when present; real environments set variables directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	clients := repository.NewClientRepo(db)
	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)

	// The publisher dials lazily; a dead broker degrades event
	// publishing without blocking bookings.
	publisher := queue.NewPublisher()
	defer publisher.Close()

	engine := booking.NewEngine(clients, rooms, reservations, publisher, cfg.BookingLockWait)

	// Consume reservation events into the audit log. Failure here is
	// not fatal; the consumer keeps retrying with backoff.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("queue consumer: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Sweep confirmed reservations past their end date into TERMINEE.
	go scheduler.NewCompleter(engine, reservations, cfg.CompleteEvery).Run(ctx)

	rdb := config.NewRedisClient() // nil when Redis is unreachable

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e) // Health check
	router.RegisterAPI(e, router.Handlers{
		Clients:      handler.NewClientHandler(clients, reservations),
		Rooms:        handler.NewRoomHandler(rooms, reservations, engine),
		Reservations: handler.NewReservationHandler(engine, reservations, clients, rooms),
	}, cfg.AdminJWTSecret, rdb)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
