package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/vsip/visit-sync/internal/config"   // Internal config loader
	"github.com/vsip/visit-sync/internal/database" // MySQL connection pool
	"github.com/vsip/visit-sync/internal/handler"
	"github.com/vsip/visit-sync/internal/queue" // RabbitMQ audit consumer
	"github.com/vsip/visit-sync/internal/repository"
	"github.com/vsip/visit-sync/internal/router" // Internal router setup
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis backs the rate limiter and the reference-code cache. A nil
	// client is tolerated by both; lookups then go straight to MySQL.
	rdb := config.NewRedisClient()

	visitHandler := handler.NewVisitHandler(
		repository.NewBookingRepo(db),
		repository.NewReferenceRepo(db, rdb),
		repository.NewPrisonRepo(db),
		repository.NewPersonRepo(db),
		repository.NewVisitRepo(db),
		repository.NewVisitorRepo(db),
		repository.NewOrderRepo(db),
		repository.NewBalanceRepo(db),
		repository.NewScheduleRepo(db),
		repository.NewSequenceRepo(db),
	)

	// Consume visit.booked / visit.cancelled into the audit log. The
	// consumer reconnects on broker failure and never takes the API down.
	go func() {
		if err := queue.StartVisitAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	e := echo.New()          // Create Echo instance
	router.RegisterRoutes(e) // Health check
	router.RegisterVisits(e, visitHandler, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
