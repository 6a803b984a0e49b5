// @title Web Analytics Event Service
// @version 1.0
// @description Collects, stores and aggregates user interaction events.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	analyticsHttp "github.com/prashsamosa/web-analytics-service/internal/analytics/adapters/http/fiber"
	analyticsRepoPg "github.com/prashsamosa/web-analytics-service/internal/analytics/adapters/postgres"
	analyticsUsecase "github.com/prashsamosa/web-analytics-service/internal/analytics/core/usecase"

	eventsHttp "github.com/prashsamosa/web-analytics-service/internal/events/adapters/http/fiber"
	eventsRepoPg "github.com/prashsamosa/web-analytics-service/internal/events/adapters/postgres"
	eventsUsecase "github.com/prashsamosa/web-analytics-service/internal/events/core/usecase"

	"github.com/prashsamosa/web-analytics-service/internal/platform/config"
	"github.com/prashsamosa/web-analytics-service/internal/platform/logger"

	_ "github.com/prashsamosa/web-analytics-service/docs"
)

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.LogLevel)

	// DB connection
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open postgres")
	}
	defer db.Close()

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping postgres")
	}

	// Adapter-level DB wrappers
	eventsDB := eventsRepoPg.NewSQLDB(db)
	analyticsDB := analyticsRepoPg.NewSQLDB(db)

	if err := eventsRepoPg.EnsureSchema(context.Background(), eventsDB); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure schema")
	}

	// Repositories
	eventRepository := eventsRepoPg.NewEventRepository(eventsDB)
	analyticsRepository := analyticsRepoPg.NewAnalyticsRepository(analyticsDB)

	// Usecases
	ingestEventUC := eventsUsecase.NewIngestEventUseCase(eventRepository)
	getEventsUC := eventsUsecase.NewGetEventsUseCase(eventRepository)
	getCountsUC := analyticsUsecase.NewGetCountsUseCase(analyticsRepository)

	// HTTP (Fiber) app + handlers
	app := fiber.New()
	app.Use(cors.New())

	// events endpoints
	eventsHandler := eventsHttp.NewEventHandler(ingestEventUC, getEventsUC)
	app.Post("/events", eventsHandler.CreateEvent)
	app.Get("/events", eventsHandler.ListEvents)
	app.Get("/events/:event_id", eventsHandler.GetEvent)

	// analytics endpoints
	analyticsHandler := analyticsHttp.NewAnalyticsHandler(getCountsUC)
	app.Get("/analytics/event-counts", analyticsHandler.GetEventCounts)
	app.Get("/analytics/event-counts-by-type", analyticsHandler.GetEventCountsByType)

	// health probe
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			log.Error().Err(err).Msg("fiber stopped")
		}
	}()

	log.Info().Str("port", cfg.HTTPPort).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("fiber shutdown error")
	}

	log.Info().Msg("server exiting")
}
