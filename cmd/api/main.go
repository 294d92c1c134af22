package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fittrack/internal/config"
	"fittrack/internal/database"
	"fittrack/internal/database/schema"
	handlers "fittrack/internal/http/handler"
	"fittrack/internal/http/middleware"
	"fittrack/internal/logger"
	"fittrack/internal/otel"
	"fittrack/internal/repository/postgres"
	"fittrack/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config_invalid")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("tracing_init_failed")
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database_connect_failed")
	}
	defer db.Close()

	if cfg.Database.EnsureSchema {
		if err := schema.Ensure(ctx, db, log); err != nil {
			log.Fatal().Err(err).Msg("schema_ensure_failed")
		}
	}

	prometheus.MustRegister(collectors.NewDBStatsCollector(db, cfg.Database.Name))
	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("metrics_init_failed")
	}

	// Every store call runs in its own session transaction
	session := database.NewSession(db)
	customerRepo := postgres.NewCustomerPostgres(session)
	workoutRepo := postgres.NewWorkoutPostgres(session)
	customerSvc := service.NewCustomerService(customerRepo, cfg.BcryptCost)
	workoutSvc := service.NewWorkoutService(workoutRepo, customerRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	handlers.RegisterRoutes(app, db, customerSvc, workoutSvc)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutdown_started")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Error().Err(err).Msg("http_shutdown_failed")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("http_listening")
	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("http_listen_failed")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error().Err(err).Msg("tracing_shutdown_failed")
	}
	log.Info().Msg("shutdown_complete")
}
