package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fuyurina/sellerhub/internal/config"
	"github.com/fuyurina/sellerhub/internal/database"
	"github.com/fuyurina/sellerhub/internal/handlers"
	"github.com/fuyurina/sellerhub/internal/ingest"
	"github.com/fuyurina/sellerhub/internal/logger"
	"github.com/fuyurina/sellerhub/internal/marketplace"
	"github.com/fuyurina/sellerhub/internal/metrics"
	"github.com/fuyurina/sellerhub/internal/rabbitmq"
	"github.com/fuyurina/sellerhub/internal/retry"
	"github.com/fuyurina/sellerhub/internal/routes"
	"github.com/fuyurina/sellerhub/internal/store"
	"github.com/fuyurina/sellerhub/internal/stream"
)

func main() {
	if err := logger.Init(os.Getenv("LOG_LEVEL")); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	log := logger.Logger

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := database.Connect(&cfg.Database, log)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, log); err != nil {
			logger.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := database.RunMigrations(&cfg.Database, log); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	metrics.Register()

	// Optional broadcast mirror for multi-instance deployments
	var broker *rabbitmq.Connection
	if cfg.RabbitMQ.Enabled() {
		broker = rabbitmq.NewConnection(&cfg.RabbitMQ, log)
		if err := broker.Connect(); err != nil {
			logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer broker.Close()
	}

	policy := retry.Policy{
		Attempts:     cfg.Ingest.RetryAttempts,
		InitialDelay: cfg.Ingest.RetryInitialDelay,
	}

	hub := stream.NewHub(cfg.Stream.SubscriberBuffer, log)
	if broker != nil {
		hub.SetMirror(broker)
	}

	limiter := stream.NewRateLimiter(cfg.Stream.RateLimitMax, cfg.Stream.RateLimitWindow)
	limiter.Start()
	defer limiter.Stop()

	storage := store.New(db, policy, log)
	client := marketplace.NewHTTPClient(
		cfg.Marketplace.BaseURL,
		cfg.Marketplace.PartnerID,
		time.Duration(cfg.Marketplace.TimeoutSeconds)*time.Second,
	)
	directory := marketplace.NewDBDirectory(db, 5*time.Minute)

	dispatcher := ingest.NewDispatcher(storage, client, directory, hub, policy, log)
	pipeline := ingest.NewPipeline(dispatcher, cfg.Ingest.QueueSize, cfg.Ingest.Workers, log)
	if err := pipeline.Start(); err != nil {
		logger.Fatal("Failed to start ingest pipeline", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:      "Seller Hub",
		ServerHeader: "Fiber",
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	var brokerHealth handlers.BrokerHealth
	if broker != nil {
		brokerHealth = broker
	}

	routes.SetupRoutes(app,
		handlers.NewWebhookHandler(pipeline, log),
		stream.NewSSEHandler(hub, limiter, cfg.Stream.HeartbeatInterval, log),
		handlers.NewNotificationsHandler(storage, log),
		handlers.NewHealthHandler(db, brokerHealth, pipeline),
	)

	// Metrics on a separate listener so the scrape endpoint is never
	// exposed on the public port
	go func() {
		addr := ":" + cfg.Metrics.Port
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info("Metrics server starting", zap.String("address", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Error("Error during server shutdown", zap.Error(err))
	}

	// Stop accepting first, then drain: workers finish queued
	// deliveries before subscribers are dropped.
	pipeline.Stop()
	hub.Close()

	logger.Info("Server stopped")
}
