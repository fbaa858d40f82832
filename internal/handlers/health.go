package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/fuyurina/sellerhub/internal/database"
)

// BrokerHealth reports whether the optional broadcast mirror is up
type BrokerHealth interface {
	IsHealthy() bool
}

// QueueDepther reports the ingest queue backlog
type QueueDepther interface {
	Depth() int
}

type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	QueueDepth int               `json:"queue_depth"`
	Services   map[string]string `json:"services"`
}

// HealthHandler reports liveness of the service and its dependencies
type HealthHandler struct {
	db       *gorm.DB
	broker   BrokerHealth
	pipeline QueueDepther
}

// NewHealthHandler wires the health endpoint. broker may be nil when
// the mirror is disabled.
func NewHealthHandler(db *gorm.DB, broker BrokerHealth, pipeline QueueDepther) *HealthHandler {
	return &HealthHandler{
		db:       db,
		broker:   broker,
		pipeline: pipeline,
	}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	services := make(map[string]string)
	status := "healthy"

	if err := database.HealthCheck(ctx, h.db); err != nil {
		services["database"] = "unhealthy: " + err.Error()
		status = "unhealthy"
	} else {
		services["database"] = "healthy"
	}

	if h.broker != nil {
		if h.broker.IsHealthy() {
			services["rabbitmq"] = "healthy"
		} else {
			services["rabbitmq"] = "unhealthy: connection closed"
			status = "unhealthy"
		}
	}

	response := HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		QueueDepth: h.pipeline.Depth(),
		Services:   services,
	}

	if status == "unhealthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(response)
	}
	return c.JSON(response)
}
