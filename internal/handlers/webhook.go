package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fuyurina/sellerhub/internal/event"
)

// Enqueuer accepts one parsed delivery for background processing
type Enqueuer interface {
	Enqueue(in event.Inbound) bool
}

// WebhookHandler accepts marketplace push deliveries
type WebhookHandler struct {
	pipeline Enqueuer
	logger   *zap.Logger
}

func NewWebhookHandler(pipeline Enqueuer, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		pipeline: pipeline,
		logger:   logger,
	}
}

// Receive handles POST /webhook. The delivery is acknowledged as soon
// as it is parsed and queued; processing happens in the background so
// the marketplace never sees handler latency.
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	in, err := event.Parse(c.Body())
	if err != nil {
		h.logger.Warn("Rejecting malformed webhook body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid webhook payload",
		})
	}

	h.pipeline.Enqueue(in)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"received":  true,
		"timestamp": time.Now().Unix(),
	})
}
