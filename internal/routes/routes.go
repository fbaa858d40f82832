package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fuyurina/sellerhub/internal/handlers"
	"github.com/fuyurina/sellerhub/internal/stream"
)

// SetupRoutes configures all application routes with dependencies.
// GET and POST /webhook share a path on purpose: the marketplace
// pushes to the same URL the dashboard subscribes on.
func SetupRoutes(
	app *fiber.App,
	webhookHandler *handlers.WebhookHandler,
	sseHandler *stream.SSEHandler,
	notificationsHandler *handlers.NotificationsHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.HealthCheck)

	app.Post("/webhook", webhookHandler.Receive)
	app.Get("/webhook", sseHandler.Subscribe)

	app.Get("/notifications", notificationsHandler.List)
	app.Post("/notifications/read", notificationsHandler.MarkRead)
}
