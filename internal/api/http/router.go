package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-coverage-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	WebhookPath string
	Health      *handlers.HealthHandler
	Webhook     *handlers.WebhookHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	app.Post(cfg.WebhookPath, cfg.Webhook.Receive)
}
