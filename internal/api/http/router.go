package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-calendar/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Metrics  *handlers.MetricsHandler
	Page     *handlers.PageHandler
	Tickets  *handlers.TicketsHandler
	Calendar *handlers.CalendarHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Show)

	app.Get("/", cfg.Page.Show)
	forms := app.Group("/tickets")
	forms.Post("", cfg.Page.Create)
	forms.Post("/:id/edit", cfg.Page.Update)
	forms.Post("/:id/delete", cfg.Page.Delete)

	api := app.Group("/api")
	api.Get("/tickets", cfg.Tickets.ListTickets)
	api.Post("/tickets", cfg.Tickets.CreateTicket)
	api.Get("/tickets/:id", cfg.Tickets.GetTicket)
	api.Put("/tickets/:id", cfg.Tickets.UpdateTicket)
	api.Delete("/tickets/:id", cfg.Tickets.DeleteTicket)
	api.Get("/statuses", cfg.Tickets.ListStatuses)
	api.Post("/cache/reset", cfg.Tickets.ResetCache)
	api.Get("/calendar", cfg.Calendar.Month)
}
