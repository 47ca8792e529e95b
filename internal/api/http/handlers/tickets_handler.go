package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-calendar/internal/api/dto"
	"github.com/spec-kit/ticket-calendar/internal/calendar"
	"github.com/spec-kit/ticket-calendar/internal/domain"
	"github.com/spec-kit/ticket-calendar/internal/service"
	apperrors "github.com/spec-kit/ticket-calendar/pkg/util"
)

// TicketsHandler serves the JSON ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
	locale  calendar.Locale
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, locale calendar.Locale) *TicketsHandler {
	return &TicketsHandler{service: ticketService, locale: locale}
}

// ListTickets GET /api/tickets?date=.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	date := c.Query("date", h.service.Today().Selected)
	if !domain.ValidDate(date) {
		return apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": date})
	}
	tickets, err := h.service.ListForDate(c.UserContext(), date)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, ticketResponse(t))
	}
	return c.JSON(fiber.Map{"data": dto.TicketListResponse{
		Date:    date,
		Title:   h.locale.ListTitle(date),
		Tickets: items,
	}})
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id := c.Params("id")
	ticket, found, err := h.service.GetTicket(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	fields, err := parseTicketRequest(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), fields)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateTicket PUT /api/tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	fields, err := parseTicketRequest(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	ticket, found, err := h.service.UpdateTicket(c.UserContext(), id, fields)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// DeleteTicket DELETE /api/tickets/:id. Deleting a missing ticket succeeds.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	deleted, err := h.service.DeleteTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "deleted": deleted}})
}

// ListStatuses GET /api/statuses.
func (h *TicketsHandler) ListStatuses(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": domain.KnownStatuses()})
}

// ResetCache POST /api/cache/reset.
func (h *TicketsHandler) ResetCache(c *fiber.Ctx) error {
	if err := h.service.ResetCache(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reset": true}})
}

func parseTicketRequest(c *fiber.Ctx) (domain.TicketFields, error) {
	var req dto.TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.TicketFields{}, apperrors.NewValidationError("invalid payload", nil)
	}
	fields := req.Fields()
	if err := service.ValidateFields(fields); err != nil {
		return domain.TicketFields{}, err
	}
	return fields, nil
}

func ticketResponse(t domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:          t.ID,
		Date:        t.Date,
		TicketID:    t.TicketID,
		Status:      t.Status,
		KnownStatus: t.Status.Known(),
		Response:    t.Response,
		CreatedAt:   t.CreatedAt,
	}
}
