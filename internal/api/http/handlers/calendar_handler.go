package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-calendar/internal/api/dto"
	"github.com/spec-kit/ticket-calendar/internal/calendar"
	"github.com/spec-kit/ticket-calendar/internal/service"
)

// CalendarHandler serves the month grid as JSON.
type CalendarHandler struct {
	service *service.TicketService
	locale  calendar.Locale
}

// NewCalendarHandler constructs handler.
func NewCalendarHandler(ticketService *service.TicketService, locale calendar.Locale) *CalendarHandler {
	return &CalendarHandler{service: ticketService, locale: locale}
}

// Month GET /api/calendar?year=&month=&date=.
func (h *CalendarHandler) Month(c *fiber.Ctx) error {
	state := calendar.StateFromQuery(c.Query("year"), c.Query("month"), c.Query("date"), h.service.Today())
	grid, err := h.service.Calendar(c.UserContext(), state)
	if err != nil {
		return err
	}
	prev, next := state.PrevMonth(), state.NextMonth()
	return c.JSON(fiber.Map{"data": dto.CalendarResponse{
		Year:     grid.Year,
		Month:    int(grid.Month),
		Label:    h.locale.MonthLabel(grid.Year, grid.Month),
		Selected: state.Selected,
		Weekdays: h.locale.WeekdayInitials(),
		Cells:    grid.Cells,
		Prev:     dto.MonthRef{Year: prev.Year, Month: int(prev.Month)},
		Next:     dto.MonthRef{Year: next.Year, Month: int(next.Month)},
	}})
}
