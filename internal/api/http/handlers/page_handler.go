package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-calendar/internal/api/http/view"
	"github.com/spec-kit/ticket-calendar/internal/calendar"
	"github.com/spec-kit/ticket-calendar/internal/domain"
	"github.com/spec-kit/ticket-calendar/internal/service"
	apperrors "github.com/spec-kit/ticket-calendar/pkg/util"
)

const (
	msgMissingFields = "Por favor, completa todos los campos."
	msgInvalidDate   = "La fecha debe tener el formato AAAA-MM-DD."
)

// PageSettings controls how the page is labelled.
type PageSettings struct {
	AppName  string
	Local    bool
	Locale   calendar.Locale
	Location *time.Location
}

// PageHandler renders the calendar page and accepts its form posts.
type PageHandler struct {
	service  *service.TicketService
	settings PageSettings
}

// NewPageHandler constructs handler.
func NewPageHandler(ticketService *service.TicketService, settings PageSettings) *PageHandler {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &PageHandler{service: ticketService, settings: settings}
}

// Show GET /?year=&month=&date=&edit=.
func (h *PageHandler) Show(c *fiber.Ctx) error {
	ctx := c.UserContext()
	state := calendar.StateFromQuery(c.Query("year"), c.Query("month"), c.Query("date"), h.service.Today())

	grid, err := h.service.Calendar(ctx, state)
	if err != nil {
		return err
	}
	tickets, err := h.service.ListForDate(ctx, state.Selected)
	if err != nil {
		return err
	}

	var edit *domain.Ticket
	if id := c.Query("edit"); id != "" {
		t, found, err := h.service.GetTicket(ctx, id)
		if err != nil {
			return err
		}
		if found {
			edit = &t
		}
	}

	page := view.Build(view.PageInput{
		AppName:  h.settings.AppName,
		Local:    h.settings.Local,
		Error:    c.Query("error"),
		State:    state,
		Grid:     grid,
		Tickets:  tickets,
		Edit:     edit,
		Locale:   h.settings.Locale,
		Location: h.settings.Location,
	})
	if err := c.Render(view.PageTemplate, page); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Create POST /tickets.
func (h *PageHandler) Create(c *fiber.Ctx) error {
	state := h.formState(c)
	fields, err := parseTicketRequest(c)
	if err != nil {
		return h.redirectWithError(c, state, err)
	}
	if _, err := h.service.CreateTicket(c.UserContext(), fields); err != nil {
		return err
	}
	return redirectTo(c, state)
}

// Update POST /tickets/:id/edit. A ticket deleted in the meantime is ignored.
func (h *PageHandler) Update(c *fiber.Ctx) error {
	state := h.formState(c)
	fields, err := parseTicketRequest(c)
	if err != nil {
		return h.redirectWithError(c, state, err, "edit", c.Params("id"))
	}
	if _, _, err := h.service.UpdateTicket(c.UserContext(), c.Params("id"), fields); err != nil {
		return err
	}
	return redirectTo(c, state)
}

// Delete POST /tickets/:id/delete.
func (h *PageHandler) Delete(c *fiber.Ctx) error {
	state := h.formState(c)
	if _, err := h.service.DeleteTicket(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return redirectTo(c, state)
}

// formState recovers the page the form was posted from.
func (h *PageHandler) formState(c *fiber.Ctx) calendar.State {
	return calendar.StateFromQuery(c.FormValue("view_year"), c.FormValue("view_month"), c.FormValue("view_date"), h.service.Today())
}

// redirectWithError sends validation failures back to the page as a banner.
// Anything else goes to the error middleware.
func (h *PageHandler) redirectWithError(c *fiber.Ctx, state calendar.State, err error, extra ...string) error {
	de := apperrors.ToDomainError(err)
	if de.Code != "VALIDATION_FAILED" {
		return err
	}
	msg := msgMissingFields
	if _, missing := de.Details["fields"]; !missing && de.Details["date"] != nil {
		msg = msgInvalidDate
	}
	q := url.Values{}
	q.Set("error", msg)
	for i := 0; i+1 < len(extra); i += 2 {
		q.Set(extra[i], extra[i+1])
	}
	return c.Redirect("/?"+state.Query()+"&"+q.Encode(), fiber.StatusSeeOther)
}

func redirectTo(c *fiber.Ctx, state calendar.State) error {
	return c.Redirect("/?"+state.Query(), fiber.StatusSeeOther)
}
