// Package view renders the single ticket calendar page.
package view

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"

	"github.com/spec-kit/ticket-calendar/internal/calendar"
	"github.com/spec-kit/ticket-calendar/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageTemplate is the name the page is rendered under.
const PageTemplate = "page"

// NewEngine returns the fiber view engine over the embedded templates.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}

const defaultBadge = "bg-gray-700 text-gray-300"

var badgeClasses = map[domain.TicketStatus]string{
	domain.TicketStatusDevelopment: "bg-blue-900 text-blue-300",
	domain.TicketStatusCEO:         "bg-purple-900 text-purple-300",
	domain.TicketStatusPaymentsWay: "bg-yellow-900 text-yellow-300",
	domain.TicketStatusFinished:    "bg-green-900 text-green-300",
	domain.TicketStatusSupportN1:   defaultBadge,
}

// BadgeClass returns the badge colours for status; unknown statuses get the default.
func BadgeClass(status domain.TicketStatus) string {
	if c, ok := badgeClasses[status]; ok {
		return c
	}
	return defaultBadge
}

// Page is everything the template needs.
type Page struct {
	AppName    string
	Mode       string
	Error      string
	MonthLabel string
	Weekdays   []string
	Weeks      [][]Cell
	SelfHref   string
	PrevHref   string
	NextHref   string
	ListTitle  string
	Selected   string
	State      calendar.State
	Statuses   []domain.TicketStatus
	Tickets    []TicketView
	Edit       *TicketView
}

// Cell is a calendar square with its link.
type Cell struct {
	calendar.DayCell
	Href string
}

// TicketView is a ticket prepared for display.
type TicketView struct {
	ID         string
	Date       string
	TicketID   string
	Status     domain.TicketStatus
	BadgeClass string
	Response   string
	Created    string
	EditHref   string
}

// PageInput carries the data a page is built from.
type PageInput struct {
	AppName  string
	Local    bool
	Error    string
	State    calendar.State
	Grid     calendar.MonthGrid
	Tickets  []domain.Ticket
	Edit     *domain.Ticket
	Locale   calendar.Locale
	Location *time.Location
}

// Build assembles the page model.
func Build(in PageInput) Page {
	p := Page{
		AppName:    in.AppName,
		Mode:       "Modo remoto",
		Error:      in.Error,
		MonthLabel: in.Locale.MonthLabel(in.Grid.Year, in.Grid.Month),
		Weekdays:   in.Locale.WeekdayInitials(),
		SelfHref:   "/?" + in.State.Query(),
		PrevHref:   "/?" + in.State.PrevMonth().Query(),
		NextHref:   "/?" + in.State.NextMonth().Query(),
		ListTitle:  in.Locale.ListTitle(in.State.Selected),
		Selected:   in.State.Selected,
		State:      in.State,
		Statuses:   domain.KnownStatuses(),
	}
	if in.Local {
		p.Mode = "Modo Local (sin conexión)"
	}

	for _, week := range in.Grid.Weeks() {
		row := make([]Cell, 0, len(week))
		for _, c := range week {
			cell := Cell{DayCell: c}
			if !c.Filler {
				cell.Href = "/?" + in.State.Select(c.Date).Query()
			}
			row = append(row, cell)
		}
		p.Weeks = append(p.Weeks, row)
	}

	for _, t := range in.Tickets {
		p.Tickets = append(p.Tickets, ticketView(t, in))
	}
	if in.Edit != nil {
		v := ticketView(*in.Edit, in)
		p.Edit = &v
	}
	return p
}

func ticketView(t domain.Ticket, in PageInput) TicketView {
	return TicketView{
		ID:         t.ID,
		Date:       t.Date,
		TicketID:   t.TicketID,
		Status:     t.Status,
		BadgeClass: BadgeClass(t.Status),
		Response:   t.Response,
		Created:    in.Locale.Timestamp(t.CreatedAt, in.Location),
		EditHref:   "/?" + in.State.Query() + "&edit=" + template.URLQueryEscaper(t.ID),
	}
}
