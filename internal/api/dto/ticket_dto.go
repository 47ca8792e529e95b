package dto

import (
	"time"

	"github.com/spec-kit/ticket-calendar/internal/calendar"
	"github.com/spec-kit/ticket-calendar/internal/domain"
)

// TicketRequest is the create and edit payload. The same struct binds JSON
// bodies and url-encoded form posts.
type TicketRequest struct {
	Date     string              `json:"date" form:"date"`
	TicketID string              `json:"ticketId" form:"ticketId"`
	Status   domain.TicketStatus `json:"status" form:"status"`
	Response string              `json:"response" form:"response"`
}

// Fields converts the request to the editable ticket fields.
func (r TicketRequest) Fields() domain.TicketFields {
	return domain.TicketFields{
		Date:     r.Date,
		TicketID: r.TicketID,
		Status:   r.Status,
		Response: r.Response,
	}
}

// TicketResponse mirrors the stored ticket layout.
type TicketResponse struct {
	ID          string              `json:"id"`
	Date        string              `json:"date"`
	TicketID    string              `json:"ticketId"`
	Status      domain.TicketStatus `json:"status"`
	KnownStatus bool                `json:"knownStatus"`
	Response    string              `json:"response"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// TicketListResponse is the list for one day.
type TicketListResponse struct {
	Date    string           `json:"date"`
	Title   string           `json:"title"`
	Tickets []TicketResponse `json:"tickets"`
}

// CalendarResponse is one month grid plus navigation targets.
type CalendarResponse struct {
	Year     int                `json:"year"`
	Month    int                `json:"month"`
	Label    string             `json:"label"`
	Selected string             `json:"selected"`
	Weekdays []string           `json:"weekdays"`
	Cells    []calendar.DayCell `json:"cells"`
	Prev     MonthRef           `json:"prev"`
	Next     MonthRef           `json:"next"`
}

// MonthRef points at a neighbouring month.
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}
