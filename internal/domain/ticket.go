package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar key format used for Ticket.Date.
const DateLayout = "2006-01-02"

// TicketStatus is the routing state shown as a badge next to a ticket.
type TicketStatus string

const (
	TicketStatusDevelopment TicketStatus = "Desarrollo"
	TicketStatusCEO         TicketStatus = "CEO"
	TicketStatusPaymentsWay TicketStatus = "Payments Way"
	TicketStatusFinished    TicketStatus = "Finalizado"
	TicketStatusSupportN1   TicketStatus = "Soporte N1"
)

var knownStatuses = []TicketStatus{
	TicketStatusDevelopment,
	TicketStatusCEO,
	TicketStatusPaymentsWay,
	TicketStatusFinished,
	TicketStatusSupportN1,
}

// KnownStatuses returns the statuses offered by the forms, in display order.
func KnownStatuses() []TicketStatus {
	out := make([]TicketStatus, len(knownStatuses))
	copy(out, knownStatuses)
	return out
}

// Known reports whether the status belongs to the display enumeration.
// Stored tickets may carry other values; they render with the default badge.
func (s TicketStatus) Known() bool {
	for _, k := range knownStatuses {
		if s == k {
			return true
		}
	}
	return false
}

// Ticket is one support-ticket record tied to a calendar day.
//
// Tickets read from a stored document remember how createdAt was written
// when it was not canonical RFC 3339, and write it back unchanged.
type Ticket struct {
	ID        string       `json:"id"`
	Date      string       `json:"date"`
	TicketID  string       `json:"ticketId"`
	Status    TicketStatus `json:"status"`
	Response  string       `json:"response"`
	CreatedAt time.Time    `json:"createdAt"`

	createdAtRaw string
}

// TicketFields holds the user-editable part of a ticket.
type TicketFields struct {
	Date     string
	TicketID string
	Status   TicketStatus
	Response string
}

// Fields returns the editable fields of t.
func (t Ticket) Fields() TicketFields {
	return TicketFields{
		Date:     t.Date,
		TicketID: t.TicketID,
		Status:   t.Status,
		Response: t.Response,
	}
}

// Apply replaces every editable field; ID and CreatedAt are kept.
func (t Ticket) Apply(f TicketFields) Ticket {
	t.Date = f.Date
	t.TicketID = f.TicketID
	t.Status = f.Status
	t.Response = f.Response
	return t
}

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// MissingFields lists the required fields that are blank.
func (f TicketFields) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(f.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(f.TicketID) == "" {
		missing = append(missing, "ticketId")
	}
	if strings.TrimSpace(string(f.Status)) == "" {
		missing = append(missing, "status")
	}
	if strings.TrimSpace(f.Response) == "" {
		missing = append(missing, "response")
	}
	return missing
}
