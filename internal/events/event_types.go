package events

import (
	"time"

	"github.com/spec-kit/ticket-calendar/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
	EventTicketDeleted EventType = "ticket_deleted"
	EventCacheReset    EventType = "cache_reset"
)

// Event represents a change to the ticket collection.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Date           string              `json:"date"`
	Label          string              `json:"ticket_label"`
	Status         domain.TicketStatus `json:"status"`
	CollectionSize int                 `json:"collection_size"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	OldDate   string              `json:"old_date"`
	NewDate   string              `json:"new_date"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	Date string `json:"date"`
}
