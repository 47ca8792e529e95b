package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-calendar/internal/cache"
	"github.com/spec-kit/ticket-calendar/internal/calendar"
	"github.com/spec-kit/ticket-calendar/internal/domain"
	"github.com/spec-kit/ticket-calendar/internal/events"
	"github.com/spec-kit/ticket-calendar/internal/repository"
	apperrors "github.com/spec-kit/ticket-calendar/pkg/util"
)

// maxIDAttempts bounds the retries when a generated id is already taken.
const maxIDAttempts = 5

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	ids        IDGenerator
	now        func() time.Time
	location   *time.Location
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	IDs        IDGenerator
	Clock      func() time.Time
	Location   *time.Location
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	s := &TicketService{
		tickets:    deps.TicketRepo,
		ids:        deps.IDs,
		now:        deps.Clock,
		location:   deps.Location,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.ids == nil {
		s.ids = NewMillisIDGenerator(s.now)
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// ValidateFields enforces what the ticket forms require before a record
// reaches the service.
func ValidateFields(f domain.TicketFields) error {
	if missing := f.MissingFields(); len(missing) > 0 {
		return apperrors.NewMissingFields(missing)
	}
	if date := strings.TrimSpace(f.Date); !domain.ValidDate(date) {
		return apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": date})
	}
	return nil
}

// Today returns the initial page state: today's month with today selected.
func (s *TicketService) Today() calendar.State {
	return calendar.NewState(s.now().In(s.location))
}

// CreateTicket stamps id and creation time and stores the ticket.
func (s *TicketService) CreateTicket(ctx context.Context, fields domain.TicketFields) (domain.Ticket, error) {
	id, err := s.freshID(ctx)
	if err != nil {
		return domain.Ticket{}, err
	}
	ticket := domain.Ticket{
		ID:        id,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}.Apply(normalize(fields))

	all, err := s.tickets.Add(ctx, ticket)
	if err != nil {
		return domain.Ticket{}, mapStoreError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Date:           ticket.Date,
			Label:          ticket.TicketID,
			Status:         ticket.Status,
			CollectionSize: len(all),
		},
	})
	return ticket, nil
}

// UpdateTicket replaces the editable fields of ticket id. found is false when
// the ticket no longer exists; nothing is written in that case.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, fields domain.TicketFields) (domain.Ticket, bool, error) {
	before, found, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, false, mapStoreError(err)
	}
	if !found {
		return domain.Ticket{}, false, nil
	}
	updated, found, err := s.tickets.UpdateByID(ctx, id, normalize(fields))
	if err != nil {
		return domain.Ticket{}, false, mapStoreError(err)
	}
	if !found {
		return domain.Ticket{}, false, nil
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: id,
		Payload: events.TicketUpdatedPayload{
			OldDate:   before.Date,
			NewDate:   updated.Date,
			OldStatus: before.Status,
			NewStatus: updated.Status,
		},
	})
	return updated, true, nil
}

// DeleteTicket removes ticket id; a missing ticket is not an error.
func (s *TicketService) DeleteTicket(ctx context.Context, id string) (bool, error) {
	before, found, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return false, mapStoreError(err)
	}
	if !found {
		return false, nil
	}
	deleted, err := s.tickets.DeleteByID(ctx, id)
	if err != nil {
		return false, mapStoreError(err)
	}
	if deleted {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketDeleted,
			TicketID: id,
			Payload:  events.TicketDeletedPayload{Date: before.Date},
		})
	}
	return deleted, nil
}

// GetTicket fetches one ticket.
func (s *TicketService) GetTicket(ctx context.Context, id string) (domain.Ticket, bool, error) {
	t, found, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, false, mapStoreError(err)
	}
	return t, found, nil
}

// ListForDate returns the tickets of one day, newest first.
func (s *TicketService) ListForDate(ctx context.Context, date string) ([]domain.Ticket, error) {
	list, err := s.tickets.FilterByDate(ctx, date)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return list, nil
}

// Calendar builds the month grid for state.
func (s *TicketService) Calendar(ctx context.Context, state calendar.State) (calendar.MonthGrid, error) {
	dates, err := s.tickets.DatesWithTickets(ctx)
	if err != nil {
		return calendar.MonthGrid{}, mapStoreError(err)
	}
	return calendar.BuildMonthGrid(state.Year, state.Month, state.Selected, dates), nil
}

// ResetCache overwrites the stored document with an empty collection.
func (s *TicketService) ResetCache(ctx context.Context) error {
	if err := s.tickets.Reset(ctx); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.logger.Warn("ticket cache reset")
	s.publishEvent(ctx, events.Event{Type: events.EventCacheReset})
	return nil
}

func (s *TicketService) freshID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.ids.NewID()
		_, taken, err := s.tickets.FindByID(ctx, id)
		if err != nil {
			return "", mapStoreError(err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", apperrors.NewInternalError(fmt.Errorf("no free ticket id after %d attempts", maxIDAttempts))
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now().UTC()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func normalize(f domain.TicketFields) domain.TicketFields {
	f.Date = strings.TrimSpace(f.Date)
	f.TicketID = strings.TrimSpace(f.TicketID)
	f.Status = domain.TicketStatus(strings.TrimSpace(string(f.Status)))
	return f
}

func mapStoreError(err error) error {
	if errors.Is(err, cache.ErrCorruptCache) {
		return apperrors.NewCorruptCache(err)
	}
	return apperrors.NewInternalError(err)
}
