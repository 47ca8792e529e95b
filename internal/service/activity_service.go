package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-calendar/internal/events"
	"github.com/spec-kit/ticket-calendar/internal/observability"
)

// ActivityService records every change to the ticket collection.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *ActivityService {
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventTicketCreated, a.handleTicketCreated)
	a.dispatcher.Subscribe(events.EventTicketUpdated, a.handleTicketUpdated)
	a.dispatcher.Subscribe(events.EventTicketDeleted, a.handleTicketDeleted)
	a.dispatcher.Subscribe(events.EventCacheReset, a.handleCacheReset)
}

func (a *ActivityService) handleTicketCreated(ctx context.Context, event events.Event) error {
	a.logger.Info("TicketCreated", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	a.metrics.RecordEvent(string(event.Type))
	return nil
}

func (a *ActivityService) handleTicketUpdated(ctx context.Context, event events.Event) error {
	a.logger.Info("TicketUpdated", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	a.metrics.RecordEvent(string(event.Type))
	return nil
}

func (a *ActivityService) handleTicketDeleted(ctx context.Context, event events.Event) error {
	a.logger.Info("TicketDeleted", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	a.metrics.RecordEvent(string(event.Type))
	return nil
}

func (a *ActivityService) handleCacheReset(ctx context.Context, event events.Event) error {
	a.logger.Warn("CacheReset", zap.String("event_id", event.ID))
	a.metrics.RecordEvent(string(event.Type))
	return nil
}
