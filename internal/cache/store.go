// Package cache persists the ticket collection as a single serialized
// document in one named slot of a key-value backend.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-calendar/internal/domain"
)

// ErrCorruptCache is returned by Load when the stored document cannot be
// decoded and the store runs with PolicyError.
var ErrCorruptCache = errors.New("corrupt ticket cache")

// CorruptPolicy decides what Load does with a malformed document.
type CorruptPolicy string

const (
	// PolicyEmpty logs the problem and loads an empty collection.
	PolicyEmpty CorruptPolicy = "empty"
	// PolicyError returns an error wrapping ErrCorruptCache.
	PolicyError CorruptPolicy = "error"
)

// Store loads and saves the whole ticket collection.
type Store interface {
	// Load returns the stored tickets, or an empty slice when the slot is absent.
	Load(ctx context.Context) ([]domain.Ticket, error)
	// Save overwrites the slot with the full collection.
	Save(ctx context.Context, tickets []domain.Ticket) error
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// codec turns the collection into the slot document and back.
type codec struct {
	slot   string
	policy CorruptPolicy
	logger *zap.Logger
}

func newCodec(slot string, policy CorruptPolicy, logger *zap.Logger) codec {
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy == "" {
		policy = PolicyEmpty
	}
	return codec{slot: slot, policy: policy, logger: logger}
}

func (c codec) encode(tickets []domain.Ticket) ([]byte, error) {
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	data, err := json.Marshal(tickets)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.slot, err)
	}
	return data, nil
}

func (c codec) decode(data []byte) ([]domain.Ticket, error) {
	if len(data) == 0 {
		return []domain.Ticket{}, nil
	}
	var tickets []domain.Ticket
	if err := json.Unmarshal(data, &tickets); err != nil {
		if c.policy == PolicyError {
			return nil, fmt.Errorf("%w: slot %s: %v", ErrCorruptCache, c.slot, err)
		}
		c.logger.Warn("discarding unreadable ticket document",
			zap.String("slot", c.slot),
			zap.Int("bytes", len(data)),
			zap.Error(err))
		return []domain.Ticket{}, nil
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}
