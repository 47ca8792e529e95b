package service

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ticket-calendar/internal/config"
)

// IDGenerator assigns the opaque identity of new tickets.
type IDGenerator interface {
	NewID() string
}

// MillisIDGenerator issues Unix-millisecond strings. When two tickets are
// created within the same millisecond the later one gets the next value, so
// the sequence is strictly increasing.
type MillisIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewMillisIDGenerator uses now as its clock; nil means time.Now.
func NewMillisIDGenerator(now func() time.Time) *MillisIDGenerator {
	if now == nil {
		now = time.Now
	}
	return &MillisIDGenerator{now: now}
}

func (g *MillisIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// UUIDGenerator issues random version 4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// NewIDGenerator returns the generator named by strategy.
func NewIDGenerator(strategy string, now func() time.Time) IDGenerator {
	if strategy == config.IDStrategyUUID {
		return UUIDGenerator{}
	}
	return NewMillisIDGenerator(now)
}
