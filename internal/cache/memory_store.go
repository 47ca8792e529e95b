package cache

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-calendar/internal/domain"
)

// MemoryStore holds the document in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	data    []byte
	present bool
	codec   codec
}

// NewMemoryStore returns an empty in-memory slot.
func NewMemoryStore(policy CorruptPolicy, logger *zap.Logger) *MemoryStore {
	return &MemoryStore{codec: newCodec("memory", policy, logger)}
}

func (s *MemoryStore) Load(ctx context.Context) ([]domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	data, present := s.data, s.present
	s.mu.Unlock()
	if !present {
		return []domain.Ticket{}, nil
	}
	return s.codec.decode(data)
}

func (s *MemoryStore) Save(ctx context.Context, tickets []domain.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := s.codec.encode(tickets)
	if err != nil {
		return err
	}
	s.SetRaw(data)
	return nil
}

// Raw returns a copy of the stored document and whether the slot exists.
func (s *MemoryStore) Raw() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return nil, false
	}
	return append([]byte(nil), s.data...), true
}

// SetRaw overwrites the slot with an arbitrary document.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.present = true
}
