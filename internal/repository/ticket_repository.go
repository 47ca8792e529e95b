package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/spec-kit/ticket-calendar/internal/cache"
	"github.com/spec-kit/ticket-calendar/internal/domain"
)

// TicketRepository keeps the ticket collection in memory and writes the whole
// collection through to the cache store after every mutation.
type TicketRepository interface {
	Add(ctx context.Context, ticket domain.Ticket) ([]domain.Ticket, error)
	UpdateByID(ctx context.Context, id string, fields domain.TicketFields) (domain.Ticket, bool, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (domain.Ticket, bool, error)
	FilterByDate(ctx context.Context, date string) ([]domain.Ticket, error)
	All(ctx context.Context) ([]domain.Ticket, error)
	DatesWithTickets(ctx context.Context) (map[string]bool, error)
	Reset(ctx context.Context) error
}

// Options tunes repository behavior.
type Options struct {
	// ReloadAfterWrite re-reads the store after each save instead of trusting
	// the collection that was just written.
	ReloadAfterWrite bool
}

type ticketRepository struct {
	store  cache.Store
	opts   Options
	mu     sync.Mutex
	loaded bool
	items  []domain.Ticket
}

// NewTicketRepository instantiates repository. The store is read lazily on
// first use so a corrupt document surfaces on the request that touches it.
func NewTicketRepository(store cache.Store, opts Options) TicketRepository {
	return &ticketRepository{store: store, opts: opts}
}

func (r *ticketRepository) ensureLoaded(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	items, err := r.store.Load(ctx)
	if err != nil {
		return err
	}
	r.items = items
	r.loaded = true
	return nil
}

// commit saves next and makes it the current collection. On failure the
// current collection is left untouched.
func (r *ticketRepository) commit(ctx context.Context, next []domain.Ticket) error {
	if err := r.store.Save(ctx, next); err != nil {
		return err
	}
	if r.opts.ReloadAfterWrite {
		reloaded, err := r.store.Load(ctx)
		if err != nil {
			r.loaded = false
			return err
		}
		next = reloaded
	}
	r.items = next
	return nil
}

func (r *ticketRepository) snapshot() []domain.Ticket {
	return slices.Clone(r.items)
}

func (r *ticketRepository) Add(ctx context.Context, ticket domain.Ticket) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	next := append(slices.Clone(r.items), ticket)
	if err := r.commit(ctx, next); err != nil {
		return nil, err
	}
	return r.snapshot(), nil
}

func (r *ticketRepository) UpdateByID(ctx context.Context, id string, fields domain.TicketFields) (domain.Ticket, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return domain.Ticket{}, false, err
	}
	idx := r.indexOf(id)
	if idx < 0 {
		return domain.Ticket{}, false, nil
	}
	next := slices.Clone(r.items)
	next[idx] = next[idx].Apply(fields)
	updated := next[idx]
	if err := r.commit(ctx, next); err != nil {
		return domain.Ticket{}, false, err
	}
	return updated, true, nil
}

func (r *ticketRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return false, err
	}
	idx := r.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	next := slices.Delete(slices.Clone(r.items), idx, idx+1)
	if err := r.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id string) (domain.Ticket, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return domain.Ticket{}, false, err
	}
	idx := r.indexOf(id)
	if idx < 0 {
		return domain.Ticket{}, false, nil
	}
	return r.items[idx], true, nil
}

// FilterByDate returns the tickets of one day, newest first. Tickets with
// equal timestamps keep their storage order.
func (r *ticketRepository) FilterByDate(ctx context.Context, date string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	result := []domain.Ticket{}
	for _, t := range r.items {
		if t.Date == date {
			result = append(result, t)
		}
	}
	slices.SortStableFunc(result, func(a, b domain.Ticket) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result, nil
}

func (r *ticketRepository) All(ctx context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return r.snapshot(), nil
}

func (r *ticketRepository) DatesWithTickets(ctx context.Context) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	dates := make(map[string]bool, len(r.items))
	for _, t := range r.items {
		dates[t.Date] = true
	}
	return dates, nil
}

// Reset overwrites the slot with an empty collection without reading it.
func (r *ticketRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Save(ctx, []domain.Ticket{}); err != nil {
		return err
	}
	r.items = []domain.Ticket{}
	r.loaded = true
	return nil
}

func (r *ticketRepository) indexOf(id string) int {
	return slices.IndexFunc(r.items, func(t domain.Ticket) bool { return t.ID == id })
}
