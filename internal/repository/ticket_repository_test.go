package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/ticket-calendar/internal/cache"
	"github.com/spec-kit/ticket-calendar/internal/domain"
)

var base = time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

func ticket(id, date string, offset time.Duration) domain.Ticket {
	return domain.Ticket{
		ID:        id,
		Date:      date,
		TicketID:  "T-" + id,
		Status:    domain.TicketStatusDevelopment,
		Response:  "response " + id,
		CreatedAt: base.Add(offset),
	}
}

func ids(tickets []domain.Ticket) []string {
	out := make([]string, len(tickets))
	for i, t := range tickets {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type failingStore struct {
	cache.Store
	failSave bool
}

func (f *failingStore) Save(ctx context.Context, tickets []domain.Ticket) error {
	if f.failSave {
		return errors.New("disk full")
	}
	return f.Store.Save(ctx, tickets)
}

func TestScenarioAddAndFilter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := cache.NewMemoryStore(cache.PolicyEmpty, nil)
	repo := NewTicketRepository(store, Options{})

	all, err := repo.All(ctx)
	if err != nil || len(all) != 0 {
		t.Fatalf("empty storage: got %v, %v", all, err)
	}

	created := domain.Ticket{
		ID:        "1",
		Date:      "2024-03-05",
		TicketID:  "T1",
		Status:    domain.TicketStatusDevelopment,
		Response:  "hi",
		CreatedAt: base,
	}
	after, err := repo.Add(ctx, created)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(after) != 1 {
		t.Fatalf("Add returned %d tickets", len(after))
	}

	day, err := repo.FilterByDate(ctx, "2024-03-05")
	if err != nil || len(day) != 1 || day[0].TicketID != "T1" {
		t.Fatalf("FilterByDate(2024-03-05) = %v, %v", day, err)
	}
	other, err := repo.FilterByDate(ctx, "2024-03-06")
	if err != nil || other == nil || len(other) != 0 {
		t.Fatalf("FilterByDate(2024-03-06) = %#v, %v", other, err)
	}

	persisted, err := store.Load(ctx)
	if err != nil || len(persisted) != 1 {
		t.Fatalf("store not written: %v, %v", persisted, err)
	}
}

func TestScenarioNewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTicketRepository(cache.NewMemoryStore(cache.PolicyEmpty, nil), Options{})

	first := ticket("1", "2024-03-05", 0)
	second := ticket("2", "2024-03-05", time.Minute)
	for _, tk := range []domain.Ticket{first, second} {
		if _, err := repo.Add(ctx, tk); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.FilterByDate(ctx, "2024-03-05")
	if err != nil {
		t.Fatal(err)
	}
	if !equalIDs(ids(got), []string{"2", "1"}) {
		t.Fatalf("order = %v, want [2 1]", ids(got))
	}
}

func TestScenarioDeleteThenReload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := cache.NewMemoryStore(cache.PolicyEmpty, nil)
	repo := NewTicketRepository(store, Options{})

	if _, err := repo.Add(ctx, ticket("1", "2024-03-05", 0)); err != nil {
		t.Fatal(err)
	}
	found, err := repo.DeleteByID(ctx, "1")
	if err != nil || !found {
		t.Fatalf("DeleteByID = %v, %v", found, err)
	}
	all, _ := repo.All(ctx)
	if len(all) != 0 {
		t.Fatalf("repository not empty: %v", all)
	}

	fresh := NewTicketRepository(store, Options{})
	all, err = fresh.All(ctx)
	if err != nil || len(all) != 0 {
		t.Fatalf("reloaded collection = %v, %v", all, err)
	}
}

func TestFilterByDateSelectsExactSubset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTicketRepository(cache.NewMemoryStore(cache.PolicyEmpty, nil), Options{})

	seed := []domain.Ticket{
		ticket("a", "2024-03-05", 3*time.Hour),
		ticket("b", "2024-03-06", 0),
		ticket("c", "2024-03-05", time.Hour),
		ticket("d", "2024-03-05", 5*time.Hour),
		ticket("e", "2024-04-05", 0),
		ticket("f", "2024-03-05", time.Hour),
	}
	for _, tk := range seed {
		if _, err := repo.Add(ctx, tk); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		date string
		want []string
	}{
		{"2024-03-05", []string{"d", "a", "c", "f"}},
		{"2024-03-06", []string{"b"}},
		{"2024-04-05", []string{"e"}},
		{"2024-03-07", []string{}},
	}
	for _, tt := range tests {
		got, err := repo.FilterByDate(ctx, tt.date)
		if err != nil {
			t.Fatal(err)
		}
		if !equalIDs(ids(got), tt.want) {
			t.Errorf("FilterByDate(%s) = %v, want %v", tt.date, ids(got), tt.want)
		}
	}
}

func TestUpdateByIDPreservesIdentity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := cache.NewMemoryStore(cache.PolicyEmpty, nil)
	repo := NewTicketRepository(store, Options{})

	original := ticket("1", "2024-03-05", 0)
	if _, err := repo.Add(ctx, original); err != nil {
		t.Fatal(err)
	}

	fields := domain.TicketFields{Date: "2024-03-08", TicketID: "T9", Status: domain.TicketStatusCEO, Response: "moved"}
	updated, found, err := repo.UpdateByID(ctx, "1", fields)
	if err != nil || !found {
		t.Fatalf("UpdateByID = %v, %v", found, err)
	}
	if updated.ID != "1" || !updated.CreatedAt.Equal(original.CreatedAt) {
		t.Fatalf("identity changed: %+v", updated)
	}
	if updated.Fields() != fields {
		t.Fatalf("fields = %+v, want %+v", updated.Fields(), fields)
	}

	persisted, _ := store.Load(ctx)
	if len(persisted) != 1 || persisted[0].Date != "2024-03-08" {
		t.Fatalf("persisted = %+v", persisted)
	}
	old, _ := repo.FilterByDate(ctx, "2024-03-05")
	if len(old) != 0 {
		t.Fatalf("ticket still listed on old date: %v", old)
	}
}

func TestMutationsOnMissingIDAreNoOps(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := cache.NewMemoryStore(cache.PolicyEmpty, nil)
	repo := NewTicketRepository(store, Options{})
	if _, err := repo.Add(ctx, ticket("1", "2024-03-05", 0)); err != nil {
		t.Fatal(err)
	}
	before, _ := store.Raw()

	if _, found, err := repo.UpdateByID(ctx, "missing", domain.TicketFields{Date: "2024-01-01"}); err != nil || found {
		t.Fatalf("UpdateByID(missing) = %v, %v", found, err)
	}
	if found, err := repo.DeleteByID(ctx, "missing"); err != nil || found {
		t.Fatalf("DeleteByID(missing) = %v, %v", found, err)
	}
	if _, found, err := repo.FindByID(ctx, "missing"); err != nil || found {
		t.Fatalf("FindByID(missing) = %v, %v", found, err)
	}

	after, _ := store.Raw()
	if string(before) != string(after) {
		t.Fatal("document changed by no-op mutations")
	}
}

func TestFailedSaveKeepsCollection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := &failingStore{Store: cache.NewMemoryStore(cache.PolicyEmpty, nil)}
	repo := NewTicketRepository(store, Options{})
	if _, err := repo.Add(ctx, ticket("1", "2024-03-05", 0)); err != nil {
		t.Fatal(err)
	}

	store.failSave = true
	if _, err := repo.Add(ctx, ticket("2", "2024-03-05", 0)); err == nil {
		t.Fatal("expected save error")
	}
	if _, _, err := repo.UpdateByID(ctx, "1", domain.TicketFields{Date: "2024-12-31"}); err == nil {
		t.Fatal("expected save error")
	}
	if _, err := repo.DeleteByID(ctx, "1"); err == nil {
		t.Fatal("expected save error")
	}

	all, _ := repo.All(ctx)
	if len(all) != 1 || all[0].Date != "2024-03-05" {
		t.Fatalf("collection changed after failed saves: %+v", all)
	}
}

func TestCorruptStoreSurfacesUntilReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := cache.NewMemoryStore(cache.PolicyError, nil)
	store.SetRaw([]byte("[{"))
	repo := NewTicketRepository(store, Options{})

	if _, err := repo.All(ctx); !errors.Is(err, cache.ErrCorruptCache) {
		t.Fatalf("All: %v", err)
	}
	if _, err := repo.Add(ctx, ticket("1", "2024-03-05", 0)); !errors.Is(err, cache.ErrCorruptCache) {
		t.Fatalf("Add: %v", err)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, err := repo.Add(ctx, ticket("1", "2024-03-05", 0)); err != nil {
		t.Fatalf("Add after reset: %v", err)
	}
	raw, _ := store.Raw()
	if len(raw) == 0 || raw[0] != '[' {
		t.Fatalf("document = %q", raw)
	}
}

func TestReloadAfterWrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := cache.NewMemoryStore(cache.PolicyEmpty, nil)
	repo := NewTicketRepository(store, Options{ReloadAfterWrite: true})

	got, err := repo.Add(ctx, ticket("1", "2024-03-05", 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("Add = %+v", got)
	}
}

func TestDatesWithTickets(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTicketRepository(cache.NewMemoryStore(cache.PolicyEmpty, nil), Options{})
	for _, tk := range []domain.Ticket{
		ticket("1", "2024-03-05", 0),
		ticket("2", "2024-03-05", time.Second),
		ticket("3", "2024-03-20", 0),
	} {
		if _, err := repo.Add(ctx, tk); err != nil {
			t.Fatal(err)
		}
	}
	dates, err := repo.DatesWithTickets(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 2 || !dates["2024-03-05"] || !dates["2024-03-20"] {
		t.Fatalf("dates = %v", dates)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTicketRepository(cache.NewMemoryStore(cache.PolicyEmpty, nil), Options{})
	if _, err := repo.Add(ctx, ticket("1", "2024-03-05", 0)); err != nil {
		t.Fatal(err)
	}
	all, _ := repo.All(ctx)
	all[0].TicketID = "mutated"
	found, _, _ := repo.FindByID(ctx, "1")
	if found.TicketID == "mutated" {
		t.Fatal("All exposed internal storage")
	}
}
