package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-calendar/internal/domain"
)

// PgxQuerier is the part of *pgxpool.Pool the store needs.
type PgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// PostgresStore keeps the document in one row of the ticket_cache table.
// The document column is TEXT so a malformed document is stored as-is and
// detected on load.
type PostgresStore struct {
	db    PgxQuerier
	slot  string
	codec codec
}

// NewPostgresStore returns a store bound to the row keyed by slot.
func NewPostgresStore(db PgxQuerier, slot string, policy CorruptPolicy, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, slot: slot, codec: newCodec("postgres:"+slot, policy, logger)}
}

func (s *PostgresStore) Load(ctx context.Context) ([]domain.Ticket, error) {
	const query = `SELECT document FROM ticket_cache WHERE slot=$1`
	var document string
	err := s.db.QueryRow(ctx, query, s.slot).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return []domain.Ticket{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select slot %s: %w", s.slot, err)
	}
	return s.codec.decode([]byte(document))
}

func (s *PostgresStore) Save(ctx context.Context, tickets []domain.Ticket) error {
	data, err := s.codec.encode(tickets)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO ticket_cache (slot, document, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (slot) DO UPDATE SET document=EXCLUDED.document, updated_at=NOW()`
	if _, err := s.db.Exec(ctx, query, s.slot, string(data)); err != nil {
		return fmt.Errorf("upsert slot %s: %w", s.slot, err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
