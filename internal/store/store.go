// Package store persists agendas in Postgres. It owns the translation
// between the frontend's camelCase records and the snake_case schema, id
// assignment for new rows, and the start<=end guard on agenda item windows.
//
// Timestamps are stored as the literal strings the frontend sent. Timeline
// grouping is lexical on those strings, so round-tripping them through a
// timestamp column would quietly renormalize offsets and move items between
// day buckets.
package store

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bigschedule/internal/logging"
	"bigschedule/internal/model"
)

const agendaCacheSize = 256

// ErrNotFound reports a lookup for an id that has no row.
var ErrNotFound = errors.New("not found")

// ErrInvalidTimeWindow reports an agenda item whose start time is after its
// end time. Such items are refused at this boundary so the timeline core
// never has to decide what "active" means for an inverted window.
var ErrInvalidTimeWindow = errors.New("agenda item start time is after end time")

// Store is a Postgres-backed persistence service for agendas.
type Store struct {
	pool   *pgxpool.Pool
	cache  *lru.Cache[string, *model.Agenda]
	logger logging.Logger
}

// New constructs a Store on the given pool.
func New(pool *pgxpool.Pool) (*Store, error) {
	cache, err := lru.New[string, *model.Agenda](agendaCacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{
		pool:   pool,
		cache:  cache,
		logger: logging.NewComponentLogger("Store"),
	}, nil
}

// EnsureSchema creates the tables and indexes if needed.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("store not initialized")
	}
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL DEFAULT '',
    role TEXT NOT NULL DEFAULT 'user',
    created_at TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    telegram_id TEXT NOT NULL DEFAULT ''
);`,
		`CREATE TABLE IF NOT EXISTS agendas (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    owner_id TEXT NOT NULL,
    is_public BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TEXT NOT NULL DEFAULT ''
);`,
		`CREATE TABLE IF NOT EXISTS agenda_items (
    id TEXT PRIMARY KEY,
    agenda_id TEXT NOT NULL REFERENCES agendas (id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    start_time TEXT NOT NULL DEFAULT '',
    end_time TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT ''
);`,
		`CREATE TABLE IF NOT EXISTS shared_agendas (
    id TEXT PRIMARY KEY,
    agenda_id TEXT NOT NULL REFERENCES agendas (id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    permission TEXT NOT NULL DEFAULT 'view',
    shared_at TEXT NOT NULL DEFAULT ''
);`,
		`CREATE TABLE IF NOT EXISTS event_displays (
    id TEXT PRIMARY KEY,
    agenda_item_id TEXT NOT NULL REFERENCES agenda_items (id) ON DELETE CASCADE,
    color_code TEXT NOT NULL,
    icon TEXT NOT NULL DEFAULT '',
    display_order INTEGER NOT NULL DEFAULT 0
);`,
		`CREATE INDEX IF NOT EXISTS idx_agenda_items_agenda ON agenda_items (agenda_id, start_time);`,
		`CREATE INDEX IF NOT EXISTS idx_shared_agendas_agenda ON shared_agendas (agenda_id);`,
		`CREATE INDEX IF NOT EXISTS idx_shared_agendas_user ON shared_agendas (user_id);`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) invalidate(agendaID string) {
	s.cache.Remove(agendaID)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
