package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bigschedule/internal/model"
	"bigschedule/internal/timeline"
)

const agendaColumns = `id, title, description, owner_id, is_public, created_at`
const agendaItemColumns = `id, agenda_id, title, description, start_time, end_time, location, created_at`

// ValidateItemWindow refuses items whose parsed start is after their parsed
// end. Items missing either bound, or carrying unparsable timestamps, pass:
// the timeline core degrades those to "upcoming" on its own.
func ValidateItemWindow(item model.AgendaItem) error {
	start, okStart := timeline.ParseInstant(item.StartTime)
	end, okEnd := timeline.ParseInstant(item.EndTime)
	if okStart && okEnd && start.After(end) {
		return fmt.Errorf("item %q: %w", item.Title, ErrInvalidTimeWindow)
	}
	return nil
}

// GetAgenda loads one agenda with its items (ordered by start time) and its
// author when the owner row exists. Results are served from an LRU cache
// that writes invalidate.
func (s *Store) GetAgenda(ctx context.Context, id string) (*model.Agenda, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cached, nil
	}

	row := s.pool.QueryRow(ctx, `SELECT `+agendaColumns+` FROM agendas WHERE id = $1`, id)
	agenda, err := scanAgenda(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("agenda %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get agenda: %w", err)
	}

	items, err := s.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	agenda.AgendaItems = items

	author, err := s.GetUser(ctx, agenda.OwnerID)
	if err == nil {
		agenda.Author = author
	} else if !isNotFound(err) {
		return nil, err
	}

	s.cache.Add(id, agenda)
	return agenda, nil
}

// ListAgendas returns every agenda row without items.
func (s *Store) ListAgendas(ctx context.Context) ([]model.Agenda, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+agendaColumns+` FROM agendas ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list agendas: %w", err)
	}
	defer rows.Close()

	agendas := []model.Agenda{}
	for rows.Next() {
		agenda, err := scanAgenda(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agenda: %w", err)
		}
		agendas = append(agendas, *agenda)
	}
	return agendas, rows.Err()
}

// UpsertAgenda inserts or updates an agenda and, when provided, its items,
// then re-reads the item list so the caller sees exactly what was stored.
// Blank ids get fresh uuids; blank createdAt gets the current instant.
func (s *Store) UpsertAgenda(ctx context.Context, agenda model.Agenda) (*model.Agenda, error) {
	if agenda.Title == "" || agenda.OwnerID == "" {
		return nil, fmt.Errorf("agenda title and ownerId are required")
	}
	for _, item := range agenda.AgendaItems {
		if err := ValidateItemWindow(item); err != nil {
			return nil, err
		}
	}

	if agenda.ID == "" {
		agenda.ID = uuid.NewString()
	}
	if agenda.CreatedAt == "" {
		agenda.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
INSERT INTO agendas (id, title, description, owner_id, is_public, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    owner_id = EXCLUDED.owner_id,
    is_public = EXCLUDED.is_public,
    created_at = EXCLUDED.created_at
`, agenda.ID, agenda.Title, agenda.Description, agenda.OwnerID, agenda.IsPublic, agenda.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert agenda: %w", err)
	}

	for _, item := range agenda.AgendaItems {
		item.AgendaID = agenda.ID
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.CreatedAt == "" {
			item.CreatedAt = time.Now().UTC().Format(time.RFC3339)
		}
		_, err = tx.Exec(ctx, `
INSERT INTO agenda_items (id, agenda_id, title, description, start_time, end_time, location, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
    agenda_id = EXCLUDED.agenda_id,
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    start_time = EXCLUDED.start_time,
    end_time = EXCLUDED.end_time,
    location = EXCLUDED.location,
    created_at = EXCLUDED.created_at
`, item.ID, item.AgendaID, item.Title, item.Description, item.StartTime, item.EndTime, item.Location, item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("upsert agenda item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.invalidate(agenda.ID)
	s.logger.Info("upserted agenda %s (%d items)", agenda.ID, len(agenda.AgendaItems))

	items, err := s.listItems(ctx, agenda.ID)
	if err != nil {
		return nil, err
	}
	agenda.AgendaItems = items
	return &agenda, nil
}

// DeleteAgenda removes an agenda; its items and shares cascade. Deleting an
// id that is already gone is not an error.
func (s *Store) DeleteAgenda(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM agendas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete agenda: %w", err)
	}
	s.invalidate(id)
	s.logger.Info("deleted agenda %s", id)
	return nil
}

// DeleteAgendaItem removes a single item from its agenda.
func (s *Store) DeleteAgendaItem(ctx context.Context, id string) error {
	var agendaID string
	err := s.pool.QueryRow(ctx, `DELETE FROM agenda_items WHERE id = $1 RETURNING agenda_id`, id).Scan(&agendaID)
	if err != nil {
		if isNoRows(err) {
			return nil
		}
		return fmt.Errorf("delete agenda item: %w", err)
	}
	s.invalidate(agendaID)
	return nil
}

func (s *Store) listItems(ctx context.Context, agendaID string) ([]model.AgendaItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+agendaItemColumns+` FROM agenda_items WHERE agenda_id = $1 ORDER BY start_time, id`, agendaID)
	if err != nil {
		return nil, fmt.Errorf("list agenda items: %w", err)
	}
	defer rows.Close()

	items := []model.AgendaItem{}
	for rows.Next() {
		var item model.AgendaItem
		if err := rows.Scan(&item.ID, &item.AgendaID, &item.Title, &item.Description,
			&item.StartTime, &item.EndTime, &item.Location, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan agenda item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanAgenda(row pgx.Row) (*model.Agenda, error) {
	var agenda model.Agenda
	err := row.Scan(&agenda.ID, &agenda.Title, &agenda.Description,
		&agenda.OwnerID, &agenda.IsPublic, &agenda.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &agenda, nil
}
