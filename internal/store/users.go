package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bigschedule/internal/model"
)

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// GetUser loads one user row.
func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, role, created_at, phone, telegram_id FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt, &user.Phone, &user.TelegramID)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// UpsertUser records the identity the provider reported so agendas can link
// back to an author row.
func (s *Store) UpsertUser(ctx context.Context, user model.User) (*model.User, error) {
	if user.Name == "" {
		return nil, fmt.Errorf("user name is required")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if user.CreatedAt == "" {
		user.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err := s.pool.Exec(ctx, `
INSERT INTO users (id, name, email, role, created_at, phone, telegram_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    email = EXCLUDED.email,
    role = EXCLUDED.role,
    phone = EXCLUDED.phone,
    telegram_id = EXCLUDED.telegram_id
`, user.ID, user.Name, user.Email, user.Role, user.CreatedAt, user.Phone, user.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	// Cached agendas embed their author, so a profile change has to push
	// this user's agendas out of the cache.
	if err := s.invalidateByOwner(ctx, user.ID); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) invalidateByOwner(ctx context.Context, ownerID string) error {
	rows, err := s.pool.Query(ctx, `SELECT id FROM agendas WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("list agendas by owner: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var agendaID string
		if err := rows.Scan(&agendaID); err != nil {
			return fmt.Errorf("scan agenda id: %w", err)
		}
		s.invalidate(agendaID)
	}
	return rows.Err()
}
