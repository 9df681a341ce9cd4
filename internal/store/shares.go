package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bigschedule/internal/model"
)

// ShareAgenda grants a user access to an agenda. Sharing the same agenda
// with the same user again updates the permission in place.
func (s *Store) ShareAgenda(ctx context.Context, share model.SharedAgenda) (*model.SharedAgenda, error) {
	if share.AgendaID == "" || share.UserID == "" {
		return nil, fmt.Errorf("agendaId and userId are required")
	}
	switch share.Permission {
	case model.PermissionView, model.PermissionEdit, model.PermissionManage:
	case "":
		share.Permission = model.PermissionView
	default:
		return nil, fmt.Errorf("unknown permission %q", share.Permission)
	}

	if share.ID == "" {
		share.ID = uuid.NewString()
	}
	if share.SharedAt == "" {
		share.SharedAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err := s.pool.Exec(ctx, `
INSERT INTO shared_agendas (id, agenda_id, user_id, permission, shared_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET permission = EXCLUDED.permission
`, share.ID, share.AgendaID, share.UserID, share.Permission, share.SharedAt)
	if err != nil {
		return nil, fmt.Errorf("share agenda: %w", err)
	}

	s.invalidate(share.AgendaID)
	return &share, nil
}

// ListShares returns the shares of one agenda.
func (s *Store) ListShares(ctx context.Context, agendaID string) ([]model.SharedAgenda, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, agenda_id, user_id, permission, shared_at FROM shared_agendas WHERE agenda_id = $1 ORDER BY shared_at, id`,
		agendaID)
	if err != nil {
		return nil, fmt.Errorf("list shares: %w", err)
	}
	defer rows.Close()

	shares := []model.SharedAgenda{}
	for rows.Next() {
		var share model.SharedAgenda
		if err := rows.Scan(&share.ID, &share.AgendaID, &share.UserID, &share.Permission, &share.SharedAt); err != nil {
			return nil, fmt.Errorf("scan share: %w", err)
		}
		shares = append(shares, share)
	}
	return shares, rows.Err()
}
