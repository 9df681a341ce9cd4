// Package handlers implements the HTTP API endpoints.
package handlers

import (
	"context"

	"bigschedule/internal/generate"
	"bigschedule/internal/model"
)

// APIResponse is the standard response envelope for service-level endpoints.
// The agenda and generation endpoints keep the exact response shapes the
// frontend was built against instead.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AgendaStore is the persistence surface the handlers depend on.
type AgendaStore interface {
	GetAgenda(ctx context.Context, id string) (*model.Agenda, error)
	ListAgendas(ctx context.Context) ([]model.Agenda, error)
	UpsertAgenda(ctx context.Context, agenda model.Agenda) (*model.Agenda, error)
	DeleteAgenda(ctx context.Context, id string) error
	DeleteAgendaItem(ctx context.Context, id string) error
	ShareAgenda(ctx context.Context, share model.SharedAgenda) (*model.SharedAgenda, error)
	ListShares(ctx context.Context, agendaID string) ([]model.SharedAgenda, error)
	UpsertUser(ctx context.Context, user model.User) (*model.User, error)
}

// Drafter turns a free-text prompt into a structured agenda draft.
type Drafter interface {
	Draft(ctx context.Context, input string) (*generate.Draft, error)
}
