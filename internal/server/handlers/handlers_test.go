package handlers

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"bigschedule/internal/generate"
	"bigschedule/internal/model"
	"bigschedule/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore is an in-memory AgendaStore for handler tests.
type fakeStore struct {
	agendas  map[string]*model.Agenda
	shares   map[string][]model.SharedAgenda
	users    map[string]model.User
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		agendas: map[string]*model.Agenda{},
		shares:  map[string][]model.SharedAgenda{},
		users:   map[string]model.User{},
	}
}

func (f *fakeStore) GetAgenda(_ context.Context, id string) (*model.Agenda, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	agenda, ok := f.agendas[id]
	if !ok {
		return nil, fmt.Errorf("agenda %s: %w", id, store.ErrNotFound)
	}
	return agenda, nil
}

func (f *fakeStore) ListAgendas(context.Context) ([]model.Agenda, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []model.Agenda{}
	for _, agenda := range f.agendas {
		copied := *agenda
		copied.AgendaItems = nil
		out = append(out, copied)
	}
	return out, nil
}

func (f *fakeStore) UpsertAgenda(_ context.Context, agenda model.Agenda) (*model.Agenda, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, item := range agenda.AgendaItems {
		if err := store.ValidateItemWindow(item); err != nil {
			return nil, err
		}
	}
	if agenda.ID == "" {
		agenda.ID = fmt.Sprintf("agenda-%d", len(f.agendas)+1)
	}
	f.agendas[agenda.ID] = &agenda
	return &agenda, nil
}

func (f *fakeStore) DeleteAgenda(_ context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.agendas, id)
	return nil
}

func (f *fakeStore) DeleteAgendaItem(_ context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	for _, agenda := range f.agendas {
		kept := agenda.AgendaItems[:0]
		for _, item := range agenda.AgendaItems {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		agenda.AgendaItems = kept
	}
	return nil
}

func (f *fakeStore) ShareAgenda(_ context.Context, share model.SharedAgenda) (*model.SharedAgenda, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if share.ID == "" {
		share.ID = fmt.Sprintf("share-%d", len(f.shares[share.AgendaID])+1)
	}
	f.shares[share.AgendaID] = append(f.shares[share.AgendaID], share)
	return &share, nil
}

func (f *fakeStore) ListShares(_ context.Context, agendaID string) ([]model.SharedAgenda, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.shares[agendaID], nil
}

func (f *fakeStore) UpsertUser(_ context.Context, user model.User) (*model.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.users[user.ID] = user
	return &user, nil
}

// fakeDrafter answers a canned draft or error.
type fakeDrafter struct {
	draft *generate.Draft
	err   error
}

func (f *fakeDrafter) Draft(context.Context, string) (*generate.Draft, error) {
	return f.draft, f.err
}
