package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"bigschedule/internal/model"
)

func newAgendaRouter(fake *fakeStore) *gin.Engine {
	handler := NewAgendaHandler(fake)
	router := gin.New()
	router.GET("/api/agendas", handler.Get)
	router.PUT("/api/agendas", handler.Put)
	router.DELETE("/api/agendas", handler.Delete)
	router.DELETE("/api/agendas/:id/items/:itemId", handler.DeleteItem)
	router.GET("/api/agendas/:id/shares", handler.ListShares)
	router.POST("/api/agendas/:id/shares", handler.Share)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetAgendaByID(t *testing.T) {
	fake := newFakeStore()
	fake.agendas["a1"] = &model.Agenda{
		ID: "a1", Title: "Launch day", OwnerID: "u1",
		AgendaItems: []model.AgendaItem{{ID: "i1", AgendaID: "a1", Title: "Standup"}},
	}

	w := doJSON(t, newAgendaRouter(fake), http.MethodGet, "/api/agendas?id=a1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got model.Agenda
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "Launch day", got.Title)
	require.Len(t, got.AgendaItems, 1)
}

func TestGetAgendaNotFound(t *testing.T) {
	w := doJSON(t, newAgendaRouter(newFakeStore()), http.MethodGet, "/api/agendas?id=missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp["error"], "missing")
}

func TestListAgendas(t *testing.T) {
	fake := newFakeStore()
	fake.agendas["a1"] = &model.Agenda{ID: "a1", Title: "One", OwnerID: "u1"}
	fake.agendas["a2"] = &model.Agenda{ID: "a2", Title: "Two", OwnerID: "u1"}

	w := doJSON(t, newAgendaRouter(fake), http.MethodGet, "/api/agendas", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []model.Agenda
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
}

func TestPutAgendaUpserts(t *testing.T) {
	fake := newFakeStore()
	body := model.Agenda{
		Title:   "Conference",
		OwnerID: "u1",
		AgendaItems: []model.AgendaItem{
			{Title: "Keynote", StartTime: "2025-05-19T09:00", EndTime: "2025-05-19T10:00"},
		},
	}

	w := doJSON(t, newAgendaRouter(fake), http.MethodPut, "/api/agendas", body)
	require.Equal(t, http.StatusOK, w.Code)

	var got model.Agenda
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotEmpty(t, got.ID)
	require.Len(t, fake.agendas, 1)
}

func TestPutAgendaMissingFields(t *testing.T) {
	for _, body := range []model.Agenda{
		{OwnerID: "u1"},
		{Title: "No owner"},
	} {
		w := doJSON(t, newAgendaRouter(newFakeStore()), http.MethodPut, "/api/agendas", body)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, "Missing required fields", resp["error"])
	}
}

func TestPutAgendaInvertedWindowRejected(t *testing.T) {
	body := model.Agenda{
		Title:   "Broken",
		OwnerID: "u1",
		AgendaItems: []model.AgendaItem{
			{Title: "backwards", StartTime: "2025-05-19T10:00", EndTime: "2025-05-19T09:00"},
		},
	}

	w := doJSON(t, newAgendaRouter(newFakeStore()), http.MethodPut, "/api/agendas", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAgendaByQuery(t *testing.T) {
	fake := newFakeStore()
	fake.agendas["a1"] = &model.Agenda{ID: "a1", Title: "Bye", OwnerID: "u1"}

	w := doJSON(t, newAgendaRouter(fake), http.MethodDelete, "/api/agendas?id=a1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true}`, w.Body.String())
	require.Empty(t, fake.agendas)
}

func TestDeleteAgendaByBody(t *testing.T) {
	fake := newFakeStore()
	fake.agendas["a1"] = &model.Agenda{ID: "a1", Title: "Bye", OwnerID: "u1"}

	w := doJSON(t, newAgendaRouter(fake), http.MethodDelete, "/api/agendas", map[string]string{"id": "a1"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, fake.agendas)
}

func TestDeleteAgendaMissingID(t *testing.T) {
	w := doJSON(t, newAgendaRouter(newFakeStore()), http.MethodDelete, "/api/agendas", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Missing agenda id", resp["error"])
}

func TestDeleteAgendaItem(t *testing.T) {
	fake := newFakeStore()
	fake.agendas["a1"] = &model.Agenda{
		ID: "a1", Title: "Launch day", OwnerID: "u1",
		AgendaItems: []model.AgendaItem{
			{ID: "i1", AgendaID: "a1", Title: "Standup"},
			{ID: "i2", AgendaID: "a1", Title: "Retro"},
		},
	}

	w := doJSON(t, newAgendaRouter(fake), http.MethodDelete, "/api/agendas/a1/items/i1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true}`, w.Body.String())
	require.Len(t, fake.agendas["a1"].AgendaItems, 1)
	require.Equal(t, "i2", fake.agendas["a1"].AgendaItems[0].ID)

	// Deleting an id that is already gone still succeeds.
	w = doJSON(t, newAgendaRouter(fake), http.MethodDelete, "/api/agendas/a1/items/ghost", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestShareAndListShares(t *testing.T) {
	fake := newFakeStore()
	router := newAgendaRouter(fake)

	w := doJSON(t, router, http.MethodPost, "/api/agendas/a1/shares",
		model.SharedAgenda{UserID: "u2", Permission: model.PermissionEdit})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/agendas/a1/shares", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Data    []model.SharedAgenda `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	require.Equal(t, model.PermissionEdit, resp.Data[0].Permission)
}
