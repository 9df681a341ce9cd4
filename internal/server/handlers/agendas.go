package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"bigschedule/internal/logging"
	"bigschedule/internal/model"
	"bigschedule/internal/store"
)

// AgendaHandler serves the /api/agendas surface. Response shapes follow the
// frontend's existing contract: bare records on success, {"error": ...} on
// failure, {"success": true} for deletes.
type AgendaHandler struct {
	store  AgendaStore
	logger logging.Logger
}

// NewAgendaHandler creates an agenda handler on the given store.
func NewAgendaHandler(agendaStore AgendaStore) *AgendaHandler {
	return &AgendaHandler{
		store:  agendaStore,
		logger: logging.NewComponentLogger("AgendaHandler"),
	}
}

// Get handles GET /api/agendas and GET /api/agendas?id=<id>.
func (h *AgendaHandler) Get(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		agenda, err := h.store.GetAgenda(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			h.logger.Error("get agenda %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, agenda)
		return
	}

	agendas, err := h.store.ListAgendas(c.Request.Context())
	if err != nil {
		h.logger.Error("list agendas: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, agendas)
}

// Put handles PUT /api/agendas: upsert the agenda and any provided items,
// answering with the agenda merged with its freshly read items.
func (h *AgendaHandler) Put(c *gin.Context) {
	var agenda model.Agenda
	if err := c.ShouldBindJSON(&agenda); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	if agenda.Title == "" || agenda.OwnerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	saved, err := h.store.UpsertAgenda(c.Request.Context(), agenda)
	if err != nil {
		if errors.Is(err, store.ErrInvalidTimeWindow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("upsert agenda: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Delete handles DELETE /api/agendas with the id in the query string or, as
// the frontend sometimes sends it, in a JSON body.
func (h *AgendaHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		var body struct {
			ID string `json:"id"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			id = body.ID
		}
	}

	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing agenda id"})
		return
	}

	if err := h.store.DeleteAgenda(c.Request.Context(), id); err != nil {
		h.logger.Error("delete agenda %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteItem handles DELETE /api/agendas/:id/items/:itemId. Removing an item
// that is already gone succeeds, like agenda deletion.
func (h *AgendaHandler) DeleteItem(c *gin.Context) {
	itemID := c.Param("itemId")
	if err := h.store.DeleteAgendaItem(c.Request.Context(), itemID); err != nil {
		h.logger.Error("delete agenda item %s: %v", itemID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Share handles POST /api/agendas/:id/shares.
func (h *AgendaHandler) Share(c *gin.Context) {
	var share model.SharedAgenda
	if err := c.ShouldBindJSON(&share); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	share.AgendaID = c.Param("id")

	saved, err := h.store.ShareAgenda(c.Request.Context(), share)
	if err != nil {
		h.logger.Error("share agenda %s: %v", share.AgendaID, err)
		c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: saved})
}

// ListShares handles GET /api/agendas/:id/shares.
func (h *AgendaHandler) ListShares(c *gin.Context) {
	shares, err := h.store.ListShares(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("list shares: %v", err)
		c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: shares})
}
