package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bigschedule/internal/logging"
	"bigschedule/internal/store"
	"bigschedule/internal/timeline"
)

// TimelineResponse is the payload of the timeline endpoints.
type TimelineResponse struct {
	AgendaID string                `json:"agendaId"`
	Now      time.Time             `json:"now"`
	Days     []timeline.DaySection `json:"days"`
}

// TimelineHandler serves the grouped, time-annotated view of an agenda.
type TimelineHandler struct {
	store  AgendaStore
	logger logging.Logger
	now    func() time.Time
}

// NewTimelineHandler creates a timeline handler on the given store.
func NewTimelineHandler(agendaStore AgendaStore) *TimelineHandler {
	return &TimelineHandler{
		store:  agendaStore,
		logger: logging.NewComponentLogger("TimelineHandler"),
		now:    time.Now,
	}
}

// Get handles GET /api/agendas/:id/timeline. An optional now query parameter
// evaluates the timeline at a different instant, which is also how clients
// can pre-render future states.
func (h *TimelineHandler) Get(c *gin.Context) {
	agendaID := c.Param("id")

	now := h.now()
	if raw := c.Query("now"); raw != "" {
		parsed, ok := timeline.ParseInstant(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: "invalid now parameter"})
			return
		}
		now = parsed
	}

	response, err := h.build(c, agendaID, now)
	if err != nil {
		return // build already answered
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: response})
}

func (h *TimelineHandler) build(c *gin.Context, agendaID string, now time.Time) (*TimelineResponse, error) {
	agenda, err := h.store.GetAgenda(c.Request.Context(), agendaID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, APIResponse{Success: false, Error: err.Error()})
		} else {
			h.logger.Error("get agenda %s: %v", agendaID, err)
			c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: err.Error()})
		}
		return nil, err
	}

	return &TimelineResponse{
		AgendaID: agendaID,
		Now:      now,
		Days:     timeline.BuildTimeline(agenda.AgendaItems, now),
	}, nil
}
