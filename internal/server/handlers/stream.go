package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"bigschedule/internal/logging"
	"bigschedule/internal/timeline"
)

// StreamHandler pushes a freshly built timeline over a websocket on a fixed
// interval, so clients see items tick from upcoming to active to passed
// without polling. The timeline core itself stays pure; this handler is the
// external scheduler that samples the clock and re-invokes it.
type StreamHandler struct {
	store    AgendaStore
	upgrader websocket.Upgrader
	interval time.Duration
	logger   logging.Logger
	now      func() time.Time
}

// NewStreamHandler creates a stream handler refreshing every interval.
func NewStreamHandler(agendaStore AgendaStore, interval time.Duration) *StreamHandler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &StreamHandler{
		store: agendaStore,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		interval: interval,
		logger:   logging.NewComponentLogger("StreamHandler"),
		now:      time.Now,
	}
}

// Stream handles GET /api/agendas/:id/timeline/stream.
func (h *StreamHandler) Stream(c *gin.Context) {
	agendaID := c.Param("id")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Reader goroutine: we never expect client frames, but reading is how
	// close frames and dropped connections surface.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.push(ctx, conn, agendaID); err != nil {
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := h.push(ctx, conn, agendaID); err != nil {
				return
			}
		}
	}
}

func (h *StreamHandler) push(ctx context.Context, conn *websocket.Conn, agendaID string) error {
	agenda, err := h.store.GetAgenda(ctx, agendaID)
	if err != nil {
		h.logger.Warn("stream fetch agenda %s: %v", agendaID, err)
		_ = conn.WriteJSON(APIResponse{Success: false, Error: err.Error()})
		return err
	}

	now := h.now()
	return conn.WriteJSON(APIResponse{Success: true, Data: TimelineResponse{
		AgendaID: agendaID,
		Now:      now,
		Days:     timeline.BuildTimeline(agenda.AgendaItems, now),
	}})
}
