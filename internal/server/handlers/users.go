package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bigschedule/internal/identity"
	"bigschedule/internal/logging"
)

// UserHandler exposes the resolved identity and records it so agendas can
// link back to an author row.
type UserHandler struct {
	store  AgendaStore
	logger logging.Logger
}

// NewUserHandler creates a user handler on the given store.
func NewUserHandler(agendaStore AgendaStore) *UserHandler {
	return &UserHandler{
		store:  agendaStore,
		logger: logging.NewComponentLogger("UserHandler"),
	}
}

// Me handles GET /api/me: answers the current identity. Forwarded (signed-in)
// identities are upserted into the users table on the way out; temporary
// visitors are not persisted.
func (h *UserHandler) Me(c *gin.Context) {
	user := identity.CurrentUser(c)

	if c.GetHeader(identity.HeaderUserID) != "" {
		saved, err := h.store.UpsertUser(c.Request.Context(), user)
		if err != nil {
			h.logger.Error("upsert user %s: %v", user.ID, err)
			c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: err.Error()})
			return
		}
		user = *saved
	}

	c.JSON(http.StatusOK, APIResponse{Success: true, Data: user})
}
