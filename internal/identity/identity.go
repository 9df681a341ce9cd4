// Package identity resolves the authenticated user for a request. Sign-in
// itself is delegated to an OAuth provider fronting this service; whatever
// identity the provider forwards in headers is trusted as-is.
package identity

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bigschedule/internal/model"
)

const (
	HeaderUserID    = "X-User-Id"
	HeaderUserName  = "X-User-Name"
	HeaderUserEmail = "X-User-Email"

	contextKey = "identity.user"
)

// FromRequest reads the forwarded identity headers. Requests without an
// identity get a throwaway "Temporary User", mirroring how the frontend lets
// visitors draft schedules before signing in.
func FromRequest(r *http.Request) model.User {
	id := r.Header.Get(HeaderUserID)
	if id == "" {
		return model.User{
			ID:        uuid.NewString(),
			Name:      "Temporary User",
			Email:     "temporary@user.com",
			Role:      model.RoleUser,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
	}

	name := r.Header.Get(HeaderUserName)
	if name == "" {
		name = "Unnamed User"
	}
	return model.User{
		ID:    id,
		Name:  name,
		Email: r.Header.Get(HeaderUserEmail),
		Role:  model.RoleUser,
	}
}

// Middleware resolves the request identity once and stores it in the gin
// context for handlers.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKey, FromRequest(c.Request))
		c.Next()
	}
}

// CurrentUser returns the identity resolved by Middleware.
func CurrentUser(c *gin.Context) model.User {
	if v, ok := c.Get(contextKey); ok {
		if user, ok := v.(model.User); ok {
			return user
		}
	}
	return FromRequest(c.Request)
}
