package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"activityservice/internal/app/dto"
)

// The fronting proxy authenticates callers and forwards their identity
// in these headers. The service itself never verifies credentials.
const (
	HeaderUser  = "X-Auth-User"
	HeaderRoles = "X-Auth-Roles"

	adminRole = "Admin"

	identityKey = "identity"
)

// Identity is the caller as asserted by the authenticating proxy.
type Identity struct {
	UID   string
	Roles []string
}

func (i Identity) IsAdmin() bool {
	for _, r := range i.Roles {
		if r == adminRole {
			return true
		}
	}
	return false
}

// IdentityFrom returns the identity stored by RequireUser.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// RequireUser rejects requests without a forwarded identity and
// stashes the identity for handlers.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetHeader(HeaderUser)
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: dto.Error{Code: "UNAUTHORIZED", Message: "caller identity is required"},
			})
			return
		}

		var roles []string
		for _, r := range strings.Split(c.GetHeader(HeaderRoles), ",") {
			if r = strings.TrimSpace(r); r != "" {
				roles = append(roles, r)
			}
		}

		c.Set(identityKey, Identity{UID: uid, Roles: roles})
		c.Next()
	}
}

// RequireAdmin runs after RequireUser and rejects non-admin callers
// before any upstream call is made.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok || !id.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Error: dto.Error{Code: "FORBIDDEN", Message: "admin role is required"},
			})
			return
		}
		c.Next()
	}
}
