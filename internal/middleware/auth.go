package middleware

import (
	"net/http"

	"reelrank/internal/utils"

	"github.com/gin-gonic/gin"
)

const IdentityKey = "identity"

const (
	UserIDHeader   = "x-user-id"
	UserRoleHeader = "x-user-role"
)

// Identity is the caller identity resolved by the upstream auth layer.
// The header values are trusted as given; this service never re-derives
// or re-verifies them.
type Identity struct {
	UserID uint
	Role   string
}

func (id Identity) IsAdmin() bool {
	return id.Role == "admin"
}

// LoadIdentity reads the trusted identity headers and sets the identity
// on the context for downstream handlers.
func LoadIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(UserIDHeader); raw != "" {
			if userID := utils.StringToInt(raw); userID > 0 {
				c.Set(IdentityKey, Identity{
					UserID: uint(userID),
					Role:   c.GetHeader(UserRoleHeader),
				})
			}
		}
		c.Next()
	}
}

// AuthRequired rejects requests that carry no trusted identity.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(IdentityKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity set by LoadIdentity, if any.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return Identity{}, false
	}
	return v.(Identity), true
}
