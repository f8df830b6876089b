package handlers

import (
	"net/http"

	"reelrank/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Check echoes the trusted identity back to the caller. No verification
// happens here; identity was resolved upstream.
func (h *AuthHandler) Check(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"loggedIn": false, "user": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loggedIn": true,
		"user": gin.H{
			"id":   ident.UserID,
			"role": ident.Role,
		},
	})
}

// Logout clears the session cookie issued by the upstream auth layer.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	session.Save()

	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}
