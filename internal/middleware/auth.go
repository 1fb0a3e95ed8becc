package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/tomasc/weekly-planner-api/internal/constants"
	apierrors "github.com/tomasc/weekly-planner-api/internal/errors"
	"github.com/tomasc/weekly-planner-api/internal/models"
)

// RequireAuth checks if the user is authenticated via session. An
// account stuck in password setup only has the pending key and is
// rejected here: it must not reach any other endpoint.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username := session.Get(constants.ContextKeyUsername)

		if username == nil {
			if session.Get(constants.SessionKeyPendingUser) != nil {
				apierrors.Unauthorized(c, "Password setup required before continuing")
			} else {
				apierrors.Unauthorized(c, "")
			}
			c.Abort()
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyUsername, username)
		if role := session.Get(constants.ContextKeyRole); role != nil {
			c.Set(constants.ContextKeyRole, role)
		}
		if name := session.Get(constants.ContextKeyDisplayName); name != nil {
			c.Set(constants.ContextKeyDisplayName, name)
		}
		c.Next()
	}
}

// GetUsername retrieves the current username from context
func GetUsername(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyUsername)
	if !exists {
		return "", false
	}
	username, ok := value.(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}

// GetRole retrieves the current user's role from context
func GetRole(c *gin.Context) (models.UserRole, bool) {
	value, exists := c.Get(constants.ContextKeyRole)
	if !exists {
		return "", false
	}
	switch v := value.(type) {
	case models.UserRole:
		return v, true
	case string:
		return models.UserRole(v), true
	default:
		return "", false
	}
}

// GetDisplayName retrieves the current user's display name from context
func GetDisplayName(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyDisplayName)
	if !exists {
		return "", false
	}
	name, ok := value.(string)
	return name, ok
}
