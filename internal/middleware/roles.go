package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/tomasc/weekly-planner-api/internal/errors"
	"github.com/tomasc/weekly-planner-api/internal/models"
)

// RequireRole restricts a route to a single role. Publish/retract of
// unassigned tasks is admin-only; claiming and voting are
// collaborator-only.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, exists := GetRole(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if current != role {
			apierrors.Forbidden(c, "Your role does not allow this action")
			c.Abort()
			return
		}

		c.Next()
	}
}
