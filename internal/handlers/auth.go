package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/tomasc/weekly-planner-api/internal/constants"
	"github.com/tomasc/weekly-planner-api/internal/dto"
	apierrors "github.com/tomasc/weekly-planner-api/internal/errors"
	"github.com/tomasc/weekly-planner-api/internal/middleware"
	"github.com/tomasc/weekly-planner-api/internal/models"
	"github.com/tomasc/weekly-planner-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates a user. Accounts that have not completed the
// first-login password setup are routed to it: the session only holds
// the pending username, never an authenticated identity.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()

	if result.PasswordSetupRequired {
		session.Set(constants.SessionKeyPendingUser, result.User.Username)
		if err := session.Save(); err != nil {
			apierrors.InternalError(c, "Failed to save session")
			return
		}
		c.JSON(http.StatusOK, dto.LoginResponse{
			User:                  dto.ToUserDTO(*result.User),
			PasswordSetupRequired: true,
		})
		return
	}

	setAuthenticatedSession(session, result.User)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		User: dto.ToUserDTO(*result.User),
	})
}

// SetupPassword completes the mandatory first-login password change
// and establishes the session.
func (h *AuthHandler) SetupPassword(c *gin.Context) {
	type SetupPasswordRequest struct {
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}

	session := sessions.Default(c)
	pending, ok := session.Get(constants.SessionKeyPendingUser).(string)
	if !ok || pending == "" {
		apierrors.Unauthorized(c, "No pending password setup")
		return
	}

	var req SetupPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.CompletePasswordSetup(services.CompletePasswordSetupInput{
		Username:        pending,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session.Delete(constants.SessionKeyPendingUser)
	setAuthenticatedSession(session, user)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout removes the session, returning the client to LoggedOut.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(username)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func setAuthenticatedSession(session sessions.Session, user *models.User) {
	session.Set(constants.ContextKeyUsername, user.Username)
	session.Set(constants.ContextKeyRole, string(user.Role))
	session.Set(constants.ContextKeyDisplayName, user.DisplayName)
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrPasswordRequired),
		errors.Is(err, services.ErrPasswordMismatch):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrPasswordAlreadySet):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
