package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tomasc/weekly-planner-api/internal/dto"
	apierrors "github.com/tomasc/weekly-planner-api/internal/errors"
	"github.com/tomasc/weekly-planner-api/internal/middleware"
	"github.com/tomasc/weekly-planner-api/internal/services"
)

// PoolHandler exposes the unassigned task pool. Role checks live in
// the route middleware: publish and retract are admin-only, claiming
// is collaborator-only.
type PoolHandler struct {
	poolService *services.PoolService
}

// NewPoolHandler creates a new PoolHandler
func NewPoolHandler(poolService *services.PoolService) *PoolHandler {
	return &PoolHandler{
		poolService: poolService,
	}
}

// List returns the current pool.
func (h *PoolHandler) List(c *gin.Context) {
	tasks, err := h.poolService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to list unassigned tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToUnassignedTaskDTOs(tasks),
	})
}

// Publish adds a task to the pool with the publishing admin's display
// name as provenance.
func (h *PoolHandler) Publish(c *gin.Context) {
	type PublishRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Project     string `json:"project"`
	}

	creatorName, _ := middleware.GetDisplayName(c)
	if creatorName == "" {
		creatorName, _ = middleware.GetUsername(c)
	}

	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.poolService.Publish(services.PublishInput{
		Title:       req.Title,
		Description: req.Description,
		Project:     req.Project,
		CreatorName: creatorName,
	})
	if err != nil {
		respondPoolError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUnassignedTaskDTO(*task))
}

// Claim moves a pool task into the calling collaborator's current-week
// plan.
func (h *PoolHandler) Claim(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	task, err := h.poolService.Claim(c.Param("id"), username)
	if err != nil {
		respondPoolError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Retract removes a pool task without assigning it.
func (h *PoolHandler) Retract(c *gin.Context) {
	if err := h.poolService.Retract(c.Param("id")); err != nil {
		respondPoolError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Unassigned task removed",
	})
}

func respondPoolError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrUnknownProject):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPoolTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
