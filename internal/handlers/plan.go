package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tomasc/weekly-planner-api/internal/dto"
	apierrors "github.com/tomasc/weekly-planner-api/internal/errors"
	"github.com/tomasc/weekly-planner-api/internal/middleware"
	"github.com/tomasc/weekly-planner-api/internal/models"
	"github.com/tomasc/weekly-planner-api/internal/services"
)

// PlanHandler exposes the caller's own current-week plan.
type PlanHandler struct {
	plannerService *services.PlannerService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(plannerService *services.PlannerService) *PlanHandler {
	return &PlanHandler{
		plannerService: plannerService,
	}
}

// GetMyPlan returns the caller's current-week entry, empty if they
// have not interacted with this week yet.
func (h *PlanHandler) GetMyPlan(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	entry, err := h.plannerService.GetPlan(username)
	if err != nil {
		apierrors.InternalError(c, "Failed to load weekly plan")
		return
	}

	c.JSON(http.StatusOK, dto.ToWeeklyPlanDTO(*entry))
}

// AddTask appends a task to the caller's current-week plan.
func (h *PlanHandler) AddTask(c *gin.Context) {
	type AddTaskRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Project     string `json:"project"`
	}

	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.plannerService.AddTask(username, services.AddTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Project:     req.Project,
	})
	if err != nil {
		respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask edits title, description and project of a task.
func (h *PlanHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Project     string `json:"project"`
	}

	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.plannerService.EditTask(username, c.Param("id"), services.EditTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Project:     req.Project,
	})
	if err != nil {
		respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTaskStatus moves a task to another status.
func (h *PlanHandler) UpdateTaskStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status models.TaskStatus `json:"status"`
	}

	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.plannerService.SetTaskStatus(username, c.Param("id"), req.Status)
	if err != nil {
		respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task from the caller's current-week plan.
func (h *PlanHandler) DeleteTask(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.plannerService.DeleteTask(username, c.Param("id")); err != nil {
		respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted",
	})
}

// SetHours records the caller's planned hours for the current week.
func (h *PlanHandler) SetHours(c *gin.Context) {
	type SetHoursRequest struct {
		Hours *int `json:"hours" binding:"required"`
	}

	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req SetHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.plannerService.SetWeeklyHours(username, *req.Hours)
	if err != nil {
		respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWeeklyPlanDTO(*entry))
}

func respondPlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrUnknownProject),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrHoursOutOfRange):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
