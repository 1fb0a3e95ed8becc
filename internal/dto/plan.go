package dto

import (
	"time"

	"github.com/tomasc/weekly-planner-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	Project     string            `json:"project"`
	Position    int               `json:"position"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// WeeklyPlanDTO represents one user's weekly entry in API responses
type WeeklyPlanDTO struct {
	Username     string    `json:"username"`
	Week         string    `json:"week"`
	PlannedHours int       `json:"planned_hours"`
	Tasks        []TaskDTO `json:"tasks"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Project:     task.Project,
		Position:    task.Position,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToWeeklyPlanDTO converts a WeeklyEntry model to WeeklyPlanDTO
func ToWeeklyPlanDTO(entry models.WeeklyEntry) WeeklyPlanDTO {
	tasks := make([]TaskDTO, len(entry.Tasks))
	for i, t := range entry.Tasks {
		tasks[i] = ToTaskDTO(t)
	}
	return WeeklyPlanDTO{
		Username:     entry.Username,
		Week:         entry.Week,
		PlannedHours: entry.PlannedHours,
		Tasks:        tasks,
	}
}
