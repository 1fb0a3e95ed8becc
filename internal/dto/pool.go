package dto

import (
	"time"

	"github.com/tomasc/weekly-planner-api/internal/models"
)

// UnassignedTaskDTO represents a pool task in API responses
type UnassignedTaskDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Project     string    `json:"project"`
	AddedBy     string    `json:"added_by"`
	WeekAdded   string    `json:"week_added"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToUnassignedTaskDTO converts an UnassignedTask model to its DTO
func ToUnassignedTaskDTO(task models.UnassignedTask) UnassignedTaskDTO {
	return UnassignedTaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Project:     task.Project,
		AddedBy:     task.AddedBy,
		WeekAdded:   task.WeekAdded,
		CreatedAt:   task.CreatedAt,
	}
}

// ToUnassignedTaskDTOs converts a pool slice to DTOs
func ToUnassignedTaskDTOs(tasks []models.UnassignedTask) []UnassignedTaskDTO {
	dtos := make([]UnassignedTaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToUnassignedTaskDTO(t)
	}
	return dtos
}
