package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tomasc/weekly-planner-api/internal/config"
	"github.com/tomasc/weekly-planner-api/internal/models"
	"github.com/tomasc/weekly-planner-api/internal/repository"
	"github.com/tomasc/weekly-planner-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrUnknownProject  = errors.New("project is not in the configured project list")
	ErrTaskNotFound    = errors.New("task not found in your current week plan")
	ErrInvalidStatus   = errors.New("unknown task status")
	ErrHoursOutOfRange = errors.New("planned hours out of range")
)

// PlannerService manages a user's own weekly entry: planned hours and
// the task lifecycle. Every operation targets the caller's entry for
// the current ISO week.
type PlannerService struct {
	entryRepo repository.EntryRepository
	cfg       *config.Config
}

// NewPlannerService creates a new PlannerService
func NewPlannerService(entryRepo repository.EntryRepository, cfg *config.Config) *PlannerService {
	return &PlannerService{
		entryRepo: entryRepo,
		cfg:       cfg,
	}
}

// GetPlan returns the caller's entry for the current week. A user who
// has not interacted with the week yet gets an empty, unpersisted plan.
func (s *PlannerService) GetPlan(username string) (*models.WeeklyEntry, error) {
	week := utils.CurrentWeekID()
	entry, err := s.entryRepo.FindByUserWeek(username, week)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.WeeklyEntry{Username: username, Week: week}, nil
		}
		return nil, fmt.Errorf("failed to load weekly entry: %w", err)
	}
	return entry, nil
}

// AddTaskInput represents input for adding a task to the weekly plan
type AddTaskInput struct {
	Title       string
	Description string
	Project     string
}

// AddTask appends a new task to the caller's current-week entry,
// creating the entry if this is the first interaction with the week.
func (s *PlannerService) AddTask(username string, input AddTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !s.cfg.HasProject(input.Project) {
		return nil, ErrUnknownProject
	}

	entry, err := s.entryRepo.FindOrCreate(username, utils.CurrentWeekID())
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly entry: %w", err)
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: input.Description,
		Status:      models.TaskStatusPending,
		Project:     input.Project,
	}
	if err := s.entryRepo.AppendTask(entry, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// EditTaskInput represents input for editing a task
type EditTaskInput struct {
	Title       string
	Description string
	Project     string
}

// EditTask updates title, description and project of one of the
// caller's current-week tasks. Id and status are preserved.
func (s *PlannerService) EditTask(username, taskID string, input EditTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !s.cfg.HasProject(input.Project) {
		return nil, ErrUnknownProject
	}

	task, err := s.findOwnTask(username, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = input.Description
	task.Project = input.Project
	if err := s.entryRepo.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// SetTaskStatus moves a task to any of the known statuses. Statuses
// form a free selection, not an ordered state machine.
func (s *PlannerService) SetTaskStatus(username, taskID string, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	task, err := s.findOwnTask(username, taskID)
	if err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.entryRepo.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task from the caller's current-week entry.
func (s *PlannerService) DeleteTask(username, taskID string) error {
	entry, err := s.currentEntry(username)
	if err != nil {
		return err
	}

	if err := s.entryRepo.DeleteTask(entry.ID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// SetWeeklyHours records the caller's planned hours for the current
// week, bounded by the configured maximum.
func (s *PlannerService) SetWeeklyHours(username string, hours int) (*models.WeeklyEntry, error) {
	if hours < 0 || hours > s.cfg.MaxWeeklyHours {
		return nil, ErrHoursOutOfRange
	}

	entry, err := s.entryRepo.FindOrCreate(username, utils.CurrentWeekID())
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly entry: %w", err)
	}

	if err := s.entryRepo.SetHours(entry, hours); err != nil {
		return nil, fmt.Errorf("failed to save planned hours: %w", err)
	}
	return entry, nil
}

func (s *PlannerService) currentEntry(username string) (*models.WeeklyEntry, error) {
	entry, err := s.entryRepo.FindByUserWeek(username, utils.CurrentWeekID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load weekly entry: %w", err)
	}
	return entry, nil
}

func (s *PlannerService) findOwnTask(username, taskID string) (*models.Task, error) {
	entry, err := s.currentEntry(username)
	if err != nil {
		return nil, err
	}

	task, err := s.entryRepo.FindTask(entry.ID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}
