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
	ErrPoolTaskNotFound = errors.New("unassigned task not found")
)

// PoolService manages the global pool of unassigned tasks: admins
// publish and retract, collaborators claim into their weekly plan.
type PoolService struct {
	poolRepo repository.PoolRepository
	cfg      *config.Config
}

// NewPoolService creates a new PoolService
func NewPoolService(poolRepo repository.PoolRepository, cfg *config.Config) *PoolService {
	return &PoolService{
		poolRepo: poolRepo,
		cfg:      cfg,
	}
}

// PublishInput represents input for publishing an unassigned task
type PublishInput struct {
	Title       string
	Description string
	Project     string
	// CreatorName is the publishing admin's display name, recorded as
	// provenance on the pool entry.
	CreatorName string
}

// Publish adds a task to the pool, stamped with the creator and the
// current week.
func (s *PoolService) Publish(input PublishInput) (*models.UnassignedTask, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !s.cfg.HasProject(input.Project) {
		return nil, ErrUnknownProject
	}

	task := &models.UnassignedTask{
		ID:          uuid.NewString(),
		Title:       title,
		Description: input.Description,
		Project:     input.Project,
		AddedBy:     input.CreatorName,
		WeekAdded:   utils.CurrentWeekID(),
	}
	if err := s.poolRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to publish task: %w", err)
	}
	return task, nil
}

// List returns the current pool.
func (s *PoolService) List() ([]models.UnassignedTask, error) {
	tasks, err := s.poolRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned tasks: %w", err)
	}
	return tasks, nil
}

// Claim moves taskID from the pool into the collaborator's
// current-week entry. The copy is fully independent: it gets a fresh
// id and its status is reset to PENDING. Pool removal and entry write
// happen in one transaction, so a failed claim leaves the pool intact.
func (s *PoolService) Claim(taskID, collaboratorUsername string) (*models.Task, error) {
	task, err := s.poolRepo.Claim(taskID, collaboratorUsername, utils.CurrentWeekID(), uuid.NewString())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPoolTaskNotFound
		}
		return nil, fmt.Errorf("failed to claim task: %w", err)
	}
	return task, nil
}

// Retract removes a pool task without copying it anywhere.
func (s *PoolService) Retract(taskID string) error {
	if err := s.poolRepo.Delete(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPoolTaskNotFound
		}
		return fmt.Errorf("failed to retract task: %w", err)
	}
	return nil
}
