package repository

import (
	"errors"

	"github.com/tomasc/weekly-planner-api/internal/models"
	"gorm.io/gorm"
)

// GormPoolRepository is a GORM implementation of PoolRepository
type GormPoolRepository struct {
	db *gorm.DB
}

// NewPoolRepository creates a new PoolRepository
func NewPoolRepository(db *gorm.DB) PoolRepository {
	return &GormPoolRepository{db: db}
}

// Create publishes a task into the pool
func (r *GormPoolRepository) Create(task *models.UnassignedTask) error {
	return r.db.Create(task).Error
}

// FindByID finds a pool task by id
func (r *GormPoolRepository) FindByID(id string) (*models.UnassignedTask, error) {
	var task models.UnassignedTask
	if err := r.db.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns the whole pool, oldest first
func (r *GormPoolRepository) List() ([]models.UnassignedTask, error) {
	var tasks []models.UnassignedTask
	if err := r.db.Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Delete removes a pool task without copying it anywhere
func (r *GormPoolRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.UnassignedTask{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Claim moves poolTaskID into username's entry for week within one
// transaction. The pool row is only removed once the claimant's task
// row is written; on any failure the task stays in the pool.
func (r *GormPoolRepository) Claim(poolTaskID, username, week, newTaskID string) (*models.Task, error) {
	var claimed *models.Task

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var poolTask models.UnassignedTask
		if err := tx.Where("id = ?", poolTaskID).First(&poolTask).Error; err != nil {
			return err
		}

		var entry models.WeeklyEntry
		err := tx.Where("username = ? AND week = ?", username, week).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = models.WeeklyEntry{Username: username, Week: week}
			err = tx.Create(&entry).Error
		}
		if err != nil {
			return err
		}

		task := models.Task{
			ID:          newTaskID,
			EntryID:     entry.ID,
			Title:       poolTask.Title,
			Description: poolTask.Description,
			Status:      models.TaskStatusPending,
			Project:     poolTask.Project,
			Position:    nextPosition(tx, entry.ID),
		}
		if err := tx.Create(&task).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", poolTaskID).Delete(&models.UnassignedTask{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// A concurrent claim or retract got there first.
			return gorm.ErrRecordNotFound
		}

		claimed = &task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}
