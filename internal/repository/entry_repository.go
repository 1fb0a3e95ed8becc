package repository

import (
	"errors"

	"github.com/tomasc/weekly-planner-api/internal/models"
	"gorm.io/gorm"
)

// GormEntryRepository is a GORM implementation of EntryRepository
type GormEntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &GormEntryRepository{db: db}
}

func taskOrder(db *gorm.DB) *gorm.DB {
	return db.Order("tasks.position ASC")
}

// FindByUserWeek finds the entry for (username, week) with its tasks
func (r *GormEntryRepository) FindByUserWeek(username, week string) (*models.WeeklyEntry, error) {
	var entry models.WeeklyEntry
	err := r.db.Preload("Tasks", taskOrder).
		Where("username = ? AND week = ?", username, week).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindOrCreate returns the entry for (username, week), creating an
// empty one if absent
func (r *GormEntryRepository) FindOrCreate(username, week string) (*models.WeeklyEntry, error) {
	entry, err := r.FindByUserWeek(username, week)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entry = &models.WeeklyEntry{
		Username: username,
		Week:     week,
	}
	if err := r.db.Create(entry).Error; err != nil {
		// A concurrent request may have created it first; the unique
		// index on (username, week) keeps the invariant either way.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindByUserWeek(username, week)
		}
		return nil, err
	}
	return entry, nil
}

// SetHours updates the planned hours on an entry
func (r *GormEntryRepository) SetHours(entry *models.WeeklyEntry, hours int) error {
	entry.PlannedHours = hours
	return r.db.Model(entry).Update("planned_hours", hours).Error
}

// AppendTask appends a task at the end of the entry's sequence
func (r *GormEntryRepository) AppendTask(entry *models.WeeklyEntry, task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		task.EntryID = entry.ID
		task.Position = nextPosition(tx, entry.ID)
		return tx.Create(task).Error
	})
}

// FindTask finds one task within an entry
func (r *GormEntryRepository) FindTask(entryID uint64, taskID string) (*models.Task, error) {
	var task models.Task
	err := r.db.Where("entry_id = ? AND id = ?", entryID, taskID).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask persists changes to a task
func (r *GormEntryRepository) UpdateTask(task *models.Task) error {
	return r.db.Save(task).Error
}

// DeleteTask removes a task from an entry
func (r *GormEntryRepository) DeleteTask(entryID uint64, taskID string) error {
	result := r.db.Where("entry_id = ? AND id = ?", entryID, taskID).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByWeek returns all entries for a week with their tasks
func (r *GormEntryRepository) ListByWeek(week string) ([]models.WeeklyEntry, error) {
	var entries []models.WeeklyEntry
	err := r.db.Preload("Tasks", taskOrder).Preload("User").
		Where("week = ?", week).
		Order("username ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListAll returns every entry with its tasks, newest week first
func (r *GormEntryRepository) ListAll() ([]models.WeeklyEntry, error) {
	var entries []models.WeeklyEntry
	err := r.db.Preload("Tasks", taskOrder).Preload("User").
		Order("week DESC, username ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// nextPosition returns the append position for a new task in an entry.
func nextPosition(tx *gorm.DB, entryID uint64) int {
	var max *int
	tx.Model(&models.Task{}).
		Where("entry_id = ?", entryID).
		Select("MAX(position)").
		Scan(&max)
	if max == nil {
		return 0
	}
	return *max + 1
}
