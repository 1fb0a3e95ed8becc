package repository

import (
	"github.com/tomasc/weekly-planner-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// List returns all users
	List() ([]models.User, error)

	// ListByRole returns users with the given role
	ListByRole(role models.UserRole) ([]models.User, error)
}

// EntryRepository defines the interface for weekly-entry data access.
// Tasks are owned exclusively by their entry and are loaded in
// insertion order.
type EntryRepository interface {
	// FindByUserWeek finds the entry for (username, week) with its tasks
	FindByUserWeek(username, week string) (*models.WeeklyEntry, error)

	// FindOrCreate returns the entry for (username, week), creating an
	// empty one if absent
	FindOrCreate(username, week string) (*models.WeeklyEntry, error)

	// SetHours updates the planned hours on an entry
	SetHours(entry *models.WeeklyEntry, hours int) error

	// AppendTask appends a task at the end of the entry's sequence
	AppendTask(entry *models.WeeklyEntry, task *models.Task) error

	// FindTask finds one task within an entry
	FindTask(entryID uint64, taskID string) (*models.Task, error)

	// UpdateTask persists changes to a task
	UpdateTask(task *models.Task) error

	// DeleteTask removes a task from an entry
	DeleteTask(entryID uint64, taskID string) error

	// ListByWeek returns all entries for a week with their tasks
	ListByWeek(week string) ([]models.WeeklyEntry, error)

	// ListAll returns every entry with its tasks, newest week first
	ListAll() ([]models.WeeklyEntry, error)
}

// PoolRepository defines the interface for the unassigned task pool
type PoolRepository interface {
	// Create publishes a task into the pool
	Create(task *models.UnassignedTask) error

	// FindByID finds a pool task by id
	FindByID(id string) (*models.UnassignedTask, error)

	// List returns the whole pool, oldest first
	List() ([]models.UnassignedTask, error)

	// Delete removes a pool task without copying it anywhere
	Delete(id string) error

	// Claim atomically copies the pool task into the collaborator's
	// entry for week (as a fresh task with id newTaskID, status
	// PENDING) and removes it from the pool. If any write fails the
	// whole move rolls back and the task stays in the pool.
	Claim(poolTaskID, username, week, newTaskID string) (*models.Task, error)
}

// VoteFilter holds filtering options for listing votes. Empty fields
// match everything.
type VoteFilter struct {
	Week     string
	Target   string
	Page     int
	PageSize int
}

// VoteRepository defines the interface for the vote ledger
type VoteRepository interface {
	// Create inserts a vote; the composite primary key rejects a
	// second vote for the same (voter, week, target)
	Create(vote *models.Vote) error

	// Find returns the vote for (voter, week, target)
	Find(voter, week, target string) (*models.Vote, error)

	// Aggregate computes the mean score and vote count for
	// (week, target) on demand
	Aggregate(week, target string) (float64, int64, error)

	// List returns votes matching the filter
	List(filter VoteFilter) ([]models.Vote, int64, error)
}
