package repository

import (
	"github.com/tomasc/weekly-planner-api/internal/database"
	"github.com/tomasc/weekly-planner-api/internal/models"
	"github.com/tomasc/weekly-planner-api/internal/utils"
	"gorm.io/gorm"
)

// GormVoteRepository is a GORM implementation of VoteRepository
type GormVoteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &GormVoteRepository{db: db}
}

// Create inserts a vote. The composite primary key on
// (voter_username, week, target_username) makes a second vote for the
// same key fail with gorm.ErrDuplicatedKey.
func (r *GormVoteRepository) Create(vote *models.Vote) error {
	return r.db.Create(vote).Error
}

// Find returns the vote for (voter, week, target)
func (r *GormVoteRepository) Find(voter, week, target string) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.Where("voter_username = ? AND week = ? AND target_username = ?", voter, week, target).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// Aggregate computes the mean score and vote count for (week, target)
// on demand; there are no cached rollups.
func (r *GormVoteRepository) Aggregate(week, target string) (float64, int64, error) {
	var result struct {
		Avg float64
		Cnt int64
	}
	err := r.db.Model(&models.Vote{}).
		Select("COALESCE(AVG(score), 0) AS avg, COUNT(*) AS cnt").
		Where("week = ? AND target_username = ?", week, target).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Avg, result.Cnt, nil
}

// List returns votes matching the filter, newest first
func (r *GormVoteRepository) List(filter VoteFilter) ([]models.Vote, int64, error) {
	query := r.db.Model(&models.Vote{})

	if filter.Week != "" {
		query = query.Where("week = ?", filter.Week)
	}
	if filter.Target != "" {
		query = query.Where("target_username = ?", filter.Target)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	var votes []models.Vote
	if err := listQuery.Find(&votes).Error; err != nil {
		return nil, 0, err
	}
	return votes, total, nil
}
