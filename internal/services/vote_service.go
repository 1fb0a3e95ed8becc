package services

import (
	"errors"
	"fmt"

	"github.com/tomasc/weekly-planner-api/internal/models"
	"github.com/tomasc/weekly-planner-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSelfVote          = errors.New("voting for yourself is not allowed")
	ErrScoreOutOfRange   = errors.New("score must be between 1 and 5")
	ErrTargetNotFound    = errors.New("vote target not found")
	ErrTargetNotVoteable = errors.New("only collaborators can receive votes")
	ErrVoteAlreadyCast   = errors.New("vote already cast for this week")
	ErrVoteNotFound      = errors.New("vote not found")
)

// VoteService enforces the write-once vote ledger: one vote per
// (voter, week, target), immutable once cast.
type VoteService struct {
	voteRepo repository.VoteRepository
	userRepo repository.UserRepository
}

// NewVoteService creates a new VoteService
func NewVoteService(voteRepo repository.VoteRepository, userRepo repository.UserRepository) *VoteService {
	return &VoteService{
		voteRepo: voteRepo,
		userRepo: userRepo,
	}
}

// CastVoteInput represents input for casting a vote
type CastVoteInput struct {
	VoterUsername  string
	Week           string
	TargetUsername string
	Score          int
}

// CastVote records a vote. A duplicate cast returns
// ErrVoteAlreadyCast together with the original, unchanged vote.
func (s *VoteService) CastVote(input CastVoteInput) (*models.Vote, error) {
	if input.VoterUsername == input.TargetUsername {
		return nil, ErrSelfVote
	}
	if input.Score < models.MinVoteScore || input.Score > models.MaxVoteScore {
		return nil, ErrScoreOutOfRange
	}

	target, err := s.userRepo.FindByUsername(input.TargetUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, fmt.Errorf("failed to find vote target: %w", err)
	}
	if target.Role != models.RoleCollaborator {
		return nil, ErrTargetNotVoteable
	}

	if existing, err := s.voteRepo.Find(input.VoterUsername, input.Week, input.TargetUsername); err == nil {
		return existing, ErrVoteAlreadyCast
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing vote: %w", err)
	}

	vote := &models.Vote{
		VoterUsername:  input.VoterUsername,
		Week:           input.Week,
		TargetUsername: input.TargetUsername,
		Score:          input.Score,
	}
	if err := s.voteRepo.Create(vote); err != nil {
		// Two racing casts: the primary key kept the first one, return it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, findErr := s.voteRepo.Find(input.VoterUsername, input.Week, input.TargetUsername); findErr == nil {
				return existing, ErrVoteAlreadyCast
			}
			return nil, ErrVoteAlreadyCast
		}
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	return vote, nil
}

// GetVote returns the caller's existing vote for (week, target).
func (s *VoteService) GetVote(voter, week, target string) (*models.Vote, error) {
	vote, err := s.voteRepo.Find(voter, week, target)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}
	return vote, nil
}

// AverageScore computes the mean score and vote count for
// (week, target) on demand.
func (s *VoteService) AverageScore(week, target string) (float64, int64, error) {
	avg, count, err := s.voteRepo.Aggregate(week, target)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate votes: %w", err)
	}
	return avg, count, nil
}

// ListVotes returns raw votes matching the filter. The handler layer
// restricts this to admins.
func (s *VoteService) ListVotes(filter repository.VoteFilter) ([]models.Vote, int64, error) {
	votes, total, err := s.voteRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, total, nil
}
