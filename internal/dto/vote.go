package dto

import (
	"time"

	"github.com/tomasc/weekly-planner-api/internal/models"
)

// VoteDTO represents a vote in API responses
type VoteDTO struct {
	VoterUsername  string    `json:"voter_username"`
	Week           string    `json:"week"`
	TargetUsername string    `json:"target_username"`
	Score          int       `json:"score"`
	CreatedAt      time.Time `json:"created_at"`
}

// VoteAverageDTO is the on-demand aggregation for one (week, target)
type VoteAverageDTO struct {
	Week           string  `json:"week"`
	TargetUsername string  `json:"target_username"`
	AverageScore   float64 `json:"average_score"`
	VoteCount      int64   `json:"vote_count"`
}

// ToVoteDTO converts a Vote model to VoteDTO
func ToVoteDTO(vote models.Vote) VoteDTO {
	return VoteDTO{
		VoterUsername:  vote.VoterUsername,
		Week:           vote.Week,
		TargetUsername: vote.TargetUsername,
		Score:          vote.Score,
		CreatedAt:      vote.CreatedAt,
	}
}

// ToVoteDTOs converts a vote slice to DTOs
func ToVoteDTOs(votes []models.Vote) []VoteDTO {
	dtos := make([]VoteDTO, len(votes))
	for i, v := range votes {
		dtos[i] = ToVoteDTO(v)
	}
	return dtos
}
