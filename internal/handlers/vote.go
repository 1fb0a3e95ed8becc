package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tomasc/weekly-planner-api/internal/dto"
	apierrors "github.com/tomasc/weekly-planner-api/internal/errors"
	"github.com/tomasc/weekly-planner-api/internal/middleware"
	"github.com/tomasc/weekly-planner-api/internal/repository"
	"github.com/tomasc/weekly-planner-api/internal/services"
	"github.com/tomasc/weekly-planner-api/internal/utils"
)

// VoteHandler exposes the weekly vote ledger.
type VoteHandler struct {
	voteService *services.VoteService
}

// NewVoteHandler creates a new VoteHandler
func NewVoteHandler(voteService *services.VoteService) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
	}
}

// Cast records the caller's vote for a teammate in the current week.
// Votes are write-once: a duplicate returns 409 with the original vote.
func (h *VoteHandler) Cast(c *gin.Context) {
	type CastRequest struct {
		TargetUsername string `json:"target_username" binding:"required"`
		Score          int    `json:"score" binding:"required"`
	}

	voter, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	vote, err := h.voteService.CastVote(services.CastVoteInput{
		VoterUsername:  voter,
		Week:           utils.CurrentWeekID(),
		TargetUsername: req.TargetUsername,
		Score:          req.Score,
	})
	if err != nil {
		if errors.Is(err, services.ErrVoteAlreadyCast) && vote != nil {
			apierrors.ConflictWithDetails(c, err.Error(), dto.ToVoteDTO(*vote))
			return
		}
		respondVoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVoteDTO(*vote))
}

// GetMine returns the caller's existing vote for (week, target).
func (h *VoteHandler) GetMine(c *gin.Context) {
	voter, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	week := c.DefaultQuery("week", utils.CurrentWeekID())
	target := c.Query("target")
	if target == "" {
		apierrors.BadRequest(c, "target is required")
		return
	}

	vote, err := h.voteService.GetVote(voter, week, target)
	if err != nil {
		respondVoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVoteDTO(*vote))
}

// GetAverage returns the mean score and count for (week, target),
// computed on demand.
func (h *VoteHandler) GetAverage(c *gin.Context) {
	week := c.DefaultQuery("week", utils.CurrentWeekID())
	target := c.Query("target")
	if target == "" {
		apierrors.BadRequest(c, "target is required")
		return
	}

	avg, count, err := h.voteService.AverageScore(week, target)
	if err != nil {
		apierrors.InternalError(c, "Failed to aggregate votes")
		return
	}

	c.JSON(http.StatusOK, dto.VoteAverageDTO{
		Week:           week,
		TargetUsername: target,
		AverageScore:   avg,
		VoteCount:      count,
	})
}

// ListRaw returns individual votes. The route restricts this to
// admins.
func (h *VoteHandler) ListRaw(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	votes, total, err := h.voteService.ListVotes(repository.VoteFilter{
		Week:     c.Query("week"),
		Target:   c.Query("target"),
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to list votes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"votes": dto.ToVoteDTOs(votes),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

func respondVoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSelfVote),
		errors.Is(err, services.ErrTargetNotVoteable):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrScoreOutOfRange):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTargetNotFound),
		errors.Is(err, services.ErrVoteNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrVoteAlreadyCast):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
