package services

import (
	"fmt"
	"sort"

	"github.com/tomasc/weekly-planner-api/internal/constants"
	"github.com/tomasc/weekly-planner-api/internal/models"
	"github.com/tomasc/weekly-planner-api/internal/repository"
)

// ReportService derives read-only statistics over the domain model.
// Everything is computed on demand from the current snapshot.
type ReportService struct {
	userRepo  repository.UserRepository
	entryRepo repository.EntryRepository
	voteRepo  repository.VoteRepository
}

// NewReportService creates a new ReportService
func NewReportService(userRepo repository.UserRepository, entryRepo repository.EntryRepository, voteRepo repository.VoteRepository) *ReportService {
	return &ReportService{
		userRepo:  userRepo,
		entryRepo: entryRepo,
		voteRepo:  voteRepo,
	}
}

// CollaboratorDetail is one collaborator's slice of the weekly summary.
type CollaboratorDetail struct {
	Username       string        `json:"username"`
	DisplayName    string        `json:"display_name"`
	PlannedHours   int           `json:"planned_hours"`
	TotalTasks     int           `json:"total_tasks"`
	CompletedTasks int           `json:"completed_tasks"`
	Tasks          []models.Task `json:"tasks"`
}

// TeamSummary aggregates all active collaborators of one week. A
// collaborator is active once they recorded hours or at least one task.
type TeamSummary struct {
	Week           string               `json:"week"`
	Contributors   int                  `json:"contributors"`
	TotalHours     int                  `json:"total_hours"`
	AverageHours   float64              `json:"average_hours"`
	TotalTasks     int                  `json:"total_tasks"`
	CompletedTasks int                  `json:"completed_tasks"`
	Details        []CollaboratorDetail `json:"details"`
}

// TeamSummaryForWeek builds the weekly team overview.
func (s *ReportService) TeamSummaryForWeek(week string) (*TeamSummary, error) {
	entries, err := s.entryRepo.ListByWeek(week)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly entries: %w", err)
	}

	summary := &TeamSummary{
		Week:    week,
		Details: []CollaboratorDetail{},
	}

	for _, entry := range entries {
		if entry.User.Role != models.RoleCollaborator {
			continue
		}
		if entry.PlannedHours <= 0 && len(entry.Tasks) == 0 {
			continue
		}

		completed := entry.CompletedTaskCount()
		summary.Contributors++
		summary.TotalHours += entry.PlannedHours
		summary.TotalTasks += len(entry.Tasks)
		summary.CompletedTasks += completed
		summary.Details = append(summary.Details, CollaboratorDetail{
			Username:       entry.Username,
			DisplayName:    entry.User.DisplayName,
			PlannedHours:   entry.PlannedHours,
			TotalTasks:     len(entry.Tasks),
			CompletedTasks: completed,
			Tasks:          entry.Tasks,
		})
	}

	if summary.Contributors > 0 {
		summary.AverageHours = float64(summary.TotalHours) / float64(summary.Contributors)
	}

	return summary, nil
}

// HistoryFilter narrows the plan history. Each dimension accepts the
// match-all sentinel (or an empty string).
type HistoryFilter struct {
	Week         string
	Collaborator string
	Project      string
}

// HistoryRow is one (week, collaborator) plan in the history view.
type HistoryRow struct {
	Week           string        `json:"week"`
	Username       string        `json:"username"`
	DisplayName    string        `json:"display_name"`
	PlannedHours   int           `json:"planned_hours"`
	TaskCount      int           `json:"task_count"`
	CompletedTasks int           `json:"completed_tasks"`
	Tasks          []models.Task `json:"tasks"`
}

// History returns all weekly plans matching the filter, newest week
// first. A project filter keeps rows where at least one task belongs
// to that project.
func (s *ReportService) History(filter HistoryFilter) ([]HistoryRow, error) {
	entries, err := s.entryRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	rows := []HistoryRow{}
	for _, entry := range entries {
		if !filterMatches(filter.Week, entry.Week) {
			continue
		}
		if !filterMatches(filter.Collaborator, entry.Username) {
			continue
		}
		if !matchesProject(filter.Project, entry.Tasks) {
			continue
		}

		rows = append(rows, HistoryRow{
			Week:           entry.Week,
			Username:       entry.Username,
			DisplayName:    entry.User.DisplayName,
			PlannedHours:   entry.PlannedHours,
			TaskCount:      len(entry.Tasks),
			CompletedTasks: entry.CompletedTaskCount(),
			Tasks:          entry.Tasks,
		})
	}

	return rows, nil
}

// VoteHistoryFilter narrows the vote summary view.
type VoteHistoryFilter struct {
	Week   string
	Target string
}

// VoteHistoryRow is the per-(week, target) vote rollup.
type VoteHistoryRow struct {
	Week              string  `json:"week"`
	TargetUsername    string  `json:"target_username"`
	TargetDisplayName string  `json:"target_display_name"`
	AverageScore      float64 `json:"average_score"`
	VoteCount         int64   `json:"vote_count"`
}

// VoteHistory groups the vote ledger by (week, target) and averages
// the scores, applying the same sentinel filters as History.
func (s *ReportService) VoteHistory(filter VoteHistoryFilter) ([]VoteHistoryRow, error) {
	repoFilter := repository.VoteFilter{}
	if !allFilter(filter.Week) {
		repoFilter.Week = filter.Week
	}
	if !allFilter(filter.Target) {
		repoFilter.Target = filter.Target
	}

	votes, _, err := s.voteRepo.List(repoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}

	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	displayNames := make(map[string]string, len(users))
	for _, u := range users {
		displayNames[u.Username] = u.DisplayName
	}

	type key struct{ week, target string }
	sums := map[key]int{}
	counts := map[key]int64{}
	for _, v := range votes {
		k := key{v.Week, v.TargetUsername}
		sums[k] += v.Score
		counts[k]++
	}

	rows := make([]VoteHistoryRow, 0, len(sums))
	for k, sum := range sums {
		name := displayNames[k.target]
		if name == "" {
			name = k.target
		}
		rows = append(rows, VoteHistoryRow{
			Week:              k.week,
			TargetUsername:    k.target,
			TargetDisplayName: name,
			AverageScore:      float64(sum) / float64(counts[k]),
			VoteCount:         counts[k],
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Week != rows[j].Week {
			return rows[i].Week > rows[j].Week
		}
		return rows[i].TargetUsername < rows[j].TargetUsername
	})

	return rows, nil
}

func allFilter(value string) bool {
	return value == "" || value == constants.FilterAll
}

func filterMatches(filter, value string) bool {
	return allFilter(filter) || filter == value
}

func matchesProject(filter string, tasks []models.Task) bool {
	if allFilter(filter) {
		return true
	}
	for _, t := range tasks {
		if t.Project == filter {
			return true
		}
	}
	return false
}
