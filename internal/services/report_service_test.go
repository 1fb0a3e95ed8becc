package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tomasc/weekly-planner-api/internal/models"
	"github.com/tomasc/weekly-planner-api/internal/repository"
	"gorm.io/gorm"
)

func setupReportTest(t *testing.T) (*ReportService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)
	service := NewReportService(
		repository.NewUserRepository(db),
		repository.NewEntryRepository(db),
		repository.NewVoteRepository(db),
	)
	createTestUser(t, db, "admin", models.RoleAdmin, "adminpass", true)
	createTestUser(t, db, "tomic", models.RoleCollaborator, "supersecret", true)
	createTestUser(t, db, "nico", models.RoleCollaborator, "supersecret", true)
	return service, db
}

func seedEntry(t *testing.T, db *gorm.DB, username, week string, hours int, tasks ...models.Task) {
	t.Helper()

	entry := &models.WeeklyEntry{
		Username:     username,
		Week:         week,
		PlannedHours: hours,
	}
	require.NoError(t, db.Create(entry).Error)

	for i := range tasks {
		tasks[i].ID = uuid.NewString()
		tasks[i].EntryID = entry.ID
		tasks[i].Position = i
		require.NoError(t, db.Create(&tasks[i]).Error)
	}
}

func TestReportService_TeamSummaryForWeek(t *testing.T) {
	service, db := setupReportTest(t)

	seedEntry(t, db, "tomic", "2025-W07", 40,
		models.Task{Title: "Inventory", Status: models.TaskStatusCompleted, Project: "Botillería"},
		models.Task{Title: "Invoices", Status: models.TaskStatusPending, Project: "General"},
	)
	seedEntry(t, db, "nico", "2025-W07", 30,
		models.Task{Title: "Cut boards", Status: models.TaskStatusInProgress, Project: "Viruta"},
	)
	// Empty entries do not count as contributors.
	seedEntry(t, db, "tomic", "2025-W08", 0)
	// Admin plans never enter the team summary.
	seedEntry(t, db, "admin", "2025-W07", 10)

	summary, err := service.TeamSummaryForWeek("2025-W07")
	require.NoError(t, err)
	require.Equal(t, "2025-W07", summary.Week)
	require.Equal(t, 2, summary.Contributors)
	require.Equal(t, 70, summary.TotalHours)
	require.InDelta(t, 35.0, summary.AverageHours, 0.001)
	require.Equal(t, 3, summary.TotalTasks)
	require.Equal(t, 1, summary.CompletedTasks)
	require.Len(t, summary.Details, 2)

	empty, err := service.TeamSummaryForWeek("2025-W08")
	require.NoError(t, err)
	require.Zero(t, empty.Contributors)
	require.Zero(t, empty.AverageHours)
	require.Empty(t, empty.Details)
}

func TestReportService_History_Filters(t *testing.T) {
	service, db := setupReportTest(t)

	seedEntry(t, db, "tomic", "2025-W07", 40,
		models.Task{Title: "Inventory", Status: models.TaskStatusCompleted, Project: "Botillería"},
	)
	seedEntry(t, db, "nico", "2025-W07", 30,
		models.Task{Title: "Cut boards", Status: models.TaskStatusInProgress, Project: "Viruta"},
	)
	seedEntry(t, db, "tomic", "2025-W08", 20,
		models.Task{Title: "Restock", Status: models.TaskStatusPending, Project: "Botillería"},
	)

	all, err := service.History(HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	// The match-all sentinel behaves like an omitted filter.
	all, err = service.History(HistoryFilter{Week: "all", Collaborator: "all", Project: "all"})
	require.NoError(t, err)
	require.Len(t, all, 3)

	byWeek, err := service.History(HistoryFilter{Week: "2025-W07"})
	require.NoError(t, err)
	require.Len(t, byWeek, 2)

	byUser, err := service.History(HistoryFilter{Collaborator: "tomic"})
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	for _, row := range byUser {
		require.Equal(t, "tomic", row.Username)
	}

	byProject, err := service.History(HistoryFilter{Project: "Viruta"})
	require.NoError(t, err)
	require.Len(t, byProject, 1)
	require.Equal(t, "nico", byProject[0].Username)

	combined, err := service.History(HistoryFilter{Week: "2025-W08", Collaborator: "nico"})
	require.NoError(t, err)
	require.Empty(t, combined)
}

func TestReportService_VoteHistory(t *testing.T) {
	service, db := setupReportTest(t)

	votes := []models.Vote{
		{VoterUsername: "tomic", Week: "2025-W07", TargetUsername: "nico", Score: 5},
		{VoterUsername: "admin", Week: "2025-W07", TargetUsername: "nico", Score: 2},
		{VoterUsername: "nico", Week: "2025-W07", TargetUsername: "tomic", Score: 3},
		{VoterUsername: "tomic", Week: "2025-W08", TargetUsername: "nico", Score: 4},
	}
	for i := range votes {
		require.NoError(t, db.Create(&votes[i]).Error)
	}

	rows, err := service.VoteHistory(VoteHistoryFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Newest week first, then target ascending.
	require.Equal(t, "2025-W08", rows[0].Week)
	require.Equal(t, "nico", rows[0].TargetUsername)
	require.Equal(t, "2025-W07", rows[1].Week)
	require.Equal(t, "nico", rows[1].TargetUsername)
	require.InDelta(t, 3.5, rows[1].AverageScore, 0.001)
	require.EqualValues(t, 2, rows[1].VoteCount)
	require.Equal(t, "tomic", rows[2].TargetUsername)

	byTarget, err := service.VoteHistory(VoteHistoryFilter{Target: "tomic"})
	require.NoError(t, err)
	require.Len(t, byTarget, 1)
	require.InDelta(t, 3.0, byTarget[0].AverageScore, 0.001)

	byWeek, err := service.VoteHistory(VoteHistoryFilter{Week: "2025-W08"})
	require.NoError(t, err)
	require.Len(t, byWeek, 1)
	require.EqualValues(t, 1, byWeek[0].VoteCount)
}
