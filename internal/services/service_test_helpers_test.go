package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tomasc/weekly-planner-api/internal/config"
	"github.com/tomasc/weekly-planner-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.WeeklyEntry{},
		&models.Task{},
		&models.UnassignedTask{},
		&models.Vote{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		MaxWeeklyHours:         100,
		ProjectNames:           []string{"Viruta", "Botillería", "Interno", "General"},
		DefaultInitialPassword: "changeme",
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role models.UserRole, password string, passwordSet bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		DisplayName:  username,
		PasswordSet:  passwordSet,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
