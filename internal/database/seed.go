package database

import (
	"fmt"
	"log"

	"github.com/tomasc/weekly-planner-api/internal/config"
	"github.com/tomasc/weekly-planner-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedCollaborators is the fixed roster provisioned alongside the admin
// account on an empty store.
var seedCollaborators = map[string]string{
	"tomas_c":   "Tomas Casanova",
	"nicolas_c": "Nicolas Chavez",
	"vicente_h": "Vicente Hoya",
	"goli_t":    "Goli Torres",
	"tomas_v":   "Tomas Valenzuela",
	"fuad_h":    "Fuad Hamed",
}

// Seed provisions the default accounts when the user collection is
// empty. Every seeded account carries the shared initial password and
// password_set=false, forcing a password change on first login.
func Seed(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultInitialPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	users := []models.User{
		{
			Username:     "admin",
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
			DisplayName:  "Administrador",
			PasswordSet:  false,
		},
	}
	for username, displayName := range seedCollaborators {
		users = append(users, models.User{
			Username:     username,
			PasswordHash: string(hash),
			Role:         models.RoleCollaborator,
			DisplayName:  displayName,
			PasswordSet:  false,
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	log.Printf("Seeded %d default accounts", len(users))
	return nil
}
