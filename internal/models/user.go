package models

import "time"

type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleCollaborator UserRole = "collaborator"
)

type User struct {
	Username     string   `gorm:"type:varchar(50);primarykey" json:"username"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	DisplayName  string   `gorm:"type:varchar(255);not null" json:"display_name"`
	// PasswordSet is false until the account completes its mandatory
	// first-login password change.
	PasswordSet bool      `gorm:"not null;default:false" json:"password_set"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
