package dto

import "github.com/tomasc/weekly-planner-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	Username    string          `json:"username"`
	Role        models.UserRole `json:"role"`
	DisplayName string          `json:"display_name"`
	PasswordSet bool            `json:"password_set"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		Username:    user.Username,
		Role:        user.Role,
		DisplayName: user.DisplayName,
		PasswordSet: user.PasswordSet,
	}
}

// LoginResponse is returned by the login endpoint. When
// PasswordSetupRequired is true the client must go through the
// password-setup endpoint before any session exists.
type LoginResponse struct {
	User                  UserDTO `json:"user"`
	PasswordSetupRequired bool    `json:"password_setup_required"`
}
