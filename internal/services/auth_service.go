package services

import (
	"errors"
	"fmt"

	"github.com/tomasc/weekly-planner-api/internal/constants"
	"github.com/tomasc/weekly-planner-api/internal/models"
	"github.com/tomasc/weekly-planner-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrPasswordRequired     = errors.New("both password fields are required")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrPasswordAlreadySet   = errors.New("password has already been set")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles authentication and the first-login password
// setup state machine.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is the outcome of a successful credential check. When
// PasswordSetupRequired is true no session may be established: the
// account is bound to the password-setup step instead.
type LoginResult struct {
	User                  *models.User
	PasswordSetupRequired bool
}

// Login verifies credentials. bcrypt's comparison is constant-time, so
// a hash mismatch and an unknown user are indistinguishable to the
// caller beyond ErrInvalidCredentials.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &LoginResult{
		User:                  user,
		PasswordSetupRequired: !user.PasswordSet,
	}, nil
}

// CompletePasswordSetupInput holds the fields of the one-time password
// change form.
type CompletePasswordSetupInput struct {
	Username        string
	NewPassword     string
	ConfirmPassword string
}

// CompletePasswordSetup replaces the seeded password and marks the
// account as set up, completing the PendingPasswordSetup -> LoggedIn
// transition.
func (s *AuthService) CompletePasswordSetup(input CompletePasswordSetupInput) (*models.User, error) {
	if input.NewPassword == "" || input.ConfirmPassword == "" {
		return nil, ErrPasswordRequired
	}
	if input.NewPassword != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if len(input.NewPassword) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.PasswordSet {
		return nil, ErrPasswordAlreadySet
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user.PasswordHash = string(hash)
	user.PasswordSet = true
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to save password: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by username.
func (s *AuthService) GetUser(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
