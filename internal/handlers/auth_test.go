package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tomasc/weekly-planner-api/internal/dto"
	"github.com/tomasc/weekly-planner-api/internal/models"
)

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "nico", models.RoleCollaborator, "supersecret", true)

	w := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "nico",
		"password": "supersecret",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "nico", response.User.Username)
	require.False(t, response.PasswordSetupRequired)
	require.NotEmpty(t, w.Result().Cookies(), "expected session cookie to be set")
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "nico", models.RoleCollaborator, "supersecret", true)

	w := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "nico",
		"password": "wrong",
	}, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_FirstLoginFlow(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "tomic", models.RoleCollaborator, "changeme", false)

	// Step 1: login with the seeded password flags setup as required.
	w := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "tomic",
		"password": "changeme",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.True(t, login.PasswordSetupRequired)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Step 2: the pending session cannot reach protected endpoints.
	w = env.request(t, http.MethodGet, "/api/plan", nil, cookies)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Step 3: completing the setup establishes the real session.
	w = env.request(t, http.MethodPost, "/api/auth/setup-password", map[string]string{
		"new_password":     "newsecret",
		"confirm_password": "newsecret",
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var user dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	require.True(t, user.PasswordSet)

	authed := w.Result().Cookies()
	require.NotEmpty(t, authed)

	w = env.request(t, http.MethodGet, "/api/auth/me", nil, authed)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_SetupPassword_Validation(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "tomic", models.RoleCollaborator, "changeme", false)

	// No pending session at all.
	w := env.request(t, http.MethodPost, "/api/auth/setup-password", map[string]string{
		"new_password":     "newsecret",
		"confirm_password": "newsecret",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	login := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "tomic",
		"password": "changeme",
	}, nil)
	require.Equal(t, http.StatusOK, login.Code)
	cookies := login.Result().Cookies()

	w = env.request(t, http.MethodPost, "/api/auth/setup-password", map[string]string{
		"new_password":     "abc",
		"confirm_password": "abc",
	}, cookies)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPost, "/api/auth/setup-password", map[string]string{
		"new_password":     "abcdef",
		"confirm_password": "abcdeg",
	}, cookies)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "nico", models.RoleCollaborator, "supersecret", true)

	cookies := env.login(t, "nico", "supersecret")

	w := env.request(t, http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// The cleared cookie no longer authenticates.
	cleared := w.Result().Cookies()
	w = env.request(t, http.MethodGet, "/api/auth/me", nil, cleared)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser_RequiresSession(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/auth/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
