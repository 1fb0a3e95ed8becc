package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tomasc/weekly-planner-api/internal/config"
	"github.com/tomasc/weekly-planner-api/internal/constants"
	"github.com/tomasc/weekly-planner-api/internal/middleware"
	"github.com/tomasc/weekly-planner-api/internal/models"
	"github.com/tomasc/weekly-planner-api/internal/repository"
	"github.com/tomasc/weekly-planner-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

// setupTestEnv wires the full route table against an in-memory store,
// with a cookie session store standing in for Redis.
func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

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

	cfg := &config.Config{
		MaxWeeklyHours:         100,
		ProjectNames:           []string{"Viruta", "Botillería", "Interno", "General"},
		DefaultInitialPassword: "changeme",
	}

	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	poolRepo := repository.NewPoolRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	authHandler := NewAuthHandler(services.NewAuthService(userRepo))
	planHandler := NewPlanHandler(services.NewPlannerService(entryRepo, cfg))
	poolHandler := NewPoolHandler(services.NewPoolService(poolRepo, cfg))
	voteHandler := NewVoteHandler(services.NewVoteService(voteRepo, userRepo))
	reportHandler := NewReportHandler(services.NewReportService(userRepo, entryRepo, voteRepo))

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/setup-password", authHandler.SetupPassword)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		plan := api.Group("/plan")
		plan.Use(middleware.RequireAuth())
		{
			plan.GET("", planHandler.GetMyPlan)
			plan.PUT("/hours", planHandler.SetHours)
			plan.POST("/tasks", planHandler.AddTask)
			plan.PATCH("/tasks/:id", planHandler.UpdateTask)
			plan.PATCH("/tasks/:id/status", planHandler.UpdateTaskStatus)
			plan.DELETE("/tasks/:id", planHandler.DeleteTask)
		}

		pool := api.Group("/pool")
		pool.Use(middleware.RequireAuth())
		{
			pool.GET("", poolHandler.List)
			pool.POST("", middleware.RequireRole(models.RoleAdmin), poolHandler.Publish)
			pool.POST("/:id/claim", middleware.RequireRole(models.RoleCollaborator), poolHandler.Claim)
			pool.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), poolHandler.Retract)
		}

		votes := api.Group("/votes")
		votes.Use(middleware.RequireAuth())
		{
			votes.POST("", middleware.RequireRole(models.RoleCollaborator), voteHandler.Cast)
			votes.GET("/mine", voteHandler.GetMine)
			votes.GET("/average", voteHandler.GetAverage)
			votes.GET("", middleware.RequireRole(models.RoleAdmin), voteHandler.ListRaw)
		}

		reports := api.Group("/reports")
		reports.Use(middleware.RequireAuth())
		{
			reports.GET("/team", reportHandler.TeamSummary)
			reports.GET("/history", reportHandler.History)
			reports.GET("/votes", reportHandler.VoteHistory)
		}
	}

	return testEnv{db: db, router: r}
}

func (env testEnv) createUser(t *testing.T, username string, role models.UserRole, password string, passwordSet bool) *models.User {
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
	require.NoError(t, env.db.Create(user).Error)
	return user
}

// request performs one HTTP round trip, carrying any session cookies.
func (env testEnv) request(t *testing.T, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// login authenticates via the real endpoint and returns the session
// cookies for follow-up requests.
func (env testEnv) login(t *testing.T, username, password string) []*http.Cookie {
	t.Helper()

	w := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}
