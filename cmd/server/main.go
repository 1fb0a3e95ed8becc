package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/tomasc/weekly-planner-api/internal/config"
	"github.com/tomasc/weekly-planner-api/internal/constants"
	"github.com/tomasc/weekly-planner-api/internal/database"
	"github.com/tomasc/weekly-planner-api/internal/handlers"
	"github.com/tomasc/weekly-planner-api/internal/middleware"
	"github.com/tomasc/weekly-planner-api/internal/models"
	"github.com/tomasc/weekly-planner-api/internal/repository"
	"github.com/tomasc/weekly-planner-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Provision the default accounts on an empty store
	if err := database.Seed(database.GetDB(), cfg); err != nil {
		log.Fatalf("Failed to seed default accounts: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	poolRepo := repository.NewPoolRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	plannerService := services.NewPlannerService(entryRepo, cfg)
	poolService := services.NewPoolService(poolRepo, cfg)
	voteService := services.NewVoteService(voteRepo, userRepo)
	reportService := services.NewReportService(userRepo, entryRepo, voteRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	planHandler := handlers.NewPlanHandler(plannerService)
	poolHandler := handlers.NewPoolHandler(poolService)
	voteHandler := handlers.NewVoteHandler(voteService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Weekly Planner API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public except /me)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/setup-password", authHandler.SetupPassword)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Weekly plan routes (own current-week entry)
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

		// Unassigned task pool
		pool := api.Group("/pool")
		pool.Use(middleware.RequireAuth())
		{
			pool.GET("", poolHandler.List)
			pool.POST("", middleware.RequireRole(models.RoleAdmin), poolHandler.Publish)
			pool.POST("/:id/claim", middleware.RequireRole(models.RoleCollaborator), poolHandler.Claim)
			pool.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), poolHandler.Retract)
		}

		// Votes
		votes := api.Group("/votes")
		votes.Use(middleware.RequireAuth())
		{
			votes.POST("", middleware.RequireRole(models.RoleCollaborator), voteHandler.Cast)
			votes.GET("/mine", voteHandler.GetMine)
			votes.GET("/average", voteHandler.GetAverage)
			votes.GET("", middleware.RequireRole(models.RoleAdmin), voteHandler.ListRaw)
		}

		// Reports
		reports := api.Group("/reports")
		reports.Use(middleware.RequireAuth())
		{
			reports.GET("/team", reportHandler.TeamSummary)
			reports.GET("/history", reportHandler.History)
			reports.GET("/votes", reportHandler.VoteHistory)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
